package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"file-manager-api/config"
	"file-manager-api/internal/application/ports"
	"file-manager-api/internal/application/services"
	"file-manager-api/internal/domain/identity"
	"file-manager-api/internal/infrastructure/db/postgres"
	"file-manager-api/internal/infrastructure/db/postgres/file"
	"file-manager-api/internal/infrastructure/db/postgres/profile"
	"file-manager-api/internal/infrastructure/identity/local"
	"file-manager-api/internal/infrastructure/identity/supabase"
	"file-manager-api/internal/infrastructure/jwt"
	"file-manager-api/internal/infrastructure/metrics"
	"file-manager-api/internal/infrastructure/mq"
	"file-manager-api/internal/infrastructure/storage"
	"file-manager-api/internal/interface/api/rest"
	"file-manager-api/internal/interface/api/rest/middleware"
)

type App struct {
	logger   *zap.Logger
	cfg      config.Config
	db       *pgxpool.Pool
	storage  ports.Storage
	provider identity.Provider
	httpSrv  *http.Server
	router   *gin.Engine
	mCounter *prometheus.CounterVec
	events   ports.EventPublisher
	mq       *mq.RabbitMQ
}

// LoadConfig reads an optional .env file and the environment.
func LoadConfig(logger *zap.Logger) (config.Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("cannot read .env file", zap.Error(err))
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func NewApp(ctx context.Context) (*App, error) {
	// logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}

	// config
	cfg, err := LoadConfig(logger)
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	// metrics
	mCounter := metrics.NewCounter()

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestLogGin(logger, mCounter, rest.CredentialRoutes...))

	// httpServer
	httpSrv := &http.Server{
		Addr:              cfg.App.Host + ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// db
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		logger.Fatal("DB config error", zap.Error(err))
	}
	if cfg.DB.AutoMigrate {
		if err = postgres.Migrate(ctx, logger, dbDsn); err != nil {
			logger.Fatal("failed to migrate database", zap.Error(err))
		}
	}
	dbPool, err := postgres.New(ctx, logger, dbDsn)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// identity provider
	var provider identity.Provider
	switch cfg.Identity.Provider {
	case config.IdentityProviderSupabase:
		provider = supabase.New(
			cfg.Identity.SupabaseURL,
			cfg.Identity.SupabaseAnonKey,
			cfg.Identity.SupabaseServiceRoleKey,
			logger,
		)
	default:
		provider = local.New(dbPool, jwt.New(cfg.Identity.JWTSecret, cfg.App.Name))
	}
	logger.Info("identity provider selected", zap.String("provider", cfg.Identity.Provider))

	// blob storage
	var blobs ports.Storage
	switch cfg.Storage.Driver {
	case config.StorageDriverS3:
		blobs, err = storage.NewS3(ctx, logger, cfg.S3)
	default:
		blobs, err = storage.NewLocal(cfg.Storage.UploadDir)
	}
	if err != nil {
		logger.Fatal("failed to init blob storage", zap.Error(err), zap.String("driver", cfg.Storage.Driver))
	}

	// rabbitMQ
	var (
		events ports.EventPublisher = mq.NopPublisher{}
		rbMQ   *mq.RabbitMQ
	)
	if cfg.MQEnabled() {
		rabbitDsn, err := cfg.AMQPDSN()
		if err != nil {
			logger.Fatal("RabbitMQ config error", zap.Error(err))
		}
		rbMQ = mq.New(cfg.MQ, logger)
		if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
			logger.Fatal("failed to connect to rabbitMQ", zap.Error(err))
		}
		if err = rbMQ.Init(); err != nil {
			logger.Fatal("failed init rabbitMQ", zap.Error(err))
		}
		events = rbMQ
	} else {
		logger.Info("RABBITMQ_HOST is not set, audit events are disabled")
	}

	return &App{
		logger:   logger,
		cfg:      cfg,
		db:       dbPool,
		storage:  blobs,
		provider: provider,
		httpSrv:  httpSrv,
		router:   r,
		mCounter: mCounter,
		events:   events,
		mq:       rbMQ,
	}, nil
}

func (a *App) Close() {
	if a.mq != nil {
		if err := a.mq.Close(); err != nil {
			a.logger.Warn("rabbitMQ close error", zap.Error(err))
		}
	}
	if a.db != nil {
		a.db.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if a.httpSrv != nil {
		if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
			return err
		}
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	// repos
	profileRepo := profile.NewRepository(a.db)
	fileRepo := file.NewRepository(a.db)

	// services
	authService := services.NewAuthService(a.provider, profileRepo, a.events, a.logger, a.mCounter)
	fileService := services.NewFileService(fileRepo, profileRepo, a.storage, a.events, a.logger, a.mCounter)
	adminService := services.NewAdminService(a.provider, profileRepo, fileRepo, a.storage, a.events, a.logger, a.mCounter)

	// guards
	authMW := middleware.AuthMiddleware(a.provider, a.logger)
	adminMW := middleware.AdminMiddleware(authService, a.logger)

	// controllers
	rest.NewAuthController(a.router, a.logger, authService, authMW)
	rest.NewFileController(a.router, fileService, a.logger, authMW, a.cfg.Upload.MaxBytes)
	rest.NewAdminController(a.router, adminService, a.logger, authMW, adminMW)

	// ops
	a.router.GET(rest.RouteHealth, func(c *gin.Context) {
		if err := a.db.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) Logger() *zap.Logger { return a.logger }
