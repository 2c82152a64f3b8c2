package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

const (
	IdentityProviderLocal    = "local"
	IdentityProviderSupabase = "supabase"

	StorageDriverLocal = "local"
	StorageDriverS3    = "s3"

	defaultUploadMaxBytes = int64(10 << 20)
)

type (
	APP struct {
		Name           string
		Host           string
		Port           string
		Env            string
		AllowedOrigins []string
	}
	DB struct {
		User        string
		Password    string
		Name        string
		Host        string
		Port        string
		SSLMode     string
		AutoMigrate bool
	}
	Identity struct {
		Provider string

		// supabase
		SupabaseURL            string
		SupabaseAnonKey        string
		SupabaseServiceRoleKey string

		// local
		JWTSecret string
	}
	Storage struct {
		Driver    string
		UploadDir string
	}
	Upload struct {
		MaxBytes int64
	}
	S3 struct {
		Region          string
		Endpoint        string
		AccessKeyID     string
		SecretAccessKey string
		BucketUploads   string
		UsePathStyle    bool
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}

	Config struct {
		App      APP
		DB       DB
		Identity Identity
		Storage  Storage
		Upload   Upload
		S3       S3
		MQ       MQ
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return def
	}
	return v
}

func getEnvInt64(key string, def int64) int64 {
	v, err := strconv.ParseInt(getEnv(key, ""), 10, 64)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getEnvList(key string, def []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func Load() Config {
	app := APP{
		Name:           getEnv("SERVICE_NAME", "filemanager"),
		Host:           getEnv("SERVICE_HOST", ""),
		Port:           getEnv("SERVICE_PORT", "3000"),
		Env:            getEnv("SERVICE_ENV", ""),
		AllowedOrigins: getEnvList("SERVICE_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
	}
	db := DB{
		User:        getEnv("POSTGRES_USER", ""),
		Password:    getEnv("POSTGRES_PASSWORD", ""),
		Name:        getEnv("POSTGRES_DB", ""),
		Host:        getEnv("POSTGRES_HOST", ""),
		Port:        getEnv("POSTGRES_PORT", "5432"),
		SSLMode:     getEnv("POSTGRES_SSLMODE", ""),
		AutoMigrate: getEnvBool("POSTGRES_AUTO_MIGRATE", false),
	}
	identity := Identity{
		Provider:               getEnv("IDENTITY_PROVIDER", IdentityProviderLocal),
		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabaseAnonKey:        getEnv("SUPABASE_ANON_KEY", ""),
		SupabaseServiceRoleKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		JWTSecret:              getEnv("SERVICE_JWT_SECRET", ""),
	}
	storage := Storage{
		Driver:    getEnv("STORAGE_DRIVER", StorageDriverLocal),
		UploadDir: getEnv("STORAGE_UPLOAD_DIR", "uploads"),
	}
	upload := Upload{
		MaxBytes: getEnvInt64("UPLOAD_MAX_BYTES", defaultUploadMaxBytes),
	}
	s3 := S3{
		Region:          getEnv("S3_REGION", ""),
		Endpoint:        getEnv("S3_ENDPOINT", ""),
		AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		BucketUploads:   getEnv("S3_BUCKET_UPLOADS", ""),
		UsePathStyle:    getEnvBool("S3_USE_PATH_STYLE", false),
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", "5672"),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", "filemanager.audit"),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", "topic"),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", "filemanager.audit.log"),
	}

	return Config{
		App:      app,
		DB:       db,
		Identity: identity,
		Storage:  storage,
		Upload:   upload,
		S3:       s3,
		MQ:       mq,
	}
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	dsn := fmt.Sprintf(
		"postgres://%s@%s:%s/%s",
		url.UserPassword(c.DB.User, c.DB.Password).String(),
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	)
	if c.DB.SSLMode != "" {
		dsn += "?sslmode=" + url.QueryEscape(c.DB.SSLMode)
	}

	return dsn, nil
}

// MQEnabled reports whether audit events should be published.
func (c Config) MQEnabled() bool { return c.MQ.Host != "" }

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}

func (c Config) Validate() error {
	switch c.Identity.Provider {
	case IdentityProviderLocal:
		if c.Identity.JWTSecret == "" {
			return fmt.Errorf("SERVICE_JWT_SECRET is required for the local identity provider")
		}
	case IdentityProviderSupabase:
		if c.Identity.SupabaseURL == "" || c.Identity.SupabaseAnonKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_ANON_KEY are required for the supabase identity provider")
		}
	default:
		return fmt.Errorf("unknown identity provider %q", c.Identity.Provider)
	}

	switch c.Storage.Driver {
	case StorageDriverLocal:
		if c.Storage.UploadDir == "" {
			return fmt.Errorf("STORAGE_UPLOAD_DIR is required for local storage")
		}
	case StorageDriverS3:
		if c.S3.BucketUploads == "" || c.S3.Region == "" {
			return fmt.Errorf("S3_BUCKET_UPLOADS and S3_REGION are required for s3 storage")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	return nil
}
