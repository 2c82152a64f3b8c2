// Command migrate applies the database schema and exits.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"file-manager-api/config"
	"file-manager-api/internal/infrastructure/db/postgres"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}
	defer logger.Sync()

	_ = godotenv.Load(".env")
	dsn, err := config.Load().DBDSN()
	if err != nil {
		logger.Fatal("DB config error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err = postgres.Migrate(ctx, logger, dsn); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
}
