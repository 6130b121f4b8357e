package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"blog-backend/internal/config"
	"blog-backend/internal/infrastructure/database"
	"blog-backend/pkg/logger"
)

// migrate chạy các schema migration đã embed rồi thoát
func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	if err := run(); err != nil {
		logger.Error("Migration failed", err)
		os.Exit(1)
	}
	logger.Info("Migrations applied", nil)
}

func run() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("load database config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	return database.Migrate(ctx, db.Pool)
}
