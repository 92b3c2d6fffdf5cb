package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/lalith-99/luxgrid/internal/api"
	"github.com/lalith-99/luxgrid/internal/config"
	"github.com/lalith-99/luxgrid/internal/db"
	"github.com/lalith-99/luxgrid/internal/events"
	"github.com/lalith-99/luxgrid/internal/observ"
	"github.com/lalith-99/luxgrid/internal/repository/postgres"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	// Startup uses Background(): there is no parent deadline yet. Once the
	// server runs, every request carries its own context.
	ctx := context.Background()

	if err := db.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	database, err := db.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer database.Close()

	publisher, err := events.NewPublisher(cfg.RedisURL, logger)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer publisher.Close()

	store := postgres.NewStore(database.Pool())

	srv := api.NewRouter(store, database, publisher, cfg.JWTSecret, logger)

	logger.Info("starting luxgrid",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Env),
	)

	return srv.Run(":" + cfg.Port)
}
