// Package main implements the entry point for the faqreator server, which
// generates FAQ entries for published source posts through an OpenAI-backed
// pipeline and serves them over HTTP.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/rafysite/faqreator/internal/config"
	"github.com/rafysite/faqreator/internal/platform/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("faqreator: %v", err)
	}
}

// run loads configuration, wires the application and starts the HTTP server.
// Separated from main so it can return errors instead of exiting.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"model", cfg.OpenAI.Model,
		"schedule_interval_seconds", cfg.Content.ScheduleIntervalSeconds)

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if err := runMigrations(db, appLogger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
