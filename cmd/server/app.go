package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/rafysite/faqreator/internal/config"
	"github.com/rafysite/faqreator/internal/generation"
	"github.com/rafysite/faqreator/internal/platform/openai"
	"github.com/rafysite/faqreator/internal/platform/postgres"
	"github.com/rafysite/faqreator/internal/service"
	"github.com/rafysite/faqreator/internal/store"
	"github.com/rafysite/faqreator/internal/task"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	postStore store.PostStore
	taskStore task.TaskStore

	// Generation pipeline
	generator       generation.Generator
	faqService      *service.FAQService
	scheduleService *service.ScheduleService

	// Task handling
	taskFactory *task.FAQGenerationTaskFactory
	taskRunner  *task.TaskRunner
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize stores
	app.postStore = postgres.NewPostgresPostStore(db)
	app.taskStore = postgres.NewPostgresTaskStore(db)

	// Create the chat completions client
	var err error
	app.generator, err = openai.NewClient(
		logger.With("component", "openai_client"),
		cfg.OpenAI,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generation client: %w", err)
	}
	logger.Info("generation client initialized", "model", cfg.OpenAI.Model)

	// Initialize the FAQ generation service
	app.faqService, err = service.NewFAQService(
		db,
		app.postStore,
		app.generator,
		cfg.OpenAI,
		cfg.Content,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create FAQ service: %w", err)
	}

	// Create task factory; it doubles as the recovery resolver
	app.taskFactory = task.NewFAQGenerationTaskFactory(app.faqService, logger)

	// Initialize and start the task runner. The resolver must be registered
	// before Start so recovery can reconstruct persisted tasks.
	app.taskRunner = task.NewTaskRunner(app.taskStore, task.TaskRunnerConfig{
		WorkerCount:  cfg.Task.WorkerCount,
		QueueSize:    cfg.Task.QueueSize,
		StuckTaskAge: time.Duration(cfg.Task.StuckTaskAgeMinutes) * time.Minute,
	}, logger)
	app.taskRunner.SetResolver(app.taskFactory)

	if err := app.taskRunner.Start(); err != nil {
		return nil, fmt.Errorf("failed to start task runner: %w", err)
	}

	// Initialize the batch scheduling service
	app.scheduleService, err = service.NewScheduleService(
		app.postStore,
		app.taskFactory,
		app.taskRunner,
		cfg.Content,
		cfg.Messages,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule service: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
