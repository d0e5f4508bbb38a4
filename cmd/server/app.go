package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/parla-app/parla-api/internal/config"
	"github.com/parla-app/parla-api/internal/domain/srs"
	"github.com/parla-app/parla-api/internal/platform/postgres"
	"github.com/parla-app/parla-api/internal/service/auth"
	"github.com/parla-app/parla-api/internal/service/practice"
	"github.com/parla-app/parla-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	itemStore        store.ItemStore
	reviewStateStore store.ReviewStateStore
	streakStore      store.StreakStore

	// Service interfaces
	jwtService      auth.JWTService
	practiceService practice.Service
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger,
// and database connection that must be established before application
// initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Initialize stores
	app.itemStore = postgres.NewPostgresItemStore(db, logger)
	app.reviewStateStore = postgres.NewPostgresReviewStateStore(db, logger)
	app.streakStore = postgres.NewPostgresStreakStore(db, logger)

	// Initialize the practice service with both scheduling models
	registry := srs.NewRegistry(srs.NewDefaultParams())
	app.practiceService = practice.NewService(
		app.itemStore,
		app.reviewStateStore,
		app.streakStore,
		registry,
		practice.Config{
			DistractorCount: cfg.Practice.DistractorCount,
			MaxSessionItems: cfg.Practice.MaxSessionItems,
		},
		logger,
	)

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
