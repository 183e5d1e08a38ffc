package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/thrones-api/internal/config"
	"github.com/phrazzld/thrones-api/internal/platform/database"
	"github.com/phrazzld/thrones-api/internal/service"
	"github.com/phrazzld/thrones-api/internal/service/auth"
	"github.com/phrazzld/thrones-api/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config

	logger   *slog.Logger
	db       *sql.DB
	dialect  database.Dialect
	registry *prometheus.Registry

	characterStore store.CharacterStore
	userStore      store.UserStore

	jwtService       auth.JWTService
	characterService service.CharacterService
	userService      service.UserService
}

// newApplication creates a new application instance with all dependencies initialized.
// The database must already be open and migrated.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	dialect database.Dialect,
) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		db:       db,
		dialect:  dialect,
		registry: prometheus.NewRegistry(),
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	app.characterStore = database.NewCharacterStore(db, dialect, logger)
	app.userStore = database.NewUserStore(db, dialect, logger)

	app.characterService = service.NewCharacterService(app.characterStore, db, logger)
	app.userService = service.NewUserService(
		app.userStore,
		db,
		auth.NewBcryptHasher(cfg.Auth.BCryptCost),
		auth.NewBcryptVerifier(),
		logger,
	)

	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, "thrones"),
	)

	logger.Info("application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
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
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}
