package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/thrones-api/internal/config"
	"github.com/phrazzld/thrones-api/internal/platform/database"
)

// setupAppDatabase opens the database named by the configured URL and
// verifies connectivity.
func setupAppDatabase(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (*sql.DB, database.Dialect, error) {
	db, dialect, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, "", fmt.Errorf("failed to set up database: %w", err)
	}
	return db, dialect, nil
}
