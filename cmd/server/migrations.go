package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/thrones-api/internal/platform/database"
)

const migrateUp = database.MigrateUp

// handleMigrations executes one migration command against db.
func handleMigrations(
	ctx context.Context,
	db *sql.DB,
	dialect database.Dialect,
	command string,
	logger *slog.Logger,
) error {
	migrator, err := database.NewMigrator(db, dialect, logger)
	if err != nil {
		return fmt.Errorf("failed to prepare migrations: %w", err)
	}

	logger.Info("executing migrations", slog.String("command", command))
	if err := migrator.Run(ctx, command); err != nil {
		return fmt.Errorf("migration %q failed: %w", command, err)
	}
	return nil
}
