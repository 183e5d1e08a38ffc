// Package main implements the entry point for the Thrones API server, a JSON
// API over Game of Thrones characters with bearer-token authentication.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up, down, status, version, reset) and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *migrateCmd); err != nil {
		fmt.Fprintf(os.Stderr, "thrones-api: %v\n", err)
		os.Exit(1)
	}
}

// run loads configuration, connects to the database and then either executes
// a single migration command or serves HTTP until ctx is canceled.
func run(ctx context.Context, migrateCmd string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	db, dialect, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer func() { _ = db.Close() }()
		return handleMigrations(ctx, db, dialect, migrateCmd, logger)
	}

	if cfg.Database.AutoMigrate {
		if err := handleMigrations(ctx, db, dialect, migrateUp, logger); err != nil {
			_ = db.Close()
			return err
		}
	}

	app, err := newApplication(cfg, logger, db, dialect)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
