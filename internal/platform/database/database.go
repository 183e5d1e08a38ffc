package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/phrazzld/thrones-api/internal/config"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// pingTimeout bounds the connectivity check performed by Open.
const pingTimeout = 5 * time.Second

// Open establishes a connection pool for cfg.URL, configures it for the
// detected dialect and verifies connectivity with a ping.
//
// SQLite pools are pinned to a single long-lived connection: writers
// serialize anyway, and an in-memory database lives only as long as the
// connection that created it.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, Dialect, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dialect, dsn, err := ParseURL(cfg.URL)
	if err != nil {
		return nil, "", err
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database connection: %w", err)
	}

	switch dialect {
	case DialectSQLite:
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	default:
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("failed to ping database: %w", err)
	}

	if dialect == DialectSQLite {
		if err := configureSQLite(ctx, db, dsn); err != nil {
			_ = db.Close()
			return nil, "", err
		}
	}

	logger.Info("database connection established",
		slog.String("dialect", string(dialect)),
		slog.Int("max_open_conns", db.Stats().MaxOpenConnections))
	return db, dialect, nil
}

// configureSQLite applies connection pragmas. They are per connection, which
// is why the pool holds exactly one.
func configureSQLite(ctx context.Context, db *sql.DB, dsn string) error {
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	if !isMemory(dsn) {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}
	return nil
}
