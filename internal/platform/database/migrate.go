package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var embeddedMigrations embed.FS

// Migration commands accepted by Migrator.Run.
const (
	MigrateUp      = "up"
	MigrateDown    = "down"
	MigrateStatus  = "status"
	MigrateVersion = "version"
	MigrateReset   = "reset"
)

// MigrationFS returns the migration files for dialect, rooted at the dialect directory.
func MigrationFS(dialect Dialect) (fs.FS, error) {
	switch dialect {
	case DialectPostgres, DialectSQLite:
		return fs.Sub(embeddedMigrations, "migrations/"+string(dialect))
	default:
		return nil, fmt.Errorf("no migrations for dialect %q", dialect)
	}
}

// Migrator applies the embedded schema migrations with a goose Provider.
// Providers keep no global state, so several databases can be migrated
// concurrently (as the tests do).
type Migrator struct {
	provider *goose.Provider
	logger   *slog.Logger
}

// NewMigrator creates a Migrator for db using the migrations of dialect.
func NewMigrator(db *sql.DB, dialect Dialect, logger *slog.Logger) (*Migrator, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fsys, err := MigrationFS(dialect)
	if err != nil {
		return nil, err
	}

	gooseDialect := goose.DialectPostgres
	if dialect == DialectSQLite {
		gooseDialect = goose.DialectSQLite3
	}

	provider, err := goose.NewProvider(gooseDialect, db, fsys,
		goose.WithDisableGlobalRegistry(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}

	return &Migrator{
		provider: provider,
		logger: logger.With(
			slog.String("component", "migrations"),
			slog.String("correlation_id", uuid.New().String()),
		),
	}, nil
}

// Run executes one of the Migrate* commands.
func (m *Migrator) Run(ctx context.Context, command string) error {
	startTime := time.Now()
	log := m.logger.With(slog.String("command", command))
	log.Info("starting migration operation")

	var err error
	switch command {
	case MigrateUp:
		err = m.Up(ctx)
	case MigrateDown:
		err = m.Down(ctx)
	case MigrateReset:
		err = m.Reset(ctx)
	case MigrateStatus:
		err = m.Status(ctx)
	case MigrateVersion:
		var version int64
		version, err = m.Version(ctx)
		if err == nil {
			log.Info("current migration version", slog.Int64("version", version))
		}
	default:
		err = fmt.Errorf("unknown migration command %q (expected up, down, status, version or reset)", command)
	}

	log.Info("migration operation completed",
		slog.Int64("duration_ms", time.Since(startTime).Milliseconds()),
		slog.Bool("success", err == nil))
	return err
}

// Up applies every pending migration.
func (m *Migrator) Up(ctx context.Context) error {
	results, err := m.provider.Up(ctx)
	m.logResults(results)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Down rolls back the most recent migration.
func (m *Migrator) Down(ctx context.Context) error {
	result, err := m.provider.Down(ctx)
	if result != nil {
		m.logResults([]*goose.MigrationResult{result})
	}
	if err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	return nil
}

// Reset rolls back every applied migration.
func (m *Migrator) Reset(ctx context.Context) error {
	results, err := m.provider.DownTo(ctx, 0)
	m.logResults(results)
	if err != nil {
		return fmt.Errorf("failed to reset migrations: %w", err)
	}
	return nil
}

// Status logs the state of every known migration.
func (m *Migrator) Status(ctx context.Context) error {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}
	for _, s := range statuses {
		attrs := []any{
			slog.Int64("version", s.Source.Version),
			slog.String("source", s.Source.Path),
			slog.String("state", string(s.State)),
		}
		if !s.AppliedAt.IsZero() {
			attrs = append(attrs, slog.Time("applied_at", s.AppliedAt))
		}
		m.logger.Info("migration status", attrs...)
	}
	return nil
}

// Version returns the version of the most recently applied migration, 0 when none are.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := m.provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read migration version: %w", err)
	}
	return version, nil
}

func (m *Migrator) logResults(results []*goose.MigrationResult) {
	for _, r := range results {
		if r == nil || r.Source == nil {
			continue
		}
		attrs := []any{
			slog.Int64("version", r.Source.Version),
			slog.String("source", r.Source.Path),
			slog.String("direction", r.Direction),
			slog.Int64("duration_ms", r.Duration.Milliseconds()),
		}
		if r.Error != nil {
			m.logger.Error("migration failed", append(attrs, slog.String("error", r.Error.Error()))...)
			continue
		}
		m.logger.Info("migration applied", attrs...)
	}
}
