package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/phrazzld/thrones-api/internal/config"
	"github.com/stretchr/testify/require"
)

// openTestDB returns a migrated in-memory SQLite database closed at test cleanup.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	db, dialect, err := Open(ctx, config.DatabaseConfig{URL: "sqlite://:memory:"}, nil)
	require.NoError(t, err)
	require.Equal(t, DialectSQLite, dialect)
	t.Cleanup(func() { _ = db.Close() })

	migrator, err := NewMigrator(db, dialect, nil)
	require.NoError(t, err)
	require.NoError(t, migrator.Up(ctx))

	return db
}
