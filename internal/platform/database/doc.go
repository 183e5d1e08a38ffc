// Package database provides the SQL implementations of the storage
// interfaces defined in internal/store, for PostgreSQL (through the pgx
// stdlib driver) and SQLite (through the pure Go modernc driver).
//
// It handles opening connections from a URL, rewriting placeholders for the
// active dialect, mapping driver errors to store errors, and applying the
// embedded goose migrations for each dialect.
package database
