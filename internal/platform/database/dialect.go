package database

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect identifies the SQL flavour spoken by a connection.
type Dialect string

// Supported dialects.
const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// DriverName returns the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	switch d {
	case DialectPostgres:
		return "pgx"
	case DialectSQLite:
		return "sqlite"
	default:
		return ""
	}
}

// Rebind rewrites ? placeholders into the dialect's bind syntax.
// Question marks inside single-quoted literals are left alone.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ParseURL detects the dialect of a database URL and returns the DSN to hand
// to the driver.
//
//	postgres://... postgresql://...     PostgreSQL, URL passed through
//	sqlite://thrones.db                 SQLite file relative to the working directory
//	sqlite:///./thrones.db              same, SQLAlchemy form
//	sqlite:////var/lib/thrones.db       absolute path
//	sqlite://, sqlite::memory:, :memory: in-memory database
//	file:...                            SQLite URI passed through
func ParseURL(url string) (Dialect, string, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return DialectPostgres, url, nil
	case strings.HasPrefix(url, "sqlite:///"):
		return DialectSQLite, sqlitePath(strings.TrimPrefix(url, "sqlite:///")), nil
	case strings.HasPrefix(url, "sqlite://"):
		return DialectSQLite, sqlitePath(strings.TrimPrefix(url, "sqlite://")), nil
	case strings.HasPrefix(url, "sqlite:"):
		return DialectSQLite, sqlitePath(strings.TrimPrefix(url, "sqlite:")), nil
	case strings.HasPrefix(url, "file:"), url == ":memory:":
		return DialectSQLite, url, nil
	case url == "":
		return "", "", fmt.Errorf("database URL is empty")
	default:
		return "", "", fmt.Errorf("unsupported database URL scheme (expected postgres://, postgresql:// or sqlite://)")
	}
}

func sqlitePath(p string) string {
	if p == "" {
		return ":memory:"
	}
	return p
}

// isMemory reports whether a SQLite DSN names an in-memory database.
func isMemory(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}
