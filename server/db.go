package server

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect names the SQL backend behind a DSN
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DialectFor picks the backend from a DSN. postgres:// and postgresql://
// URLs go to postgres, everything else is treated as a sqlite path.
func DialectFor(dsn string) Dialect {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

// placeholders returns the bind style of the dialect
func (d Dialect) placeholders() sq.PlaceholderFormat {
	if d == DialectPostgres {
		return sq.Dollar
	}
	return sq.Question
}

// DefaultDBPath returns the default sqlite database path (~/.taskdeck/server.db)
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".taskdeck", "server.db"), nil
}

// OpenDB opens the database named by dsn and runs the migrations
func OpenDB(dsn string) (*sqlx.DB, Dialect, error) {
	dialect := DialectFor(dsn)

	if dialect == DialectSQLite && dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, "", fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sqlx.Open(string(dialect), dsn)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, "", fmt.Errorf("failed to connect to database: %w", err)
	}

	if dialect == DialectSQLite {
		// a single connection keeps :memory: databases alive and avoids SQLITE_BUSY
		db.SetMaxOpenConns(1)
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, "", fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, "", fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, dialect, nil
}
