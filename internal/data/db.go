package data

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // Register the PostgreSQL driver with database/sql.
	_ "modernc.org/sqlite" // Register the pure-Go SQLite driver with database/sql.
)

// Supported values for the database driver setting.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DB is a database handle that also knows which SQL dialect to build
// statements for.
type DB struct {
	*sqlx.DB
	dialect string
}

// Open opens a connection pool for driver and dsn, pings it with a 5-second
// timeout, applies driver pragmas and creates the schema if needed.
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	var dialect string
	switch driver {
	case DriverSQLite:
		dialect = "sqlite3"
		if err := ensureDir(dsn); err != nil {
			return nil, err
		}
	case DriverPostgres:
		dialect = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	// sqlx.Open only validates the DSN format; it does not actually connect yet.
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if driver == DriverSQLite {
		// One writer at a time keeps SQLite from returning SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	handle := &DB{DB: db, dialect: dialect}

	if driver == DriverSQLite {
		if err := applyPragmas(ctx, handle); err != nil {
			db.Close()
			return nil, err
		}
	}

	if err := migrate(ctx, handle); err != nil {
		db.Close()
		return nil, err
	}

	return handle, nil
}

// builder returns a goqu statement builder for the handle's dialect.
func (db *DB) builder() goqu.DialectWrapper {
	return goqu.Dialect(db.dialect)
}

func ensureDir(dsn string) error {
	if dsn == "" {
		return fmt.Errorf("sqlite database path is empty")
	}
	if dsn == ":memory:" || filepath.Dir(dsn) == "." {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}
	return nil
}

func applyPragmas(ctx context.Context, db *DB) error {
	pragma := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	}

	for _, stmt := range pragma {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply pragma: %w", err)
		}
	}
	return nil
}
