package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/library-catalog/catalog/internal/data"
)

// appConfig holds all the values that can be tweaked at startup, either via
// command-line flags or via CATALOG_* environment variables (optionally from .env).
type appConfig struct {
	environment string // Runtime environment: development, staging, or production
	db          struct {
		driver string // sqlite or postgres
		dsn    string // SQLite file path or PostgreSQL connection string
	}
	log loggerOptions
}

// loadConfig reads .env (if present) and then parses args. Environment
// variables provide the flag defaults, so an explicit flag always wins.
func loadConfig(args []string) (appConfig, error) {
	// A missing .env is normal; the variables may come from the real environment.
	_ = godotenv.Load()

	var cfg appConfig

	fs := flag.NewFlagSet("catalog", flag.ContinueOnError)
	fs.StringVar(&cfg.environment, "env", envOr("CATALOG_ENV", "development"), "Environment(development|staging|production)")
	fs.StringVar(&cfg.db.driver, "db-driver", envOr("CATALOG_DB_DRIVER", data.DriverSQLite), "Database driver(sqlite|postgres)")
	fs.StringVar(&cfg.db.dsn, "db-dsn", envOr("CATALOG_DB_DSN", "data/catalog.db"), "SQLite path or PostgreSQL DSN")
	fs.StringVar(&cfg.log.level, "log-level", envOr("CATALOG_LOG_LEVEL", "info"), "Log level(debug|info|warn|error)")
	fs.StringVar(&cfg.log.file, "log-file", envOr("CATALOG_LOG_FILE", ""), "Append logs to this file instead of stderr")
	fs.StringVar(&cfg.log.format, "log-format", envOr("CATALOG_LOG_FORMAT", "text"), "Log format(text|json)")

	if err := fs.Parse(args); err != nil {
		return appConfig{}, err
	}

	switch cfg.db.driver {
	case data.DriverSQLite:
		cfg.db.dsn = resolvePath(cfg.db.dsn)
	case data.DriverPostgres:
	default:
		return appConfig{}, fmt.Errorf("unsupported -db-driver %q", cfg.db.driver)
	}

	if strings.TrimSpace(cfg.db.dsn) == "" {
		return appConfig{}, fmt.Errorf("database DSN must not be empty")
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

// resolvePath makes a relative SQLite path absolute against the working directory.
func resolvePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || p == ":memory:" || strings.HasPrefix(p, "file:") || filepath.IsAbs(p) {
		return p
	}

	if cwd, err := os.Getwd(); err == nil {
		return filepath.Clean(filepath.Join(cwd, p))
	}
	return p
}
