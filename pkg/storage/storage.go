package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Config captures the connection settings for the article index database.
type Config struct {
	// Driver is "sqlite" (or "sqlite3") or "postgres".
	Driver string
	// DSN is the connection string, e.g. "file:corpus.db" or a postgres URI.
	DSN string
	// MaxOpenConns bounds the pool; zero keeps the driver default.
	MaxOpenConns int
}

// DefaultConfig returns an on-disk sqlite database in the working directory.
func DefaultConfig() Config {
	return Config{
		Driver: "sqlite3",
		DSN:    "file:corpus.db?_fk=1",
	}
}

// Open connects to the configured database and wraps it in a bun.DB with the
// matching dialect.
func Open(cfg Config) (*bun.DB, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	switch driver {
	case "", "sqlite":
		// config speaks "sqlite"; database/sql registers mattn as "sqlite3"
		driver = "sqlite3"
	}
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, fmt.Errorf("storage: dsn is required")
	}

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", driver, err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	switch driver {
	case "sqlite3":
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case "postgres":
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		sqlDB.Close()
		return nil, fmt.Errorf("storage: unsupported driver %q", cfg.Driver)
	}
}
