// Package database provides database connection and schema management.
package database

import (
	"context"
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/hrathore/padhai/internal/config"
)

// DateLayout is the canonical format for date columns.
const DateLayout = "2006-01-02"

//go:embed schema.sql
var schemaSQL string

// Open opens a SQLite connection using the provided config, creating the
// parent directory if needed.
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
		}
	}

	params := url.Values{}
	params.Add("_pragma", "journal_mode(WAL)")
	params.Add("_pragma", "foreign_keys(1)")
	if cfg.BusyTimeoutMs > 0 {
		params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", cfg.BusyTimeoutMs))
	}

	dsn := fmt.Sprintf("file:%s?%s", cfg.Path, params.Encode())
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open() > %w", err)
	}

	// A single writer keeps SQLite happy under WAL.
	db.SetMaxOpenConns(1)

	return db, nil
}

// EnsureSchema creates all tables. Idempotent.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("db.ExecContext(schema) > %w", err)
	}
	return nil
}
