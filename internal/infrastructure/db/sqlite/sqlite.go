package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	defaultTimeout     = 5 * time.Second
	defaultBusyTimeout = 5 * time.Second
)

// Config captures the settings for opening the on-device database.
type Config struct {
	Path        string
	BusyTimeout time.Duration
}

const schema = `
CREATE TABLE IF NOT EXISTS issues (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	issue_id          TEXT,
	title             TEXT,
	date              DATETIME,
	district          TEXT,
	province          TEXT,
	affected_area     TEXT,
	description       TEXT,
	expected_solution TEXT,
	created_by        TEXT
);
CREATE INDEX IF NOT EXISTS idx_issues_issue_id ON issues (issue_id);
CREATE INDEX IF NOT EXISTS idx_issues_key ON issues (title, created_by);

CREATE TABLE IF NOT EXISTS users (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	username   TEXT NOT NULL,
	password   TEXT NOT NULL,
	email      TEXT,
	created_at DATETIME
);
CREATE INDEX IF NOT EXISTS idx_users_username ON users (username);
`

// Open creates the database directory if needed, opens the file in WAL mode,
// verifies the connection and applies the schema.
//
// The pool is pinned to a single connection: SQLite allows one writer, and
// the issue store's pending transaction must see its own writes.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite: empty database path")
	}
	if cfg.Path != ":memory:" {
		dir := filepath.Dir(cfg.Path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory %q: %w", dir, err)
		}
	}

	busy := cfg.BusyTimeout
	if busy <= 0 {
		busy = defaultBusyTimeout
	}
	dsn := fmt.Sprintf("%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=%d", cfg.Path, busy.Milliseconds())

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}
	if _, err := db.ExecContext(pingCtx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	return db, nil
}
