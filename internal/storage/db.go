package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"workouttimer/internal/platform"

	_ "modernc.org/sqlite"
)

const (
	historyFileName = "history.db"
	// DBPathEnv overrides the history database location.
	DBPathEnv = "WORKOUT_DB"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		mode TEXT NOT NULL CHECK (mode IN ('tabata', 'boxing', 'custom')),
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL,
		prep_seconds INTEGER NOT NULL DEFAULT 0,
		work_seconds INTEGER NOT NULL DEFAULT 0,
		rest_seconds INTEGER NOT NULL DEFAULT 0,
		cooldown_seconds INTEGER NOT NULL DEFAULT 0,
		rounds_completed INTEGER NOT NULL DEFAULT 0,
		total_seconds INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_finished_at ON sessions(finished_at)`,
}

// OpenDB opens the SQLite history database at path and applies migrations.
// ":memory:" opens a private in-memory database.
func OpenDB(path string) (*sql.DB, error) {
	memory := path == ":memory:"
	if !memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if memory {
		// every pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// ResolveDBPath returns WORKOUT_DB if set, otherwise history.db in the
// per-user data directory for appName.
func ResolveDBPath(appName string) (string, error) {
	if path := os.Getenv(DBPathEnv); path != "" {
		return path, nil
	}
	dir, err := platform.DataDir(appName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, historyFileName), nil
}
