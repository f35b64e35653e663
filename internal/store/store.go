package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store owns the SQLite handle behind the LLM event log.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies pragmas and
// creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps per-connection pragmas in force and matches
	// SQLite's single writer.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Close() error {
	return s.db.Close()
}

// EventRepo returns the event log backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db}
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS ` + llmEventsTable + ` (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp     INTEGER NOT NULL,
		provider      TEXT    NOT NULL,
		model         TEXT    NOT NULL,
		purpose       TEXT    NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL,
		error_message TEXT    NOT NULL DEFAULT '',
		request_body  TEXT    NOT NULL DEFAULT '',
		response_body TEXT    NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS llm_request_events_timestamp ON ` + llmEventsTable + ` (timestamp)`,
	`CREATE INDEX IF NOT EXISTS llm_request_events_purpose ON ` + llmEventsTable + ` (purpose)`,
}

func migrate(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. MATEMAGICA_DB environment variable
// 2. $XDG_DATA_HOME/matemagica/matemagica.db
// 3. ~/.local/share/matemagica/matemagica.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("MATEMAGICA_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "matemagica", "matemagica.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
