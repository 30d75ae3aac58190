// Copyright © 2025 RNano contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: history/history.go
// Summary: SQLite store remembering the cursor position per file.
// Usage: Written on clean exit, read when a named file is opened again.

package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS positions (
	filename   TEXT PRIMARY KEY,
	line       INTEGER NOT NULL,
	col        INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// Store persists per-file cursor positions across editor sessions.
type Store struct {
	db *sql.DB
}

// DefaultPath resolves the database location under the user state dir.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "rnano", "history.db"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".local", "state", "rnano", "history.db"), nil
}

// Open creates or opens the store at path, creating parent directories
// and the schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Record stores the cursor position for filename, replacing any previous
// entry.
func (s *Store) Record(filename string, line, col int) error {
	_, err := s.db.Exec(`
		INSERT INTO positions (filename, line, col, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(filename) DO UPDATE SET
			line = excluded.line,
			col = excluded.col,
			updated_at = excluded.updated_at`,
		filename, line, col, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("record position: %w", err)
	}
	return nil
}

// Position returns the stored cursor position for filename. ok is false
// when the file has never been recorded.
func (s *Store) Position(filename string) (line, col int, ok bool, err error) {
	row := s.db.QueryRow(`SELECT line, col FROM positions WHERE filename = ?`, filename)
	switch err = row.Scan(&line, &col); err {
	case nil:
		return line, col, true, nil
	case sql.ErrNoRows:
		return 0, 0, false, nil
	default:
		return 0, 0, false, fmt.Errorf("read position: %w", err)
	}
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
