// Package history persists per-recording processing results in SQLite so
// past runs can be reviewed from the CLI.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Outcome classifies how processing a recording ended.
type Outcome string

const (
	OutcomeDone       Outcome = "done"
	OutcomeFailed     Outcome = "failed"
	OutcomeSkipped    Outcome = "skipped"
	OutcomeNoChapters Outcome = "no_chapters"
)

func (o Outcome) String() string { return string(o) }

// Entry is one recorded processing run.
type Entry struct {
	ID           int64
	RunID        string
	SourcePath   string
	Outcome      Outcome
	ChapterCount int
	ErrorText    string
	CreatedAt    time.Time
}

// Store manages run history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("history: database path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("history: ensure directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("history: apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts one processing result.
func (s *Store) Record(ctx context.Context, entry Entry) (int64, error) {
	if s == nil || s.db == nil {
		return 0, fmt.Errorf("history: store not open")
	}
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (run_id, source_path, outcome, chapter_count, error_text, created_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		entry.RunID,
		entry.SourcePath,
		string(entry.Outcome),
		entry.ChapterCount,
		nullableString(entry.ErrorText),
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("history: insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("history: last insert id: %w", err)
	}
	return id, nil
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("history: store not open")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, run_id, source_path, outcome, chapter_count, error_text, created_at
         FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("history: query runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry     Entry
			outcome   string
			errorText sql.NullString
			createdAt string
		)
		if err := rows.Scan(&entry.ID, &entry.RunID, &entry.SourcePath, &outcome, &entry.ChapterCount, &errorText, &createdAt); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		entry.Outcome = Outcome(outcome)
		if errorText.Valid {
			entry.ErrorText = errorText.String
		}
		if parsed, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
			entry.CreatedAt = parsed
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate runs: %w", err)
	}
	return entries, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
