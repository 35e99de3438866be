// Package journal keeps a local history of publish attempts. Recording is
// best-effort: the orchestrator never fails an attempt over a journal
// error.
package journal

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Attempt kinds and outcomes.
const (
	KindCreate = "create"
	KindUpdate = "update"

	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Attempt is one end-to-end publish execution for one note.
type Attempt struct {
	ID        string
	NotePath  string
	Profile   string
	Kind      string
	Status    string
	PostURL   string
	Warnings  int
	Error     string
	StartedAt time.Time
	Duration  time.Duration
}

// Journal is a SQLite-backed attempt log.
// Uses WAL mode so `owp history` can read while a publish writes.
type Journal struct {
	db *sql.DB
}

// Open creates or opens the journal database at path. Idempotent.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to journal: %w", err)
	}

	// SQLite supports one writer at a time; keep a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("executing %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Record inserts one attempt. An empty ID gets a fresh UUID.
func (j *Journal) Record(a Attempt) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.StartedAt.IsZero() {
		a.StartedAt = time.Now()
	}
	_, err := j.db.Exec(`
		INSERT INTO attempts (id, note_path, profile, kind, status, post_url, warnings, error, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.NotePath, a.Profile, a.Kind, a.Status, a.PostURL,
		a.Warnings, a.Error, a.StartedAt.UTC().Format(time.RFC3339Nano),
		a.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("recording attempt: %w", err)
	}
	return nil
}

// Recent returns the most recent attempts, newest first.
func (j *Journal) Recent(limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.Query(`
		SELECT id, note_path, profile, kind, status, post_url, warnings, error, started_at, duration_ms
		FROM attempts
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var a Attempt
		var startedAt string
		var durationMS int64
		if err := rows.Scan(&a.ID, &a.NotePath, &a.Profile, &a.Kind, &a.Status,
			&a.PostURL, &a.Warnings, &a.Error, &startedAt, &durationMS); err != nil {
			return nil, err
		}
		a.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)
		a.Duration = time.Duration(durationMS) * time.Millisecond
		out = append(out, a)
	}
	return out, rows.Err()
}
