// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal keeps a SQLite history of conversion runs.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdf2docx/pkg/types"
)

// DefaultLimit is the number of entries List returns when limit <= 0.
const DefaultLimit = 20

// timeLayout is fixed width so started_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Entry is one recorded conversion.
type Entry struct {
	ID        int64                  `json:"id" yaml:"id"`
	Source    string                 `json:"source" yaml:"source"`
	Output    string                 `json:"output,omitempty" yaml:"output,omitempty"`
	Backend   string                 `json:"backend" yaml:"backend"`
	Status    types.ConversionStatus `json:"status" yaml:"status"`
	Pages     int                    `json:"pages" yaml:"pages"`
	Lines     int                    `json:"lines" yaml:"lines"`
	Bytes     int                    `json:"bytes" yaml:"bytes"`
	Error     string                 `json:"error,omitempty" yaml:"error,omitempty"`
	StartedAt time.Time              `json:"started_at" yaml:"started_at"`
	Duration  time.Duration          `json:"duration" yaml:"duration"`
}

// Journal is the conversion history database.
type Journal struct {
	db *sql.DB
}

// Open opens or creates the journal database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}

	j := &Journal{db: db}
	if err := j.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return j, nil
}

// Close releases the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			output TEXT,
			backend TEXT,
			status TEXT NOT NULL,
			pages INTEGER,
			lines INTEGER,
			bytes INTEGER,
			error TEXT,
			started_at TEXT NOT NULL,
			duration_ns INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_started ON conversions(started_at)`,
	}
	for _, stmt := range statements {
		if _, err := j.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts e and returns its assigned ID.
func (j *Journal) Record(ctx context.Context, e Entry) (int64, error) {
	if e.StartedAt.IsZero() {
		e.StartedAt = time.Now()
	}
	res, err := j.db.ExecContext(ctx,
		`INSERT INTO conversions (source, output, backend, status, pages, lines, bytes, error, started_at, duration_ns)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Source, e.Output, e.Backend, string(e.Status),
		e.Pages, e.Lines, e.Bytes, e.Error,
		e.StartedAt.UTC().Format(timeLayout), int64(e.Duration),
	)
	if err != nil {
		return 0, fmt.Errorf("recording %s: %w", e.Source, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading entry id: %w", err)
	}
	return id, nil
}

// List returns up to limit entries, most recent first.
func (j *Journal) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, source, COALESCE(output, ''), COALESCE(backend, ''), status,
			COALESCE(pages, 0), COALESCE(lines, 0), COALESCE(bytes, 0),
			COALESCE(error, ''), started_at, COALESCE(duration_ns, 0)
		 FROM conversions
		 ORDER BY started_at DESC, id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			status  string
			started string
			dur     int64
		)
		if err := rows.Scan(&e.ID, &e.Source, &e.Output, &e.Backend, &status,
			&e.Pages, &e.Lines, &e.Bytes, &e.Error, &started, &dur); err != nil {
			return nil, fmt.Errorf("scanning journal row: %w", err)
		}
		e.Status = types.ConversionStatus(status)
		e.Duration = time.Duration(dur)
		if t, err := time.Parse(timeLayout, started); err == nil {
			e.StartedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
