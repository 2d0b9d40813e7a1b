// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite journal of per-draft pipeline outcomes.
// The journal is an operator audit trail: it shows what a re-run would
// duplicate in the catalog index, but it never changes pipeline behavior.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Record statuses.
const (
	StatusProcessed = "processed"
	StatusSkipped   = "skipped"
)

// Entry is one journal row.
type Entry struct {
	DraftID     string
	Title       string
	Slug        string
	Status      string
	Detail      string
	Mode        string
	ProcessedAt time.Time
}

// Store manages the journal database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the journal at dbPath, creating the schema when
// missing.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			draft_id TEXT NOT NULL,
			title TEXT,
			slug TEXT,
			status TEXT NOT NULL,
			detail TEXT,
			mode TEXT,
			processed_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_slug ON runs(slug)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends one outcome row.
func (s *Store) Record(e Entry) error {
	if e.ProcessedAt.IsZero() {
		e.ProcessedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (draft_id, title, slug, status, detail, mode, processed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.DraftID, e.Title, e.Slug, e.Status, e.Detail, e.Mode,
		e.ProcessedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording history entry: %w", err)
	}
	return nil
}

// BySlug returns how many processed rows already exist for a slug.
func (s *Store) BySlug(slug string) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM runs WHERE slug = ? AND status = ?`,
		slug, StatusProcessed,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("querying history by slug: %w", err)
	}
	return n, nil
}

// Recent returns the newest rows, most recent first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT draft_id, title, slug, status, detail, mode, processed_at
		 FROM runs ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.DraftID, &e.Title, &e.Slug, &e.Status, &e.Detail, &e.Mode, &ts); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if t, perr := time.Parse(time.RFC3339, ts); perr == nil {
			e.ProcessedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
