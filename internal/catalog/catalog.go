// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog records completed runs in a SQLite database kept under
// the output directory, so past bundles can be listed without rescanning
// the filesystem.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// dbFile is the catalog database name inside the output directory.
const dbFile = "catalog.db"

// Entry is one recorded run.
type Entry struct {
	// RunID uniquely identifies the run; filled in by Record when empty.
	RunID string

	// Identifier is the arXiv paper ID the run fetched.
	Identifier string

	// Title is the bundle title (inferred or the identifier fallback).
	Title string

	// SourceURL is the canonical PDF URL.
	SourceURL string

	// BundleDir is the staged bundle directory.
	BundleDir string

	// PDFPath is the staged PDF inside the bundle.
	PDFPath string

	// ImageCount is the number of staged images.
	ImageCount int

	// CreatedAt is when the run completed; filled in by Record when zero.
	CreatedAt time.Time
}

// Store manages the run catalog database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the catalog database under outputDir, creating
// the schema when missing.
func Open(outputDir string) (*Store, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	dbPath := filepath.Join(outputDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
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
		`CREATE TABLE IF NOT EXISTS bundles (
			run_id TEXT PRIMARY KEY,
			identifier TEXT NOT NULL,
			title TEXT,
			source_url TEXT,
			bundle_dir TEXT NOT NULL,
			pdf_path TEXT,
			image_count INTEGER,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bundles_identifier ON bundles(identifier)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one completed run and returns the entry with RunID and
// CreatedAt populated.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.RunID == "" {
		e.RunID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bundles (run_id, identifier, title, source_url, bundle_dir, pdf_path, image_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Identifier, e.Title, e.SourceURL,
		e.BundleDir, e.PDFPath, e.ImageCount, e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("recording bundle: %w", err)
	}
	return e, nil
}

// List returns recorded runs, newest first. A limit of 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT run_id, identifier, title, source_url, bundle_dir, pdf_path, image_count, created_at
		 FROM bundles ORDER BY created_at DESC, run_id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying bundles: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.RunID, &e.Identifier, &e.Title, &e.SourceURL,
			&e.BundleDir, &e.PDFPath, &e.ImageCount, &created); err != nil {
			return nil, fmt.Errorf("scanning bundle row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bundle rows: %w", err)
	}
	return entries, nil
}
