// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index keeps extracted outlines in a SQLite catalog so that
// headings can be listed and searched across the indexed documents.
package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdf-outline/pkg/types"
)

const dbFile = "outlines.db"

// ErrNotIndexed is returned when a document has no catalog entry.
var ErrNotIndexed = errors.New("document not indexed")

// Store manages the outline catalog database.
type Store struct {
	db         *sql.DB
	maxResults int
	now        func() time.Time
}

// DocumentSummary describes one indexed document.
type DocumentSummary struct {
	ID        string    `json:"id" yaml:"id"`
	Path      string    `json:"path" yaml:"path"`
	Title     string    `json:"title" yaml:"title"`
	Headings  int       `json:"headings" yaml:"headings"`
	IndexedAt time.Time `json:"indexed_at" yaml:"indexed_at"`
}

// NewStore opens or creates the catalog at cfg.Dir/outlines.db and
// creates the schema if it does not exist.
func NewStore(cfg types.IndexConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 50
	}

	s := &Store{
		db:         db,
		maxResults: maxResults,
		now:        time.Now,
	}

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
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			path TEXT NOT NULL,
			title TEXT NOT NULL,
			indexed_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS headings (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			doc_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			level TEXT NOT NULL,
			text TEXT NOT NULL,
			page INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_headings_doc_id ON headings(doc_id, seq)`,
		`CREATE INDEX IF NOT EXISTS idx_headings_level ON headings(level)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save records the outline of docID, replacing any earlier entry.
func (s *Store) Save(ctx context.Context, docID, path string, res *types.OutlineResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (id, path, title, indexed_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			path=excluded.path, title=excluded.title, indexed_at=excluded.indexed_at`,
		docID, path, res.Title, s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upserting document: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM headings WHERE doc_id = ?`, docID); err != nil {
		return fmt.Errorf("deleting old headings: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO headings (doc_id, seq, level, text, page) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, h := range res.Outline {
		if _, err := stmt.ExecContext(ctx, docID, i, string(h.Level), h.Text, h.Page); err != nil {
			return fmt.Errorf("inserting heading %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Get returns the stored outline of docID.
func (s *Store) Get(ctx context.Context, docID string) (*types.OutlineResult, error) {
	res := &types.OutlineResult{Outline: []types.HeadingEntry{}}
	err := s.db.QueryRowContext(ctx,
		`SELECT title FROM documents WHERE id = ?`, docID,
	).Scan(&res.Title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotIndexed, docID)
		}
		return nil, fmt.Errorf("looking up document: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT level, text, page FROM headings WHERE doc_id = ? ORDER BY seq`, docID)
	if err != nil {
		return nil, fmt.Errorf("querying headings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			h     types.HeadingEntry
			level string
		)
		if err := rows.Scan(&level, &h.Text, &h.Page); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		h.Level = types.HeadingLevel(level)
		res.Outline = append(res.Outline, h)
	}
	return res, rows.Err()
}

// List returns every indexed document ordered by ID.
func (s *Store) List(ctx context.Context) ([]DocumentSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT d.id, d.path, d.title, d.indexed_at, COUNT(h.rowid)
		FROM documents d
		LEFT JOIN headings h ON h.doc_id = d.id
		GROUP BY d.id
		ORDER BY d.id`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []DocumentSummary
	for rows.Next() {
		var (
			d         DocumentSummary
			indexedAt string
		)
		if err := rows.Scan(&d.ID, &d.Path, &d.Title, &indexedAt, &d.Headings); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		d.IndexedAt, _ = time.Parse(time.RFC3339Nano, indexedAt)
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// Delete removes docID and its headings. Deleting an unknown document
// returns ErrNotIndexed.
func (s *Store) Delete(ctx context.Context, docID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, docID)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotIndexed, docID)
	}
	return nil
}
