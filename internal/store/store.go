// Package store persists finished interlinear documents keyed by the
// fingerprint of their source PDF, plus the reading library built on top
// of them. A document is written at most once per fingerprint and never
// overwritten; re-rendering a known PDF never re-runs the pipeline.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/entrelineas/entrelineas/internal/document"
)

// Cache is the document cache contract. Get returns (nil, false, nil)
// for an unseen fingerprint. Put for a fingerprint already present is a
// no-op: a PDF's content is immutable, so the first complete document
// wins. Implementations must support concurrent readers. The interface
// deliberately admits a bounded (e.g. LRU) layer in front without change.
type Cache interface {
	Get(ctx context.Context, fingerprint string) (*document.InterlinearDocument, bool, error)
	Put(ctx context.Context, fingerprint string, doc *document.InterlinearDocument) error
}

// Store is the SQLite-backed Cache plus the reading library.
type Store struct {
	db *sql.DB
}

var _ Cache = (*Store)(nil)

// New opens (creating if needed) the database at dbPath.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		fingerprint TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		page_count INTEGER NOT NULL,
		pair_count INTEGER NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- books is the reading library: one row per processed PDF, carrying
	-- the user's bookmark.
	CREATE TABLE IF NOT EXISTS books (
		fingerprint TEXT PRIMARY KEY,
		id TEXT NOT NULL,
		title TEXT NOT NULL,
		original_filename TEXT,
		total_sentences INTEGER NOT NULL,
		page_count INTEGER NOT NULL,
		current_page INTEGER DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		last_opened TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (fingerprint) REFERENCES documents(fingerprint)
	);

	CREATE INDEX IF NOT EXISTS idx_books_opened ON books(last_opened);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Get loads a cached document by fingerprint.
func (s *Store) Get(ctx context.Context, fingerprint string) (*document.InterlinearDocument, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM documents WHERE fingerprint = ?`, fingerprint).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var doc document.InterlinearDocument
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, false, fmt.Errorf("corrupt cached document %s: %w", fingerprint, err)
	}
	return &doc, true, nil
}

// Put stores a finished document. INSERT OR IGNORE makes a repeat put for
// the same fingerprint a no-op.
func (s *Store) Put(ctx context.Context, fingerprint string, doc *document.InterlinearDocument) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO documents (fingerprint, payload, page_count, pair_count) VALUES (?, ?, ?, ?)`,
		fingerprint, string(payload), doc.PageCount, len(doc.Pairs))
	return err
}

// Book is one reading-library row.
type Book struct {
	Fingerprint    string
	ID             string
	Title          string
	OriginalFile   string
	TotalSentences int
	PageCount      int
	CurrentPage    int
	CreatedAt      time.Time
	LastOpened     time.Time
}

// AddBook registers a processed PDF in the library. Re-adding the same
// fingerprint is a no-op, matching Put.
func (s *Store) AddBook(ctx context.Context, b Book) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO books (fingerprint, id, title, original_filename, total_sentences, page_count) VALUES (?, ?, ?, ?, ?, ?)`,
		b.Fingerprint, b.ID, b.Title, b.OriginalFile, b.TotalSentences, b.PageCount)
	return err
}

// ListBooks returns the library ordered by most recently opened.
func (s *Store) ListBooks(ctx context.Context) ([]Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT fingerprint, id, title, COALESCE(original_filename, ''), total_sentences, page_count, current_page, created_at, last_opened
		 FROM books ORDER BY last_opened DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.Fingerprint, &b.ID, &b.Title, &b.OriginalFile, &b.TotalSentences, &b.PageCount, &b.CurrentPage, &b.CreatedAt, &b.LastOpened); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// UpdateBookmark records the page the reader stopped at.
func (s *Store) UpdateBookmark(ctx context.Context, fingerprint string, page int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE books SET current_page = ?, last_opened = ? WHERE fingerprint = ?`,
		page, time.Now(), fingerprint)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no book with fingerprint %s", fingerprint)
	}
	return nil
}

// CacheStats summarises the document cache.
type CacheStats struct {
	Documents      int
	TotalPairs     int
	TotalPages     int
	OldestDocument time.Time
}

// Stats returns summary statistics for the document cache.
func (s *Store) Stats(ctx context.Context) (*CacheStats, error) {
	stats := &CacheStats{}
	var oldest sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(pair_count), 0), COALESCE(SUM(page_count), 0), MIN(created_at)
		FROM documents`).Scan(&stats.Documents, &stats.TotalPairs, &stats.TotalPages, &oldest)
	if err != nil {
		return nil, err
	}
	if oldest.Valid {
		stats.OldestDocument = oldest.Time
	}
	return stats, nil
}

// Clear removes all cached documents and library entries, returning the
// number of documents removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM books`); err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Close() error {
	return s.db.Close()
}
