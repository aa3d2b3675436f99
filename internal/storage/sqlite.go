// Package storage provides the SQLite-backed catalog store.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/matsen/bookshelf/internal/book"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no catalog entry matches the requested id.
var ErrNotFound = errors.New("not found")

// ErrUnavailable marks failures to open the database or create its schema.
var ErrUnavailable = errors.New("catalog store unavailable")

// legacyTimeFormat is what CURRENT_TIMESTAMP produces for rows written
// without an explicit added_on.
const legacyTimeFormat = "2006-01-02 15:04:05"

// DB wraps a SQLite database connection.
type DB struct {
	db  *sql.DB
	now func() time.Time
}

// OpenDB opens or creates a SQLite database at the given path.
// The schema is not created; call EnsureSchema once after opening.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %w", ErrUnavailable, err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: opening database: %w", ErrUnavailable, err)
	}

	return &DB{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// SetClock replaces the time source used for added_on. Intended for tests.
func (d *DB) SetClock(now func() time.Time) {
	d.now = now
}

// EnsureSchema creates the books table if it doesn't exist.
func (d *DB) EnsureSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS books (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			filename TEXT NOT NULL UNIQUE,
			filetype TEXT NOT NULL,
			size_bytes INTEGER DEFAULT 0,
			sha256 TEXT,
			tags TEXT,
			added_on TEXT DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_books_added_on ON books(added_on);
	`
	if _, err := d.db.Exec(schema); err != nil {
		return fmt.Errorf("%w: creating schema: %w", ErrUnavailable, err)
	}
	return nil
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func formatTime(t time.Time) string {
	return t.UTC().Format(book.TimeFormat)
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(book.TimeFormat, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(legacyTimeFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing added_on %q: %w", s, err)
	}
	return t, nil
}
