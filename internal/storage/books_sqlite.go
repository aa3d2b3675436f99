package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/matsen/bookshelf/internal/book"
)

// selectBookFields contains the standard field list for SELECT queries.
const selectBookFields = `id, title, filename, filetype, size_bytes, sha256, tags, added_on`

// UpsertResult is the stored row after Upsert.
type UpsertResult struct {
	Book     book.Book
	Replaced bool // True when a row with the same filename already existed
}

// Upsert stores b keyed on its filename. An existing row with that filename
// has every column overwritten and added_on reset, keeping its id; otherwise
// a new row is inserted. b.ID and b.AddedOn are ignored.
func (d *DB) Upsert(b book.Book) (*UpsertResult, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	addedOn := d.now()
	stamp := formatTime(addedOn)

	var id int64
	replaced := true
	err = tx.QueryRow(`SELECT id FROM books WHERE filename = ?`, b.Filename).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		replaced = false
		res, err := tx.Exec(`
			INSERT INTO books (title, filename, filetype, size_bytes, sha256, tags, added_on)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, b.Title, b.Filename, b.Filetype, b.SizeBytes, b.SHA256, nullIfEmpty(b.Tags), stamp)
		if err != nil {
			return nil, fmt.Errorf("inserting %s: %w", b.Filename, err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("reading new id: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("looking up %s: %w", b.Filename, err)
	default:
		_, err = tx.Exec(`
			UPDATE books
			SET title = ?, filetype = ?, size_bytes = ?, sha256 = ?, tags = ?, added_on = ?
			WHERE id = ?
		`, b.Title, b.Filetype, b.SizeBytes, b.SHA256, nullIfEmpty(b.Tags), stamp, id)
		if err != nil {
			return nil, fmt.Errorf("replacing %s: %w", b.Filename, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing: %w", err)
	}

	b.ID = id
	b.AddedOn = addedOn.UTC().Truncate(time.Microsecond)
	return &UpsertResult{Book: b, Replaced: replaced}, nil
}

// List returns at most limit entries, newest first. A negative limit returns
// all entries; zero returns none.
func (d *DB) List(limit int) ([]book.Book, error) {
	if limit < 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := d.db.Query(`
		SELECT `+selectBookFields+`
		FROM books
		ORDER BY added_on DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}
	defer rows.Close()

	return scanBooks(rows)
}

// Search returns entries whose title or tags contain keyword, newest first.
// Matching is a case-sensitive substring test; no character in keyword is
// treated as a wildcard.
func (d *DB) Search(keyword string) ([]book.Book, error) {
	rows, err := d.db.Query(`
		SELECT `+selectBookFields+`
		FROM books
		WHERE instr(title, ?) > 0 OR instr(COALESCE(tags, ''), ?) > 0
		ORDER BY added_on DESC, id DESC
	`, keyword, keyword)
	if err != nil {
		return nil, fmt.Errorf("searching books: %w", err)
	}
	defer rows.Close()

	return scanBooks(rows)
}

// Get returns the entry with the given id, or ErrNotFound.
func (d *DB) Get(id int64) (*book.Book, error) {
	row := d.db.QueryRow(`SELECT `+selectBookFields+` FROM books WHERE id = ?`, id)
	b, err := scanBook(row)
	if err != nil {
		return nil, fmt.Errorf("getting book %d: %w", id, err)
	}
	return b, nil
}

// Delete removes the entry with the given id and returns its filename.
// Returns ErrNotFound, leaving the table unchanged, if there is no such id.
func (d *DB) Delete(id int64) (string, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var filename string
	err = tx.QueryRow(`SELECT filename FROM books WHERE id = ?`, id).Scan(&filename)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("book %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("looking up book %d: %w", id, err)
	}

	if _, err := tx.Exec(`DELETE FROM books WHERE id = ?`, id); err != nil {
		return "", fmt.Errorf("deleting book %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing: %w", err)
	}
	return filename, nil
}

// ListByID returns every entry ordered by ascending id.
func (d *DB) ListByID() ([]book.Book, error) {
	rows, err := d.db.Query(`SELECT ` + selectBookFields + ` FROM books ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}
	defer rows.Close()

	return scanBooks(rows)
}

// Count returns the total number of entries.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM books").Scan(&count)
	return count, err
}

// nullIfEmpty stores an empty string as NULL.
func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func scanBook(s scanner) (*book.Book, error) {
	var b book.Book
	var size sql.NullInt64
	var digest, tags, addedOn sql.NullString

	err := s.Scan(&b.ID, &b.Title, &b.Filename, &b.Filetype, &size, &digest, &tags, &addedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	b.SizeBytes = size.Int64
	b.SHA256 = digest.String
	b.Tags = tags.String
	if addedOn.Valid {
		b.AddedOn, err = parseTime(addedOn.String)
		if err != nil {
			return nil, err
		}
	}

	return &b, nil
}

func scanBooks(rows *sql.Rows) ([]book.Book, error) {
	books := []book.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, *b)
	}
	return books, rows.Err()
}
