// Package library implements the catalog commands by composing the storage
// directory, the hasher and the catalog store.
package library

import (
	"errors"
	"fmt"

	"github.com/matsen/bookshelf/internal/book"
	"github.com/matsen/bookshelf/internal/config"
	"github.com/matsen/bookshelf/internal/export"
	"github.com/matsen/bookshelf/internal/hash"
	"github.com/matsen/bookshelf/internal/pdf"
	"github.com/matsen/bookshelf/internal/shelf"
	"github.com/matsen/bookshelf/internal/storage"
)

// DefaultListLimit is the list size used when the caller has no preference.
const DefaultListLimit = 100

// Library is an open catalog: its database handle and storage directory.
type Library struct {
	cfg   *config.Config
	db    *storage.DB
	shelf *shelf.Shelf
}

// IsNotFound reports whether err means a missing source file or an unknown id.
func IsNotFound(err error) bool {
	return errors.Is(err, shelf.ErrSourceNotFound) || errors.Is(err, storage.ErrNotFound)
}

// Open creates the catalog directories if needed, opens the database and
// ensures the schema exists. Call Close when done.
func Open(cfg *config.Config) (*Library, error) {
	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}

	db, err := storage.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return &Library{cfg: cfg, db: db, shelf: shelf.New(cfg.StorageDir)}, nil
}

// Close closes the database.
func (l *Library) Close() error {
	return l.db.Close()
}

// Config returns the configuration the library was opened with.
func (l *Library) Config() *config.Config {
	return l.cfg
}

// DB exposes the underlying store.
func (l *Library) DB() *storage.DB {
	return l.db
}

// AddOptions controls Add.
type AddOptions struct {
	Tags string
	// Overwrite replaces a same-named stored copy with the source.
	Overwrite bool
}

// AddResult reports what Add did.
type AddResult struct {
	Book     book.Book `json:"book"`
	Copied   bool      `json:"copied"`   // Source bytes were written to storage
	Replaced bool      `json:"replaced"` // An entry with this filename existed
	// SourceMismatch is set when an existing stored copy was kept even though
	// its content differs from the source.
	SourceMismatch bool `json:"source_mismatch"`
}

// Add stores the file at path (unless a same-named copy is already present),
// hashes the stored copy and writes its catalog entry.
func (l *Library) Add(path string, opts AddOptions) (*AddResult, error) {
	source, _, err := shelf.ResolveSource(config.ExpandPath(path))
	if err != nil {
		return nil, err
	}

	b := book.FromFilename(source)
	b.Tags = opts.Tags

	stored, err := l.shelf.EnsureStored(source, shelf.Options{Overwrite: opts.Overwrite})
	if err != nil {
		return nil, err
	}

	digest, err := hash.File(stored.Path)
	if err != nil {
		return nil, fmt.Errorf("hashing stored copy: %w", err)
	}

	mismatch := false
	if !stored.Copied && stored.Source != stored.Path {
		srcDigest, err := hash.File(stored.Source)
		if err != nil {
			return nil, fmt.Errorf("hashing source: %w", err)
		}
		mismatch = srcDigest != digest
	}

	b.SizeBytes = stored.Size
	b.SHA256 = digest

	up, err := l.db.Upsert(b)
	if err != nil {
		return nil, err
	}

	return &AddResult{
		Book:           up.Book,
		Copied:         stored.Copied,
		Replaced:       up.Replaced,
		SourceMismatch: mismatch,
	}, nil
}

// List returns up to limit entries newest first (all of them when limit is
// negative), and the total entry count.
func (l *Library) List(limit int) ([]book.Book, int, error) {
	books, err := l.db.List(limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := l.db.Count()
	if err != nil {
		return nil, 0, fmt.Errorf("counting books: %w", err)
	}
	return books, total, nil
}

// Search returns entries whose title or tags contain keyword.
func (l *Library) Search(keyword string) ([]book.Book, error) {
	return l.db.Search(keyword)
}

// ShowResult is one entry with what could be read from its stored copy.
type ShowResult struct {
	Book book.Book `json:"book"`
	Path string    `json:"path"`
	PDF  *pdf.Info `json:"pdf,omitempty"` // Set for readable pdf entries
}

// Show returns the entry with the given id.
func (l *Library) Show(id int64) (*ShowResult, error) {
	b, err := l.db.Get(id)
	if err != nil {
		return nil, err
	}

	res := &ShowResult{Book: *b, Path: l.shelf.Path(b.Filename)}
	if b.Filetype == "pdf" {
		if info, err := pdf.Inspect(res.Path); err == nil {
			res.PDF = &info
		}
	}
	return res, nil
}

// StoredPath returns the entry with the given id and where its copy lives.
func (l *Library) StoredPath(id int64) (*book.Book, string, error) {
	b, err := l.db.Get(id)
	if err != nil {
		return nil, "", err
	}
	return b, l.shelf.Path(b.Filename), nil
}

// RemoveResult reports what Remove did.
type RemoveResult struct {
	ID            int64  `json:"id"`
	Filename      string `json:"filename"`
	FileRequested bool   `json:"file_requested"`
	FileDeleted   bool   `json:"file_deleted"`
	// FileErr is why the stored file could not be deleted. The entry is
	// removed regardless.
	FileErr error `json:"-"`
}

// Remove deletes the entry with the given id and, when deleteFile is set,
// then tries to delete its stored copy. A failure in the second step is
// reported in the result and does not restore the entry.
func (l *Library) Remove(id int64, deleteFile bool) (*RemoveResult, error) {
	filename, err := l.db.Delete(id)
	if err != nil {
		return nil, err
	}

	res := &RemoveResult{ID: id, Filename: filename, FileRequested: deleteFile}
	if !deleteFile {
		return res, nil
	}

	if err := l.shelf.Remove(filename); err != nil {
		res.FileErr = err
	} else {
		res.FileDeleted = true
	}
	return res, nil
}

// ExportResult reports where the export went.
type ExportResult struct {
	Path   string        `json:"path"`
	Format export.Format `json:"format"`
	Count  int           `json:"count"`
}

// Export writes every entry, ordered by id, to outPath in format f. An empty
// outPath uses the configured default, with its extension matched to f.
func (l *Library) Export(outPath string, f export.Format) (*ExportResult, error) {
	if f == "" {
		f = export.FormatCSV
	}
	if outPath == "" {
		outPath = f.DefaultPath(l.cfg.ExportPath)
	}
	outPath = config.ExpandPath(outPath)

	books, err := l.db.ListByID()
	if err != nil {
		return nil, err
	}
	if err := export.File(outPath, f, books); err != nil {
		return nil, err
	}
	return &ExportResult{Path: outPath, Format: f, Count: len(books)}, nil
}
