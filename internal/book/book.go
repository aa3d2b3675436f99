// Package book defines the catalog entry type and the rules that derive its
// descriptive fields from a stored filename.
package book

import (
	"path/filepath"
	"strings"
	"time"
)

// UnknownType is the filetype recorded for names without an extension.
const UnknownType = "unknown"

// TimeFormat is the text layout of AddedOn when persisted or exported. It is
// fixed width so that text ordering matches time ordering.
const TimeFormat = "2006-01-02 15:04:05.000000"

// Book is one catalog entry describing a file held in the storage directory.
type Book struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`      // Filename without extension
	Filename  string    `json:"filename"`   // Base name in storage; unique
	Filetype  string    `json:"filetype"`   // Lower-case extension, no dot
	SizeBytes int64     `json:"size_bytes"` // Size of the stored copy
	SHA256    string    `json:"sha256"`     // Hex digest of the stored copy
	Tags      string    `json:"tags"`       // Free text
	AddedOn   time.Time `json:"added_on"`
}

// extension returns the final dot-suffix of name, or "" when the name has
// none. A leading dot alone (".profile") and a trailing dot ("notes.") do not
// count as extensions.
func extension(name string) string {
	ext := filepath.Ext(name)
	if ext == "." || ext == name {
		return ""
	}
	return ext
}

// TitleFromFilename returns the filename with its extension removed.
func TitleFromFilename(name string) string {
	name = filepath.Base(name)
	return strings.TrimSuffix(name, extension(name))
}

// NormalizeType returns the lower-cased extension of name without the dot,
// or UnknownType when there is no extension.
func NormalizeType(name string) string {
	ext := extension(filepath.Base(name))
	if ext == "" {
		return UnknownType
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// FromFilename builds a Book with the fields derived from the filename.
// Size, digest and tags are left for the caller.
func FromFilename(name string) Book {
	base := filepath.Base(name)
	return Book{
		Title:    TitleFromFilename(base),
		Filename: base,
		Filetype: NormalizeType(base),
	}
}
