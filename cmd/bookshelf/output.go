package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/matsen/bookshelf/internal/book"
	"github.com/matsen/bookshelf/internal/library"
	"github.com/matsen/bookshelf/internal/storage"
)

// Constants for output formatting.
const (
	ListTitleMaxLen = 40 // Title column width in list/search output
	ListTagsMaxLen  = 24 // Tags column width in list/search output

	EmptySentinel     = "(empty)"
	NoMatchesSentinel = "(no matches)"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
)

// exitError carries the exit code a failure should produce.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// withCode tags err with an exit code. NotFound errors always map to
// ExitNotFound and store availability errors to ExitStoreError.
func withCode(code int, err error) error {
	switch {
	case library.IsNotFound(err):
		code = ExitNotFound
	case errors.Is(err, storage.ErrUnavailable):
		code = ExitStoreError
	}
	return &exitError{code: code, err: err}
}

// errorf builds an exitError from a format string.
func errorf(code int, format string, args ...interface{}) error {
	return withCode(code, fmt.Errorf(format, args...))
}

// reportError prints err in the active output mode and returns its exit code.
func reportError(stdout, stderr io.Writer, err error) int {
	code := ExitError
	var ee *exitError
	if errors.As(err, &ee) {
		code = ee.code
	} else if library.IsNotFound(err) {
		code = ExitNotFound
	}

	if jsonOutput {
		outputJSON(stdout, ErrorResponse{Error: err.Error()})
	} else {
		errorColor.Fprint(stderr, "error:")
		fmt.Fprintf(stderr, " %s\n", err)
	}
	return code
}

// outputJSON writes a value as formatted JSON.
func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputWarning writes a non-fatal diagnostic to stderr.
func outputWarning(w io.Writer, format string, args ...interface{}) {
	warningColor.Fprint(w, "warning:")
	fmt.Fprintf(w, " "+format+"\n", args...)
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// truncateString truncates a string to maxLen runes, adding "..." if
// truncated.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

// parseID parses a catalog id argument. Any integer is accepted; ids that
// don't exist are reported by the store as not found.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return 0, errorf(ExitError, "invalid id: %q", arg)
	}
	return id, nil
}

// formatAddedOn renders an entry timestamp for human output.
func formatAddedOn(b book.Book) string {
	if b.AddedOn.IsZero() {
		return ""
	}
	return b.AddedOn.Local().Format("2006-01-02 15:04:05")
}

// printBookRows prints one line per book, or sentinel when there are none.
func printBookRows(w io.Writer, books []book.Book, sentinel string) {
	if len(books) == 0 {
		fmt.Fprintln(w, sentinel)
		return
	}
	for _, b := range books {
		fmt.Fprintf(w, "%5d  %-*s  %-8s  %-*s  %s\n",
			b.ID,
			ListTitleMaxLen, truncateString(b.Title, ListTitleMaxLen),
			b.Filetype,
			ListTagsMaxLen, truncateString(b.Tags, ListTagsMaxLen),
			formatAddedOn(b))
	}
}

// printBookDetail prints every field of a catalog entry, labeled.
func printBookDetail(w io.Writer, res *library.ShowResult) {
	b := res.Book
	field := func(label string, value interface{}) {
		fmt.Fprintf(w, "%10s: %v\n", label, value)
	}

	field("id", b.ID)
	field("title", b.Title)
	field("filename", b.Filename)
	field("filetype", b.Filetype)
	field("size_bytes", fmt.Sprintf("%d (%s)", b.SizeBytes, humanize.Bytes(uint64(b.SizeBytes))))
	field("sha256", b.SHA256)
	field("tags", b.Tags)
	field("added_on", fmt.Sprintf("%s (%s)", formatAddedOn(b), humanize.Time(b.AddedOn)))
	field("path", res.Path)
	if res.PDF != nil {
		field("pages", res.PDF.Pages)
		if res.PDF.DOI != "" {
			field("doi", res.PDF.DOI)
		}
	}
}
