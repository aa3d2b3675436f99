package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matsen/bookshelf/internal/book"
)

// Format selects an export encoding.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSONL Format = "jsonl"
)

// ParseFormat validates a format name. The empty string means FormatCSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatJSONL:
		return FormatJSONL, nil
	default:
		return "", fmt.Errorf("unknown export format %q (valid: csv, jsonl)", s)
	}
}

// DefaultPath adjusts a default export path's extension to match f.
func (f Format) DefaultPath(path string) string {
	if f == FormatCSV {
		return path
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + string(f)
}

// WriteJSONL writes one JSON object per book, one per line.
func WriteJSONL(w io.Writer, books []book.Book) error {
	bw := bufio.NewWriter(w)
	for i, b := range books {
		data, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("encoding book %d: %w", i, err)
		}
		if _, err := bw.Write(data); err != nil {
			return fmt.Errorf("writing book %d: %w", i, err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	return bw.Flush()
}

// File writes books to path in format f, creating parent directories.
func File(path string, f Format, books []book.Book) error {
	write := WriteCSV
	if f == FormatJSONL {
		write = WriteJSONL
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}

	if err := write(out, books); err != nil {
		out.Close()
		return fmt.Errorf("writing export: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing export file: %w", err)
	}
	return nil
}
