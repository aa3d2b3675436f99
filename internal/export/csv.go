// Package export writes the catalog to flat text formats.
package export

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/matsen/bookshelf/internal/book"
)

// Header is the first line of every CSV export.
const Header = "id,title,filename,filetype,size_bytes,sha256,tags,added_on"

// sanitizeField makes a value safe for the unquoted format: literal commas
// become spaces. Nothing else is escaped.
func sanitizeField(s string) string {
	return strings.ReplaceAll(s, ",", " ")
}

// CSVFields returns the stringified export fields of b, in Header order.
func CSVFields(b book.Book) []string {
	addedOn := ""
	if !b.AddedOn.IsZero() {
		addedOn = b.AddedOn.UTC().Format(book.TimeFormat)
	}

	fields := []string{
		strconv.FormatInt(b.ID, 10),
		b.Title,
		b.Filename,
		b.Filetype,
		strconv.FormatInt(b.SizeBytes, 10),
		b.SHA256,
		b.Tags,
		addedOn,
	}
	for i, f := range fields {
		fields[i] = sanitizeField(f)
	}
	return fields
}

// WriteCSV writes Header followed by one line per book.
func WriteCSV(w io.Writer, books []book.Book) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header + "\n"); err != nil {
		return err
	}
	for _, b := range books {
		if _, err := bw.WriteString(strings.Join(CSVFields(b), ",") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
