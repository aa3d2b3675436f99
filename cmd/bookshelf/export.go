package main

import (
	"fmt"

	"github.com/matsen/bookshelf/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportOut    string
	exportFormat string
)

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default <root>/books_export.csv)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format: csv or jsonl")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to a file",
	Long: `Export every entry, ordered by id, as comma-separated text.

The first line is the header
  id,title,filename,filetype,size_bytes,sha256,tags,added_on
Fields are not quoted; commas inside a field are replaced by spaces.

With --format jsonl each entry is written as one JSON object per line, and
the default file is <root>/books_export.jsonl.

Examples:
  bookshelf export
  bookshelf export --out ~/backup/books.csv
  bookshelf export --format jsonl`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return withCode(ExitError, err)
	}

	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer lib.Close()

	res, err := lib.Export(exportOut, format)
	if err != nil {
		return withCode(ExitError, fmt.Errorf("exporting: %w", err))
	}

	if jsonOutput {
		return outputJSON(cmd.OutOrStdout(), res)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries: %s\n", res.Count, res.Path)
	return nil
}
