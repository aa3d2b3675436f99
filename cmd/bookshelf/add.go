package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/matsen/bookshelf/internal/library"
	"github.com/spf13/cobra"
)

var (
	addTags      string
	addOverwrite bool
)

func init() {
	addCmd.Flags().StringVar(&addTags, "tags", "", "Free-text tags for the entry")
	addCmd.Flags().BoolVar(&addOverwrite, "overwrite", false, "Replace a same-named file already in storage")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Add a file to the catalog",
	Long: `Copy a file into storage, hash it, and record it in the catalog.

The entry is keyed by the file's base name. Adding a name that is already
cataloged replaces that entry (tags, date added), but a file already in
storage under that name is kept as is unless --overwrite is given. When the
kept copy differs from the file being added, a warning is printed.

Examples:
  bookshelf add ~/Downloads/novel.epub
  bookshelf add paper.pdf --tags "ml,to-read"
  bookshelf add paper.pdf --overwrite`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer lib.Close()

	res, err := lib.Add(args[0], library.AddOptions{Tags: addTags, Overwrite: addOverwrite})
	if err != nil {
		return withCode(ExitError, err)
	}

	if jsonOutput {
		return outputJSON(cmd.OutOrStdout(), res)
	}

	if res.SourceMismatch {
		outputWarning(cmd.ErrOrStderr(),
			"storage already holds a different %s; kept the stored copy (use --overwrite to replace it)",
			res.Book.Filename)
	}

	verb := "Added"
	if res.Replaced {
		verb = "Updated"
	}
	b := res.Book
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s) • %s [id %d]\n",
		verb, b.Title, b.Filetype, humanize.Bytes(uint64(b.SizeBytes)), b.ID)
	return nil
}
