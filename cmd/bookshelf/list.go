package main

import (
	"fmt"

	"github.com/matsen/bookshelf/internal/library"
	"github.com/spf13/cobra"
)

var listLimit int

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", library.DefaultListLimit, "Maximum entries to show (negative = all)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog entries, newest first",
	Long: `List catalog entries, most recently added first.

Examples:
  bookshelf list
  bookshelf list --limit 10
  bookshelf list --limit -1    # everything`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer lib.Close()

	books, total, err := lib.List(listLimit)
	if err != nil {
		return withCode(ExitStoreError, fmt.Errorf("listing books: %w", err))
	}

	if jsonOutput {
		return outputJSON(cmd.OutOrStdout(), books)
	}

	if len(books) > 0 && len(books) < total {
		fmt.Fprintf(cmd.OutOrStdout(), "%d entries (showing newest %d):\n", total, len(books))
	}
	printBookRows(cmd.OutOrStdout(), books, EmptySentinel)
	return nil
}
