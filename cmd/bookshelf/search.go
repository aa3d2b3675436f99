package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Find entries by title or tags",
	Long: `Find entries whose title or tags contain the keyword.

Matching is a case-sensitive substring match; results are newest first.

Examples:
  bookshelf search Dune
  bookshelf search to-read`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer lib.Close()

	books, err := lib.Search(args[0])
	if err != nil {
		return withCode(ExitStoreError, fmt.Errorf("searching: %w", err))
	}

	if jsonOutput {
		return outputJSON(cmd.OutOrStdout(), books)
	}
	printBookRows(cmd.OutOrStdout(), books, NoMatchesSentinel)
	return nil
}
