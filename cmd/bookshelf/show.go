package main

import (
	"github.com/matsen/bookshelf/internal/library"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show every field of one entry",
	Long: `Show every field of one catalog entry.

For PDF entries the page count (and a DOI, when one is printed on the first
pages) is read from the stored copy.

Example:
  bookshelf show 12`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer lib.Close()

	res, err := lib.Show(id)
	if err != nil {
		if library.IsNotFound(err) {
			return errorf(ExitNotFound, "not found: %d", id)
		}
		return withCode(ExitStoreError, err)
	}

	if jsonOutput {
		return outputJSON(cmd.OutOrStdout(), res)
	}
	printBookDetail(cmd.OutOrStdout(), res)
	return nil
}
