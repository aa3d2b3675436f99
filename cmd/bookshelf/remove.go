package main

import (
	"fmt"

	"github.com/matsen/bookshelf/internal/library"
	"github.com/spf13/cobra"
)

var removeDeleteFile bool

func init() {
	removeCmd.Flags().BoolVar(&removeDeleteFile, "delete-file", false, "Also delete the stored file")
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an entry from the catalog",
	Long: `Remove an entry from the catalog.

The stored file is kept unless --delete-file is given. If deleting the file
fails (for example because it is already gone) a warning is printed; the
entry stays removed.

Examples:
  bookshelf remove 12
  bookshelf remove 12 --delete-file`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

// RemoveResponse is the JSON response for the remove command.
type RemoveResponse struct {
	*library.RemoveResult
	FileError string `json:"file_error,omitempty"`
}

func runRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer lib.Close()

	res, err := lib.Remove(id, removeDeleteFile)
	if err != nil {
		if library.IsNotFound(err) {
			return errorf(ExitNotFound, "no book with id: %d", id)
		}
		return withCode(ExitStoreError, err)
	}

	if jsonOutput {
		resp := RemoveResponse{RemoveResult: res}
		if res.FileErr != nil {
			resp.FileError = res.FileErr.Error()
		}
		return outputJSON(cmd.OutOrStdout(), resp)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed entry %d (%s)\n", res.ID, res.Filename)
	if res.FileDeleted {
		fmt.Fprintln(cmd.OutOrStdout(), "Deleted file from storage.")
	}
	if res.FileErr != nil {
		outputWarning(cmd.ErrOrStderr(), "could not delete file: %v", res.FileErr)
	}
	return nil
}
