package main

import (
	"fmt"

	"github.com/matsen/bookshelf/internal/library"
	"github.com/matsen/bookshelf/internal/viewer"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(openCmd)
}

var openCmd = &cobra.Command{
	Use:   "open <id>",
	Short: "Open an entry's stored file in the configured reader",
	Long: `Open an entry's stored file in the configured reader.

The reader is set with "bookshelf config reader <name>" (system, skim,
preview, zathura, evince, okular). "system" uses open/xdg-open.

Example:
  bookshelf open 12`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func runOpen(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer lib.Close()

	reader := lib.Config().Reader
	if err := viewer.ValidateReader(reader); err != nil {
		return withCode(ExitConfigError, fmt.Errorf("%w; fix it with: bookshelf config reader system", err))
	}

	_, path, err := lib.StoredPath(id)
	if err != nil {
		if library.IsNotFound(err) {
			return errorf(ExitNotFound, "not found: %d", id)
		}
		return withCode(ExitStoreError, err)
	}

	if err := viewer.NewOpener(reader).Open(path); err != nil {
		return withCode(ExitError, fmt.Errorf("opening %s: %w", path, err))
	}

	if jsonOutput {
		return outputJSON(cmd.OutOrStdout(), StatusResponse{Status: "opened", Path: path})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", path)
	return nil
}
