package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the catalog database and storage directory",
	Long: `Create the catalog database and storage directory if they don't exist.

Every other command does this too; init is safe to run any number of times.

Creates:
  <root>/
  ├── db/bookshelf.db   # Catalog with an empty books table
  └── storage/          # Stored copies`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer lib.Close()

	dbPath := lib.Config().DBPath
	if jsonOutput {
		return outputJSON(cmd.OutOrStdout(), StatusResponse{Status: "initialized", Path: dbPath})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Database initialized at: %s\n", dbPath)
	return nil
}
