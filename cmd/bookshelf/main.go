// Package main provides the bookshelf CLI entry point.
package main

import (
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/matsen/bookshelf/internal/config"
	"github.com/matsen/bookshelf/internal/library"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// jsonOutput switches every command to machine-readable output
	jsonOutput bool
	// rootFlag overrides the catalog root
	rootFlag string
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI with args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		return reportError(stdout, stderr, err)
	}
	return ExitSuccess
}

var rootCmd = &cobra.Command{
	Use:   "bookshelf",
	Short: "Personal file catalog",
	Long: `bookshelf copies files into a managed storage directory and keeps a
SQLite catalog of them (title, type, size, SHA-256, tags, date added).

The catalog lives under a root directory:
  <root>/db/bookshelf.db   # catalog database
  <root>/storage/          # stored copies, named by base name

The root is taken from --root, then $BOOKSHELF_ROOT (a .env file in the
working directory is honored), then "root" in
~/.config/bookshelf/config.yml, then the current directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Load .env file if present (for BOOKSHELF_ROOT)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Catalog root directory")
	rootCmd.Version = Version
}

// loadConfig resolves the catalog configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(rootFlag)
	if err != nil {
		return nil, withCode(ExitConfigError, err)
	}
	return cfg, nil
}

// openLibrary resolves the configuration and opens the catalog, creating its
// directories and schema if needed.
func openLibrary() (*library.Library, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	lib, err := library.Open(cfg)
	if err != nil {
		return nil, withCode(ExitStoreError, err)
	}
	return lib, nil
}
