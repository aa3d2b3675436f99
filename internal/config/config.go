// Package config resolves where the catalog lives on disk.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	DBDir      = "db"
	DBFile     = "bookshelf.db"
	StorageDir = "storage"
	ExportFile = "books_export.csv"

	// RootEnv overrides the catalog root when no --root flag is given.
	RootEnv = "BOOKSHELF_ROOT"
)

// Config holds every filesystem location the tool touches. It is built once
// at startup and passed to the components that need it.
type Config struct {
	Root       string `json:"root"`
	DBPath     string `json:"db_path"`
	StorageDir string `json:"storage_dir"`
	ExportPath string `json:"export_path"` // Default --out for export
	Reader     string `json:"reader"`      // Application used by open
}

// New returns the default layout under root.
func New(root string) *Config {
	return &Config{
		Root:       root,
		DBPath:     DBPath(root),
		StorageDir: StoragePath(root),
		ExportPath: ExportPath(root),
	}
}

// DBPath returns the path to bookshelf.db from a root path.
func DBPath(root string) string {
	return filepath.Join(root, DBDir, DBFile)
}

// StoragePath returns the path to the storage directory from a root path.
func StoragePath(root string) string {
	return filepath.Join(root, StorageDir)
}

// ExportPath returns the default export file path from a root path.
func ExportPath(root string) string {
	return filepath.Join(root, ExportFile)
}

// Load resolves the root (see ResolveRoot) and applies overrides from the
// global config file.
func Load(rootFlag string) (*Config, error) {
	global, err := LoadGlobalConfig(GlobalConfigPath())
	if err != nil {
		return nil, err
	}

	root, err := ResolveRoot(rootFlag, global)
	if err != nil {
		return nil, err
	}

	cfg := New(root)
	if global.ExportPath != "" {
		cfg.ExportPath = ExpandPath(global.ExportPath)
	}
	cfg.Reader = global.Reader
	return cfg, nil
}

// ResolveRoot picks the catalog root: the flag value, then $BOOKSHELF_ROOT,
// then the global config's root, then the current directory. The result is
// absolute.
func ResolveRoot(rootFlag string, global *GlobalConfig) (string, error) {
	root := rootFlag
	if root == "" {
		root = os.Getenv(RootEnv)
	}
	if root == "" && global != nil {
		root = global.Root
	}
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		root = cwd
	}

	abs, err := filepath.Abs(ExpandPath(root))
	if err != nil {
		return "", fmt.Errorf("resolving root: %w", err)
	}
	return abs, nil
}

// EnsureDirs creates the root, database and storage directories.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.Root, filepath.Dir(c.DBPath), c.StorageDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
