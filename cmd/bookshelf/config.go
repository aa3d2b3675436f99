package main

import (
	"fmt"
	"strings"

	"github.com/matsen/bookshelf/internal/config"
	"github.com/matsen/bookshelf/internal/viewer"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set global configuration values",
	Long: `Get or set values in ~/.config/bookshelf/config.yml.

Usage:
  bookshelf config                       # Show resolved paths
  bookshelf config root                  # Get a value
  bookshelf config root ~/books          # Set a value

Keys:
  root         Default catalog root
  export-path  Default export file
  reader       Application used by open (system, skim, preview, zathura, evince, okular)`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	// No args: show the resolved configuration
	if len(args) == 0 {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(out, cfg)
		}
		fmt.Fprintf(out, "root:        %s\n", cfg.Root)
		fmt.Fprintf(out, "db:          %s\n", cfg.DBPath)
		fmt.Fprintf(out, "storage:     %s\n", cfg.StorageDir)
		fmt.Fprintf(out, "export-path: %s\n", cfg.ExportPath)
		fmt.Fprintf(out, "reader:      %s\n", cfg.Reader)
		return nil
	}

	path := config.GlobalConfigPath()
	global, err := config.LoadGlobalConfig(path)
	if err != nil {
		return withCode(ExitConfigError, err)
	}

	key := normalizeKey(args[0])
	field, err := globalField(global, key)
	if err != nil {
		return err
	}

	// One arg: get specific value
	if len(args) == 1 {
		if jsonOutput {
			return outputJSON(out, map[string]string{strings.ReplaceAll(key, "-", "_"): *field})
		}
		fmt.Fprintln(out, *field)
		return nil
	}

	// Two args: set value
	value := args[1]
	if key == "reader" {
		if err := viewer.ValidateReader(value); err != nil {
			return withCode(ExitConfigError, err)
		}
	}
	*field = value

	if err := global.Save(path); err != nil {
		return withCode(ExitError, err)
	}

	if jsonOutput {
		return outputJSON(out, UpdateResponse{Status: "updated", Key: key, Value: value})
	}
	fmt.Fprintf(out, "Updated %s to %s\n", key, value)
	return nil
}

// globalField returns the config field a key refers to.
func globalField(g *config.GlobalConfig, key string) (*string, error) {
	switch key {
	case "root":
		return &g.Root, nil
	case "export-path":
		return &g.ExportPath, nil
	case "reader":
		return &g.Reader, nil
	default:
		return nil, errorf(ExitError, "unknown configuration key: %s", key)
	}
}

// normalizeKey converts key formats (export-path, export_path, Export_Path) to consistent format
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	return key
}
