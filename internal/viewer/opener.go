// Package viewer opens stored files in an external application.
package viewer

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// DefaultReader hands the file to the desktop's default application.
const DefaultReader = "system"

// ValidReaders lists the supported reader values.
var ValidReaders = []string{DefaultReader, "skim", "preview", "zathura", "evince", "okular"}

// Opener launches files with the configured reader.
type Opener struct {
	reader string
	goos   string
}

// NewOpener creates an opener for the given reader ("" means "system").
func NewOpener(reader string) *Opener {
	if reader == "" {
		reader = DefaultReader
	}
	return &Opener{reader: reader, goos: runtime.GOOS}
}

// ValidateReader checks that the reader value is valid.
func ValidateReader(reader string) error {
	if reader == "" {
		return nil
	}
	for _, valid := range ValidReaders {
		if reader == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid reader: %s (valid: %v)", reader, ValidReaders)
}

// Command returns the command that would open path, without running it.
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	if err := ValidateReader(o.reader); err != nil {
		return nil, err
	}

	switch o.goos {
	case "darwin":
		return o.darwinCommand(path), nil
	case "linux":
		return o.linuxCommand(path), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", o.goos)
	}
}

// Open starts the reader on path and returns without waiting for it.
func (o *Opener) Open(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stored file does not exist: %s", path)
		}
		return fmt.Errorf("checking stored file: %w", err)
	}

	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Start()
}

func (o *Opener) darwinCommand(path string) *exec.Cmd {
	switch o.reader {
	case "skim":
		return exec.Command("open", "-a", "Skim", path)
	case "preview":
		return exec.Command("open", "-a", "Preview", path)
	default:
		return exec.Command("open", path)
	}
}

func (o *Opener) linuxCommand(path string) *exec.Cmd {
	switch o.reader {
	case "zathura", "evince", "okular":
		return exec.Command(o.reader, path)
	default:
		return exec.Command("xdg-open", path)
	}
}
