// Package shelf manages the storage directory that holds the catalog's file
// copies, keyed by base name.
package shelf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrSourceNotFound is returned when the file to store does not exist or is
// not a regular file.
var ErrSourceNotFound = errors.New("file not found")

// Shelf is a storage directory.
type Shelf struct {
	dir string
}

// Options controls EnsureStored.
type Options struct {
	// Overwrite replaces an existing same-named copy instead of keeping it.
	Overwrite bool
}

// Result describes the stored copy after EnsureStored.
type Result struct {
	Source string // Absolute source path
	Path   string // Destination path in the storage directory
	Size   int64  // Size of the destination after the copy-or-skip step
	Copied bool   // False when an existing copy was kept
}

// New returns a Shelf rooted at dir. The directory is not created.
func New(dir string) *Shelf {
	return &Shelf{dir: dir}
}

// Dir returns the storage directory.
func (s *Shelf) Dir() string {
	return s.dir
}

// Path returns where a file with the given base name is stored.
func (s *Shelf) Path(filename string) string {
	return filepath.Join(s.dir, filepath.Base(filename))
}

// Exists reports whether a copy named filename is present.
func (s *Shelf) Exists(filename string) (bool, error) {
	_, err := os.Stat(s.Path(filename))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// ResolveSource returns the absolute, symlink-free path of source after
// checking that it is an existing regular file. A link resolves to its
// target, so the target's base name is what gets stored.
func ResolveSource(source string) (string, os.FileInfo, error) {
	abs, err := filepath.Abs(source)
	if err != nil {
		return "", nil, fmt.Errorf("resolving path: %w", err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("%w: %s", ErrSourceNotFound, abs)
		}
		return "", nil, fmt.Errorf("resolving links in %s: %w", abs, err)
	}
	abs = resolved

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("%w: %s", ErrSourceNotFound, abs)
		}
		return "", nil, fmt.Errorf("checking %s: %w", abs, err)
	}
	if !info.Mode().IsRegular() {
		return "", nil, fmt.Errorf("%w: %s (not a regular file)", ErrSourceNotFound, abs)
	}

	return abs, info, nil
}

// EnsureStored makes sure a copy of source named by its base name is present
// in the storage directory. An existing copy is kept as is, whatever its
// content, unless opts.Overwrite is set.
func (s *Shelf) EnsureStored(source string, opts Options) (Result, error) {
	abs, info, err := ResolveSource(source)
	if err != nil {
		return Result{}, err
	}

	res := Result{Source: abs, Path: s.Path(abs)}

	exists, err := s.Exists(abs)
	if err != nil {
		return Result{}, fmt.Errorf("checking storage: %w", err)
	}

	if !exists || opts.Overwrite {
		if err := copyFile(abs, res.Path, info); err != nil {
			return Result{}, err
		}
		res.Copied = true
	}

	stored, err := os.Stat(res.Path)
	if err != nil {
		return Result{}, fmt.Errorf("checking stored copy: %w", err)
	}
	res.Size = stored.Size()

	return res, nil
}

// Remove deletes the stored copy named filename. A missing copy is an error.
func (s *Shelf) Remove(filename string) error {
	if err := os.Remove(s.Path(filename)); err != nil {
		return fmt.Errorf("removing stored file: %w", err)
	}
	return nil
}

// copyFile copies src to dst through a temporary file in dst's directory, then
// applies src's permission bits and modification time. dst is only replaced
// once the copy is complete.
func copyFile(src, dst string, info os.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".incoming-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return fmt.Errorf("copying %s: %w", filepath.Base(src), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	mtime := info.ModTime()
	if err := os.Chtimes(tmpPath, mtime, mtime); err != nil {
		return fmt.Errorf("setting timestamps: %w", err)
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		return fmt.Errorf("moving into storage: %w", err)
	}
	success = true
	return nil
}
