package shelf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// setupShelf returns a Shelf over an empty storage dir and a separate source dir.
func setupShelf(t *testing.T) (*Shelf, string) {
	t.Helper()
	root := t.TempDir()
	storageDir := filepath.Join(root, "storage")
	srcDir := filepath.Join(root, "src")
	for _, dir := range []string{storageDir, srcDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("creating %s: %v", dir, err)
		}
	}
	return New(storageDir), srcDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0640); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestEnsureStored_CopiesNewFile(t *testing.T) {
	s, srcDir := setupShelf(t)
	src := filepath.Join(srcDir, "novel.epub")
	writeFile(t, src, "chapter one")

	mtime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := os.Chtimes(src, mtime, mtime); err != nil {
		t.Fatalf("Chtimes() error = %v", err)
	}

	res, err := s.EnsureStored(src, Options{})
	if err != nil {
		t.Fatalf("EnsureStored() error = %v", err)
	}
	if !res.Copied {
		t.Error("EnsureStored() Copied = false, want true")
	}
	if res.Path != filepath.Join(s.Dir(), "novel.epub") {
		t.Errorf("EnsureStored() Path = %s", res.Path)
	}
	if res.Size != int64(len("chapter one")) {
		t.Errorf("EnsureStored() Size = %d, want %d", res.Size, len("chapter one"))
	}

	data, err := os.ReadFile(res.Path)
	if err != nil {
		t.Fatalf("reading stored copy: %v", err)
	}
	if string(data) != "chapter one" {
		t.Errorf("stored content = %q", data)
	}

	info, err := os.Stat(res.Path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if !info.ModTime().Equal(mtime) {
		t.Errorf("stored mtime = %v, want %v", info.ModTime(), mtime)
	}
	if info.Mode().Perm() != 0640 {
		t.Errorf("stored perm = %v, want %v", info.Mode().Perm(), os.FileMode(0640))
	}
}

func TestEnsureStored_KeepsExistingCopy(t *testing.T) {
	s, srcDir := setupShelf(t)
	src := filepath.Join(srcDir, "novel.epub")
	writeFile(t, src, "first")
	if _, err := s.EnsureStored(src, Options{}); err != nil {
		t.Fatalf("EnsureStored() error = %v", err)
	}

	writeFile(t, src, "second, longer content")
	res, err := s.EnsureStored(src, Options{})
	if err != nil {
		t.Fatalf("EnsureStored() error = %v", err)
	}
	if res.Copied {
		t.Error("EnsureStored() Copied = true, want false for existing copy")
	}
	if res.Size != int64(len("first")) {
		t.Errorf("EnsureStored() Size = %d, want %d", res.Size, len("first"))
	}

	data, _ := os.ReadFile(res.Path)
	if string(data) != "first" {
		t.Errorf("stored content = %q, want %q", data, "first")
	}
}

func TestEnsureStored_Overwrite(t *testing.T) {
	s, srcDir := setupShelf(t)
	src := filepath.Join(srcDir, "novel.epub")
	writeFile(t, src, "first")
	if _, err := s.EnsureStored(src, Options{}); err != nil {
		t.Fatalf("EnsureStored() error = %v", err)
	}

	writeFile(t, src, "replacement")
	res, err := s.EnsureStored(src, Options{Overwrite: true})
	if err != nil {
		t.Fatalf("EnsureStored() error = %v", err)
	}
	if !res.Copied {
		t.Error("EnsureStored() Copied = false, want true with Overwrite")
	}
	data, _ := os.ReadFile(res.Path)
	if string(data) != "replacement" {
		t.Errorf("stored content = %q, want %q", data, "replacement")
	}

	// No temp files left behind
	entries, err := os.ReadDir(s.Dir())
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("storage has %d entries, want 1", len(entries))
	}
}

func TestEnsureStored_SourceErrors(t *testing.T) {
	s, srcDir := setupShelf(t)

	tests := []struct {
		name   string
		source string
	}{
		{"missing", filepath.Join(srcDir, "missing.pdf")},
		{"directory", srcDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.EnsureStored(tt.source, Options{})
			if !errors.Is(err, ErrSourceNotFound) {
				t.Errorf("EnsureStored() error = %v, want ErrSourceNotFound", err)
			}
		})
	}

	entries, _ := os.ReadDir(s.Dir())
	if len(entries) != 0 {
		t.Errorf("storage has %d entries, want 0", len(entries))
	}
}

func TestEnsureStored_FollowsSymlink(t *testing.T) {
	s, srcDir := setupShelf(t)
	target := filepath.Join(srcDir, "real.epub")
	writeFile(t, target, "the real thing")
	link := filepath.Join(srcDir, "alias.epub")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	res, err := s.EnsureStored(link, Options{})
	if err != nil {
		t.Fatalf("EnsureStored() error = %v", err)
	}
	if filepath.Base(res.Source) != "real.epub" {
		t.Errorf("Source = %s, want the link target", res.Source)
	}
	if res.Path != filepath.Join(s.Dir(), "real.epub") {
		t.Errorf("Path = %s, want storage/real.epub", res.Path)
	}
	if storedExists(t, s, "alias.epub") {
		t.Error("storage holds the link name")
	}
}

func TestResolveSource_DanglingSymlink(t *testing.T) {
	_, srcDir := setupShelf(t)
	link := filepath.Join(srcDir, "gone.epub")
	if err := os.Symlink(filepath.Join(srcDir, "nowhere.epub"), link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	if _, _, err := ResolveSource(link); !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("ResolveSource() error = %v, want ErrSourceNotFound", err)
	}
}

func storedExists(t *testing.T, s *Shelf, filename string) bool {
	t.Helper()
	ok, err := s.Exists(filename)
	if err != nil {
		t.Fatalf("Exists(%s) error = %v", filename, err)
	}
	return ok
}

func TestRemove(t *testing.T) {
	s, srcDir := setupShelf(t)
	src := filepath.Join(srcDir, "a.txt")
	writeFile(t, src, "a")
	if _, err := s.EnsureStored(src, Options{}); err != nil {
		t.Fatalf("EnsureStored() error = %v", err)
	}

	if err := s.Remove("a.txt"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if ok, _ := s.Exists("a.txt"); ok {
		t.Error("Exists() = true after Remove()")
	}

	err := s.Remove("a.txt")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Remove() of missing file error = %v, want os.ErrNotExist", err)
	}
}
