package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_Layout(t *testing.T) {
	cfg := New("/data/shelf")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"DBPath", cfg.DBPath, "/data/shelf/db/bookshelf.db"},
		{"StorageDir", cfg.StorageDir, "/data/shelf/storage"},
		{"ExportPath", cfg.ExportPath, "/data/shelf/books_export.csv"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestResolveRoot_Precedence(t *testing.T) {
	flagDir := t.TempDir()
	envDir := t.TempDir()
	globalDir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}

	tests := []struct {
		name   string
		flag   string
		env    string
		global *GlobalConfig
		want   string
	}{
		{"flag wins", flagDir, envDir, &GlobalConfig{Root: globalDir}, flagDir},
		{"env over global", "", envDir, &GlobalConfig{Root: globalDir}, envDir},
		{"global", "", "", &GlobalConfig{Root: globalDir}, globalDir},
		{"cwd fallback", "", "", &GlobalConfig{}, cwd},
		{"nil global", "", "", nil, cwd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(RootEnv, tt.env)
			got, err := ResolveRoot(tt.flag, tt.global)
			if err != nil {
				t.Fatalf("ResolveRoot() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveRoot() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveRoot_MakesAbsolute(t *testing.T) {
	t.Setenv(RootEnv, "")
	got, err := ResolveRoot("relative/shelf", nil)
	if err != nil {
		t.Fatalf("ResolveRoot() error = %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("ResolveRoot() = %q, want absolute path", got)
	}
}

func TestEnsureDirs(t *testing.T) {
	root := filepath.Join(t.TempDir(), "shelf")
	cfg := New(root)

	if err := cfg.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs() error = %v", err)
	}
	for _, dir := range []string{root, filepath.Dir(cfg.DBPath), cfg.StorageDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("EnsureDirs() did not create %s", dir)
		}
	}

	// Idempotent
	if err := cfg.EnsureDirs(); err != nil {
		t.Errorf("second EnsureDirs() error = %v", err)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		path string
		want string
	}{
		{"~/books", filepath.Join(home, "books")},
		{"/abs/books", "/abs/books"},
		{"rel/books", "rel/books"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.path); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestLoad_AppliesGlobalOverrides(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv(RootEnv, "")

	root := t.TempDir()
	global := &GlobalConfig{Root: root, ExportPath: "/exports/books.csv", Reader: "zathura"}
	if err := global.Save(GlobalConfigPath()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Root != root {
		t.Errorf("Root = %q, want %q", cfg.Root, root)
	}
	if cfg.ExportPath != "/exports/books.csv" {
		t.Errorf("ExportPath = %q, want /exports/books.csv", cfg.ExportPath)
	}
	if cfg.Reader != "zathura" {
		t.Errorf("Reader = %q, want zathura", cfg.Reader)
	}
	if cfg.DBPath != DBPath(root) {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, DBPath(root))
	}
}
