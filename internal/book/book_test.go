package book

import "testing"

func TestTitleFromFilename(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"novel.epub", "novel"},
		{"archive.tar.gz", "archive.tar"},
		{"README", "README"},
		{".profile", ".profile"},
		{"notes.", "notes."},
		{"/some/dir/Paper.PDF", "Paper"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleFromFilename(tt.name); got != tt.want {
				t.Errorf("TitleFromFilename(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestNormalizeType(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"novel.epub", "epub"},
		{"Paper.PDF", "pdf"},
		{"archive.tar.gz", "gz"},
		{"README", UnknownType},
		{".profile", UnknownType},
		{"notes.", UnknownType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeType(tt.name); got != tt.want {
				t.Errorf("NormalizeType(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestFromFilename(t *testing.T) {
	b := FromFilename("/tmp/in/novel.epub")
	if b.Title != "novel" {
		t.Errorf("Title = %q, want %q", b.Title, "novel")
	}
	if b.Filename != "novel.epub" {
		t.Errorf("Filename = %q, want %q", b.Filename, "novel.epub")
	}
	if b.Filetype != "epub" {
		t.Errorf("Filetype = %q, want %q", b.Filetype, "epub")
	}
	if b.ID != 0 || b.SizeBytes != 0 || b.SHA256 != "" || b.Tags != "" {
		t.Errorf("FromFilename() set fields it should leave empty: %+v", b)
	}
}
