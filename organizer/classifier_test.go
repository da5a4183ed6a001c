package organizer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCategorize(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		name     string
		expected string
	}{
		{"photo.jpg", "images"},
		{"photo.JPG", "images"},
		{"icon.PNG", "images"},
		{"report.pdf", "documents"},
		{"notes.txt", "documents"},
		{"data.csv", "spreadsheets"},
		{"deck.pptx", "presentations"},
		{"clip.mp4", "videos"},
		{"song.mp3", "audio"},
		{"dump.zip", "archives"},
		{"backup.tar.gz", "archives"},
		{"main.go", "code"},
		{"script.py", "code"},
		{"setup.exe", "executables"},
		{"mystery.xyz", "others"},
		{"README", "others"},
		{"", "others"},
	}

	for _, tt := range tests {
		if got := c.Categorize(tt.name); got != tt.expected {
			t.Errorf("Categorize(%q) = %q, want %q", tt.name, got, tt.expected)
		}
	}
}

func TestCategorizeCustomTable(t *testing.T) {
	c := NewClassifier(CategoryTable{
		"texts": {".txt", ".md"},
	})

	if got := c.Categorize("notes.txt"); got != "texts" {
		t.Errorf("Categorize(notes.txt) = %q, want texts", got)
	}
	if got := c.Categorize("notes.MD"); got != "texts" {
		t.Errorf("Categorize(notes.MD) = %q, want texts", got)
	}
	// Extensions outside the custom table fall through to others, even
	// ones the default table knows.
	if got := c.Categorize("photo.jpg"); got != CategoryOthers {
		t.Errorf("Categorize(photo.jpg) = %q, want %q", got, CategoryOthers)
	}
}

func TestLoadCategoryTable(t *testing.T) {
	dir, cleanup := makeTestDir(t)
	defer cleanup()

	path := filepath.Join(dir, "categories.yaml")
	content := "texts:\n  - .txt\n  - .MD\nmedia:\n  - .jpg\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write table: %v", err)
	}

	table, err := LoadCategoryTable(path)
	if err != nil {
		t.Fatalf("LoadCategoryTable failed: %v", err)
	}

	c := NewClassifier(table)
	if got := c.Categorize("notes.md"); got != "texts" {
		t.Errorf("Categorize(notes.md) = %q, want texts", got)
	}
	if got := c.Categorize("pic.jpg"); got != "media" {
		t.Errorf("Categorize(pic.jpg) = %q, want media", got)
	}
}

func TestLoadCategoryTableRejectsBadExtension(t *testing.T) {
	dir, cleanup := makeTestDir(t)
	defer cleanup()

	path := filepath.Join(dir, "categories.yaml")
	if err := os.WriteFile(path, []byte("texts:\n  - txt\n"), 0o644); err != nil {
		t.Fatalf("failed to write table: %v", err)
	}

	if _, err := LoadCategoryTable(path); err == nil {
		t.Error("expected error for extension without a leading dot")
	}
}

func TestLoadCategoryTableMissingFile(t *testing.T) {
	if _, err := LoadCategoryTable("/nonexistent/categories.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
