package organizer

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// makeTestDir creates a scratch directory and returns its path with a
// cleanup function.
func makeTestDir(t *testing.T) (string, func()) {
	t.Helper()

	dir, err := os.MkdirTemp("", "organizer_test_*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	return dir, func() { os.RemoveAll(dir) }
}

// writeFile creates a file with the given content, creating parent
// directories as needed.
func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// writeSized creates a file of exactly size bytes.
func writeSized(t *testing.T, path string, size int) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// touch sets a file's modification time.
func touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()

	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("failed to set mtime on %s: %v", path, err)
	}
}

// sampleFiles fills dir with one file per major category plus a file
// without an extension.
func sampleFiles(t *testing.T, dir string) {
	t.Helper()

	writeFile(t, filepath.Join(dir, "doc.txt"), "some text content")
	writeFile(t, filepath.Join(dir, "pic.jpg"), "fake jpeg data")
	writeFile(t, filepath.Join(dir, "app.py"), "print('hello')")
	writeFile(t, filepath.Join(dir, "song.mp3"), "fake audio data")
	writeFile(t, filepath.Join(dir, "data.csv"), "a,b,c")
	writeFile(t, filepath.Join(dir, "backup.zip"), "fake archive data")
	writeFile(t, filepath.Join(dir, "README"), "no extension here")
}

// exists reports whether a path exists.
func exists(t *testing.T, path string) bool {
	t.Helper()

	_, err := os.Stat(path)
	if err == nil {
		return true
	}
	if os.IsNotExist(err) {
		return false
	}
	t.Fatalf("failed to stat %s: %v", path, err)
	return false
}
