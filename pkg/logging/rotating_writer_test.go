package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRotatingWriterRotatesAtMaxSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	w, err := NewRotatingWriter(path, 32)
	if err != nil {
		t.Fatalf("NewRotatingWriter: %v", err)
	}
	defer w.Close()

	first := []byte("first line of twenty\n")
	second := []byte("second line, same sz\n")

	if _, err := w.Write(first); err != nil {
		t.Fatalf("first write: %v", err)
	}
	// This write crosses maxSize and must land on a fresh file
	if _, err := w.Write(second); err != nil {
		t.Fatalf("second write: %v", err)
	}

	current, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading current log: %v", err)
	}
	if string(current) != string(second) {
		t.Errorf("current log = %q, want only the post-rotation write", current)
	}

	archives, err := filepath.Glob(filepath.Join(dir, "old", "app.log.*"))
	if err != nil {
		t.Fatalf("globbing archives: %v", err)
	}
	if len(archives) != 1 {
		t.Fatalf("got %d archives, want 1", len(archives))
	}
	archived, err := os.ReadFile(archives[0])
	if err != nil {
		t.Fatalf("reading archive: %v", err)
	}
	if string(archived) != string(first) {
		t.Errorf("archive = %q, want the pre-rotation write", archived)
	}
}

func TestRotatingWriterRotatesOversizedFileOnOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	if err := os.WriteFile(path, make([]byte, 64), 0644); err != nil {
		t.Fatalf("seeding log file: %v", err)
	}

	w, err := NewRotatingWriter(path, 32)
	if err != nil {
		t.Fatalf("NewRotatingWriter: %v", err)
	}
	defer w.Close()

	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if fi.Size() != 0 {
		t.Errorf("log file size = %d after open, want a fresh file", fi.Size())
	}
}
