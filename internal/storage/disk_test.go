package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func writeBytes(t *testing.T, path string, n int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, make([]byte, n), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDiskUsageBytes(t *testing.T) {
	dir := t.TempDir()
	snapshot := filepath.Join(dir, "catalog.vec")
	writeBytes(t, snapshot, 100)

	// Index directories nest their stores a level down.
	index := filepath.Join(dir, "keywords")
	writeBytes(t, filepath.Join(index, "index_meta.json"), 30)
	writeBytes(t, filepath.Join(index, "store", "root.bolt"), 70)

	got, err := DiskUsageBytes(snapshot)
	if err != nil {
		t.Fatal(err)
	}
	if got != 100 {
		t.Errorf("single file: got %d bytes, want 100", got)
	}

	got, err = DiskUsageBytes(index)
	if err != nil {
		t.Fatal(err)
	}
	if got != 100 {
		t.Errorf("nested dir: got %d bytes, want 100", got)
	}

	got, err = DiskUsageBytes(snapshot, index)
	if err != nil {
		t.Fatal(err)
	}
	if got != 200 {
		t.Errorf("file and dir: got %d bytes, want 200", got)
	}
}

func TestDiskUsageBytesSkipsMissingAndEmpty(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "products.db")
	writeBytes(t, file, 42)

	got, err := DiskUsageBytes(file, filepath.Join(dir, "never-created"), "")
	if err != nil {
		t.Fatal(err)
	}
	if got != 42 {
		t.Errorf("got %d bytes, want 42", got)
	}
}
