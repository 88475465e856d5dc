package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type counter struct {
	mu sync.Mutex
	n  int
}

func (c *counter) bump() {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

func (c *counter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

func startWatcher(t *testing.T, root string, debounce time.Duration) (*Watcher, *counter) {
	t.Helper()
	c := &counter{}
	w := NewWatcher(root, c.bump, WithDebounce(debounce))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(w.Stop)
	return w, c
}

func TestWatcher_TriggersOnImageCreate(t *testing.T) {
	dir := t.TempDir()
	_, c := startWatcher(t, dir, 50*time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "shoe.png"), []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(500 * time.Millisecond)
	if c.count() < 1 {
		t.Errorf("expected a change callback, got %d", c.count())
	}
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	_, c := startWatcher(t, dir, 200*time.Millisecond)

	for _, name := range []string{"a.png", "b.jpg", "c.jpeg", "d.webp", "e.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("img"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	time.Sleep(700 * time.Millisecond)
	if c.count() != 1 {
		t.Errorf("expected one coalesced callback, got %d", c.count())
	}
}

func TestWatcher_IgnoresNonImageFiles(t *testing.T) {
	dir := t.TempDir()
	_, c := startWatcher(t, dir, 50*time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("text"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)
	if c.count() != 0 {
		t.Errorf("expected no callbacks for non-image files, got %d", c.count())
	}
}

func TestWatcher_NewSubdirectoryScanned(t *testing.T) {
	dir := t.TempDir()
	_, c := startWatcher(t, dir, 50*time.Millisecond)

	sub := filepath.Join(dir, "winter", "jackets")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(sub, "parka.png"), []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(500 * time.Millisecond)
	if c.count() < 1 {
		t.Errorf("expected a callback for a file in a new subdirectory, got %d", c.count())
	}
}

func TestWatcher_TriggersOnRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gone.png")
	if err := os.WriteFile(path, []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, c := startWatcher(t, dir, 50*time.Millisecond)

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	time.Sleep(500 * time.Millisecond)
	if c.count() < 1 {
		t.Errorf("expected a callback on file removal, got %d", c.count())
	}
}

func TestWatcher_StartCreatesMissingRoot(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "catalog", "images")

	w, _ := startWatcher(t, root, 50*time.Millisecond)
	defer w.Stop()

	if _, err := os.Stat(root); err != nil {
		t.Errorf("root directory should exist after Start: %v", err)
	}
}

func TestWatcher_StopPreventsPendingCallback(t *testing.T) {
	dir := t.TempDir()
	w, c := startWatcher(t, dir, 200*time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "late.png"), []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Give fsnotify time to deliver the event, then stop inside the
	// debounce window.
	time.Sleep(100 * time.Millisecond)
	w.Stop()
	time.Sleep(400 * time.Millisecond)
	if c.count() != 0 {
		t.Errorf("expected no callback after Stop, got %d", c.count())
	}
}
