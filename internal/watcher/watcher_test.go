package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestWatcher_Directories(t *testing.T) {
	dir := t.TempDir()
	w := NewWatcher([]string{dir}, nil, false, nil, nil)
	dirs := w.Directories()
	if len(dirs) != 1 || filepath.Clean(dirs[0]) != filepath.Clean(dir) {
		t.Errorf("Directories() = %v", dirs)
	}
	dirs[0] = "mutated"
	if w.Directories()[0] == "mutated" {
		t.Error("Directories should return a copy")
	}
}

func TestWatcher_RemoveReportsGone(t *testing.T) {
	dir := t.TempDir()
	fPath := filepath.Join(dir, "notes.txt")
	if err := writeFile(fPath, "hello"); err != nil {
		t.Fatal(err)
	}

	gone := make(chan string, 1)
	w := NewWatcher([]string{dir}, []string{".txt"}, false, nil, func(path string) { gone <- path })
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.Remove(fPath); err != nil {
		t.Fatal(err)
	}
	select {
	case p := <-gone:
		if p != fPath {
			t.Errorf("gone path = %q, want %q", p, fPath)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected a removal callback")
	}
}

func TestWatcher_IgnoredPaths(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "decks")
	if err := mkdirAll(out); err != nil {
		t.Fatal(err)
	}
	if err := writeFile(filepath.Join(out, "old.txt"), "x"); err != nil {
		t.Fatal(err)
	}
	if err := writeFile(filepath.Join(dir, "keep.txt"), "x"); err != nil {
		t.Fatal(err)
	}

	var seen []string
	ignore := func(path string) bool { return path == out || inDir(out, path) }
	w := NewWatcher([]string{dir}, []string{".txt"}, true, func(p string) { seen = append(seen, p) }, nil, WithIgnore(ignore))
	w.SyncExistingFiles()
	if len(seen) != 1 || !strings.HasSuffix(seen[0], "keep.txt") {
		t.Errorf("seen = %v, want only keep.txt", seen)
	}
}

func TestWatcher_DebounceAndExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := mkdirAll(sub); err != nil {
		t.Fatal(err)
	}

	var ready []string
	var mu sync.Mutex
	onReady := func(path string) {
		mu.Lock()
		ready = append(ready, path)
		mu.Unlock()
	}
	w := NewWatcher([]string{dir}, []string{".txt"}, true, onReady, nil, WithDebounce(100*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	// Several quick writes settle into one callback.
	fPath := filepath.Join(sub, "f.txt")
	for i := 0; i < 3; i++ {
		if err := writeFile(fPath, strings.Repeat("hello ", i+1)); err != nil {
			t.Fatal(err)
		}
	}
	if err := writeFile(filepath.Join(sub, "skip.bin"), "x"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(600 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if len(ready) != 1 || ready[0] != fPath {
		t.Errorf("expected one settled callback for f.txt, got %v", ready)
	}
}

func TestMatchExtension(t *testing.T) {
	tests := []struct {
		path       string
		extensions []string
		want       bool
	}{
		{"/a/b.txt", []string{".txt"}, true},
		{"/a/b.TXT", []string{".txt"}, true},
		{"/a/b.md", []string{".txt"}, false},
		{"/a/b", nil, true},
		{"/a/b", []string{}, true},
	}
	for _, tt := range tests {
		got := matchExtension(tt.path, tt.extensions)
		if got != tt.want {
			t.Errorf("matchExtension(%q, %v) = %v, want %v", tt.path, tt.extensions, got, tt.want)
		}
	}
}

func TestInDir(t *testing.T) {
	tests := []struct {
		dir  string
		path string
		want bool
	}{
		{"/tmp/a", "/tmp/a", true},
		{"/tmp/a", "/tmp/a/b.txt", true},
		{"/tmp/a", "/tmp/b", false},
		{"/tmp/a", "/tmp/a/../b", false},
	}
	for _, tt := range tests {
		got := inDir(tt.dir, tt.path)
		if got != tt.want {
			t.Errorf("inDir(%q, %q) = %v, want %v", tt.dir, tt.path, got, tt.want)
		}
	}
}

func TestWatcher_SyncExistingFiles_reportsMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	if err := writeFile(filepath.Join(dir, "a.txt"), "hello"); err != nil {
		t.Fatal(err)
	}
	if err := writeFile(filepath.Join(dir, "ignore.xyz"), "x"); err != nil {
		t.Fatal(err)
	}

	var ready []string
	var mu sync.Mutex
	onReady := func(path string) {
		mu.Lock()
		ready = append(ready, path)
		mu.Unlock()
	}
	w := NewWatcher([]string{dir}, []string{".txt"}, true, onReady, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	w.SyncExistingFiles()

	mu.Lock()
	defer mu.Unlock()
	if len(ready) != 1 || !strings.HasSuffix(ready[0], "a.txt") {
		t.Errorf("expected one ready file a.txt, got %v", ready)
	}
}

func TestWatcher_Start_createsMissingRootDirectory(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "watch", "me")
	// Ensure the root does not exist.
	_ = os.RemoveAll(filepath.Join(base, "watch"))

	w := NewWatcher([]string{root}, []string{".txt"}, true, nil, nil)
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if _, err := os.Stat(root); err != nil {
		t.Errorf("root directory should exist after Start: %v", err)
	}
}

func TestWatcher_HandleNewDirectory_reportsFilesInNewFolder(t *testing.T) {
	dir := t.TempDir()

	var ready []string
	var mu sync.Mutex
	onReady := func(path string) {
		mu.Lock()
		ready = append(ready, path)
		mu.Unlock()
	}

	w := NewWatcher([]string{dir}, []string{".txt", ".md"}, true, onReady, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	// Simulate copying a folder with files into the watched directory
	newFolder := filepath.Join(dir, "new-folder")
	if err := mkdirAll(newFolder); err != nil {
		t.Fatal(err)
	}

	// Create files inside the new folder
	if err := writeFile(filepath.Join(newFolder, "doc1.txt"), "hello"); err != nil {
		t.Fatal(err)
	}
	if err := writeFile(filepath.Join(newFolder, "doc2.md"), "world"); err != nil {
		t.Fatal(err)
	}
	if err := writeFile(filepath.Join(newFolder, "ignore.xyz"), "skip"); err != nil {
		t.Fatal(err)
	}

	// Wait for debounce and directory handling
	time.Sleep(800 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()

	// Should have ready the matching files (doc1.txt and doc2.md)
	if len(ready) < 2 {
		t.Errorf("expected at least 2 ready files, got %d: %v", len(ready), ready)
	}

	// Verify the correct files were ready
	txtFound, mdFound := false, false
	for _, p := range ready {
		if strings.HasSuffix(p, "doc1.txt") {
			txtFound = true
		}
		if strings.HasSuffix(p, "doc2.md") {
			mdFound = true
		}
		if strings.HasSuffix(p, "ignore.xyz") {
			t.Errorf("ignore.xyz should not be reported")
		}
	}
	if !txtFound || !mdFound {
		t.Errorf("expected doc1.txt and doc2.md to be ready, got %v", ready)
	}
}

func TestWatcher_HandleNewDirectory_recursiveSubfolders(t *testing.T) {
	dir := t.TempDir()

	var ready []string
	var mu sync.Mutex
	onReady := func(path string) {
		mu.Lock()
		ready = append(ready, path)
		mu.Unlock()
	}

	w := NewWatcher([]string{dir}, []string{".txt"}, true, onReady, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	// Create a nested folder structure
	nested := filepath.Join(dir, "level1", "level2")
	if err := mkdirAll(nested); err != nil {
		t.Fatal(err)
	}
	if err := writeFile(filepath.Join(nested, "deep.txt"), "deep content"); err != nil {
		t.Fatal(err)
	}

	// Wait for debounce and directory handling
	time.Sleep(800 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()

	// Should have ready the deep file
	found := false
	for _, p := range ready {
		if strings.HasSuffix(p, "deep.txt") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected deep.txt to be ready, got %v", ready)
	}
}

func mkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0600)
}
