package main

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLibrary_MissingFileIsEmpty(t *testing.T) {
	entries, err := loadLibrary(filepath.Join(t.TempDir(), "none.jsonl"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries", len(entries))
	}
}

func TestLibrary_AppendKeepsOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), libraryFile)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	if err := appendLibrary(path, LibraryEntry{Title: "first", Chapters: 3, DownloadedAt: at}); err != nil {
		t.Fatal(err)
	}
	if err := appendLibrary(path,
		LibraryEntry{Title: "second", Chapters: 1, DownloadedAt: at},
		LibraryEntry{Title: "third", Chapters: 7, DownloadedAt: at},
	); err != nil {
		t.Fatal(err)
	}
	if err := appendLibrary(path); err != nil {
		t.Fatal(err)
	}

	entries, err := loadLibrary(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	for i, want := range []string{"first", "second", "third"} {
		if entries[i].Title != want {
			t.Errorf("entry %d title = %q, want %q", i, entries[i].Title, want)
		}
	}
	if !entries[2].DownloadedAt.Equal(at) {
		t.Errorf("DownloadedAt = %v", entries[2].DownloadedAt)
	}
}
