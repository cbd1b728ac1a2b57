package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	entries := []Entry{
		{RunID: "run-1", SourcePath: "/in/a.mp3", Outcome: OutcomeDone, ChapterCount: 12},
		{RunID: "run-2", SourcePath: "/in/b.mp3", Outcome: OutcomeNoChapters},
		{RunID: "run-3", SourcePath: "/in/c.mp3", Outcome: OutcomeFailed, ErrorText: "ffmpeg exited 1"},
	}
	for _, entry := range entries {
		if _, err := store.Record(ctx, entry); err != nil {
			t.Fatalf("recording %s: %v", entry.RunID, err)
		}
	}

	recent, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("reading recent: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(recent))
	}
	if recent[0].RunID != "run-3" {
		t.Fatalf("entries should be newest first, got %s", recent[0].RunID)
	}
	if recent[0].ErrorText != "ffmpeg exited 1" {
		t.Fatalf("error text not round-tripped: %q", recent[0].ErrorText)
	}
	if recent[2].ChapterCount != 12 {
		t.Fatalf("chapter count not round-tripped: %d", recent[2].ChapterCount)
	}
	if recent[0].CreatedAt.IsZero() {
		t.Fatal("created_at should be populated")
	}
}

func TestRecentLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := store.Record(ctx, Entry{RunID: "run", SourcePath: "/in/a.mp3", Outcome: OutcomeDone}); err != nil {
			t.Fatalf("recording: %v", err)
		}
	}

	recent, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("reading recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(recent))
	}
}

func TestRecordPreservesTimestamp(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	when := time.Date(2025, 11, 4, 9, 30, 0, 0, time.UTC)
	if _, err := store.Record(ctx, Entry{RunID: "run-1", SourcePath: "/in/a.mp3", Outcome: OutcomeSkipped, CreatedAt: when}); err != nil {
		t.Fatalf("recording: %v", err)
	}

	recent, err := store.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("reading recent: %v", err)
	}
	if !recent[0].CreatedAt.Equal(when) {
		t.Fatalf("created_at = %v, want %v", recent[0].CreatedAt, when)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
