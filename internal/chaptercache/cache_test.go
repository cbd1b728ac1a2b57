package chaptercache_test

import (
	"os"
	"path/filepath"
	"testing"

	"chapsplit/internal/chaptercache"
	"chapsplit/internal/chapters"
	"chapsplit/internal/logging"
)

func tempAudioPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "book.mp3")
}

func TestSidecarPath(t *testing.T) {
	if got := chaptercache.SidecarPath("/audio/book.mp3"); got != "/audio/book.json" {
		t.Fatalf("SidecarPath = %q", got)
	}
	if got := chaptercache.SidecarPath("/audio/my.book.m4a"); got != "/audio/my.book.json" {
		t.Fatalf("SidecarPath = %q", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cache := chaptercache.New(logging.NewNop())
	audio := tempAudioPath(t)

	in := []chapters.Candidate{
		{Number: 1, Start: 12.3, Title: "The Long Road Home"},
		{Number: 2, Start: 600, Title: ""},
	}
	if err := cache.Save(audio, in, true); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	out, ok := cache.Load(audio, true)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(out))
	}
	if out[0] != in[0] || out[1] != in[1] {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestLoadShapeMismatch(t *testing.T) {
	cache := chaptercache.New(logging.NewNop())
	audio := tempAudioPath(t)

	in := []chapters.Candidate{{Number: 1, Start: 0, Title: "Prologue"}}
	if err := cache.Save(audio, in, true); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	// Cached with titles, loaded under a no-titles policy: treated as absent.
	if _, ok := cache.Load(audio, false); ok {
		t.Fatal("expected cache miss on shape mismatch")
	}
}

func TestLoadAbsent(t *testing.T) {
	cache := chaptercache.New(logging.NewNop())
	if _, ok := cache.Load(tempAudioPath(t), true); ok {
		t.Fatal("expected cache miss for missing file")
	}
}

func TestLoadCorruptFile(t *testing.T) {
	cache := chaptercache.New(logging.NewNop())
	audio := tempAudioPath(t)
	if err := os.WriteFile(chaptercache.SidecarPath(audio), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.Load(audio, true); ok {
		t.Fatal("expected cache miss for corrupt file")
	}
}

func TestSaveIsWriteOnce(t *testing.T) {
	cache := chaptercache.New(logging.NewNop())
	audio := tempAudioPath(t)

	first := []chapters.Candidate{{Number: 1, Start: 0}}
	if err := cache.Save(audio, first, false); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	second := []chapters.Candidate{{Number: 9, Start: 99}}
	if err := cache.Save(audio, second, false); err != nil {
		t.Fatalf("second Save returned error: %v", err)
	}

	out, ok := cache.Load(audio, false)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(out) != 1 || out[0].Number != 1 {
		t.Fatalf("existing cache must not be overwritten, got %+v", out)
	}
}

func TestSaveSkipsEmptyList(t *testing.T) {
	cache := chaptercache.New(logging.NewNop())
	audio := tempAudioPath(t)
	if err := cache.Save(audio, nil, false); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if _, err := os.Stat(chaptercache.SidecarPath(audio)); !os.IsNotExist(err) {
		t.Fatal("no cache file should be written for an empty list")
	}
}
