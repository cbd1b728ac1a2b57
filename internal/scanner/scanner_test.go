package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestScanFindsSupportedAudio(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "book one.mp3"))
	touch(t, filepath.Join(root, "nested", "book two.m4b"))
	touch(t, filepath.Join(root, "book one.srt"))
	touch(t, filepath.Join(root, "notes.txt"))
	touch(t, filepath.Join(root, ".hidden", "secret.mp3"))
	touch(t, filepath.Join(root, ".partial.mp3"))

	recordings, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(recordings) != 2 {
		t.Fatalf("expected 2 recordings, got %d: %+v", len(recordings), recordings)
	}
	if recordings[0].Stem != "book one" {
		t.Fatalf("first stem = %q, want %q", recordings[0].Stem, "book one")
	}
	if recordings[1].RelPath != filepath.Join("nested", "book two.m4b") {
		t.Fatalf("unexpected rel path %q", recordings[1].RelPath)
	}
}

func TestScanMissingRoot(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestScanEmptyDir(t *testing.T) {
	recordings, err := Scan(t.TempDir())
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(recordings) != 0 {
		t.Fatalf("expected no recordings, got %d", len(recordings))
	}
}

func TestIsSupported(t *testing.T) {
	cases := map[string]bool{
		"a.mp3":  true,
		"b.M4A":  true,
		"c.flac": true,
		"d.srt":  false,
		"e":      false,
	}
	for path, want := range cases {
		if got := IsSupported(path); got != want {
			t.Fatalf("IsSupported(%q) = %v, want %v", path, got, want)
		}
	}
}
