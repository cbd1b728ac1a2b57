package chapters_test

import (
	"testing"

	"chapsplit/internal/chapters"
	"chapsplit/internal/logging"
	"chapsplit/internal/srt"
)

func TestScanDetectsAnnouncements(t *testing.T) {
	cues := []srt.Cue{
		{Index: 1, Start: 0.5, End: 3, Text: "Welcome to the audiobook."},
		{Index: 2, Start: 12.3, End: 15, Text: "Chapter one. The Long Road Home."},
		{Index: 3, Start: 600, End: 604, Text: "Chapter two."},
		{Index: 4, Start: 604, End: 610, Text: "The Return Journey. It was raining."},
		{Index: 5, Start: 1200, End: 1205, Text: "Chapter IX. Endings."},
	}

	scanner := chapters.NewScanner(true, logging.NewNop())
	got := scanner.Scan(cues)

	if len(got) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(got))
	}
	if got[0].Number != 1 || got[0].Start != 12.3 {
		t.Fatalf("unexpected first candidate: %+v", got[0])
	}
	if got[0].Title != "The Long Road Home" {
		t.Fatalf("unexpected first title: %q", got[0].Title)
	}
	// Announcing cue had no trailing text: title borrowed from the next cue.
	if got[1].Number != 2 || got[1].Title != "The Return Journey" {
		t.Fatalf("look-ahead title not applied: %+v", got[1])
	}
	if got[2].Number != 9 || got[2].Title != "Endings" {
		t.Fatalf("roman announcement not resolved: %+v", got[2])
	}
}

func TestScanWithoutTitles(t *testing.T) {
	cues := []srt.Cue{
		{Index: 1, Start: 10, End: 12, Text: "Chapter twelve. The Visitor."},
	}
	scanner := chapters.NewScanner(false, logging.NewNop())
	got := scanner.Scan(cues)
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if got[0].Number != 12 || got[0].Title != "" {
		t.Fatalf("unexpected candidate: %+v", got[0])
	}
}

func TestScanNoRetryWithinCue(t *testing.T) {
	// The first announcement token fails to resolve; the second valid one in
	// the same cue must not be attempted.
	cues := []srt.Cue{
		{Index: 1, Start: 5, End: 9, Text: "In this chapter nothing happens, unlike chapter two."},
	}
	scanner := chapters.NewScanner(false, logging.NewNop())
	if got := scanner.Scan(cues); len(got) != 0 {
		t.Fatalf("expected no candidates, got %+v", got)
	}
}

func TestScanAtMostOneCandidatePerCue(t *testing.T) {
	cues := []srt.Cue{
		{Index: 1, Start: 5, End: 9, Text: "Chapter one. Chapter two."},
	}
	scanner := chapters.NewScanner(false, logging.NewNop())
	got := scanner.Scan(cues)
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if got[0].Number != 1 {
		t.Fatalf("expected first announcement to win, got %+v", got[0])
	}
}

func TestScanIgnoresSubstringMatches(t *testing.T) {
	cues := []srt.Cue{
		{Index: 1, Start: 2, End: 4, Text: "There were many chapters ahead."},
	}
	scanner := chapters.NewScanner(false, logging.NewNop())
	if got := scanner.Scan(cues); len(got) != 0 {
		t.Fatalf("expected no candidates, got %+v", got)
	}
}

func TestScanStripsAnnouncementPunctuation(t *testing.T) {
	cues := []srt.Cue{
		{Index: 1, Start: 2, End: 4, Text: "Chapter, three! begins now."},
	}
	scanner := chapters.NewScanner(false, logging.NewNop())
	got := scanner.Scan(cues)
	if len(got) != 1 || got[0].Number != 3 {
		t.Fatalf("punctuated announcement not handled: %+v", got)
	}
}
