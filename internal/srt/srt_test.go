package srt_test

import (
	"bytes"
	"strings"
	"testing"

	"chapsplit/internal/srt"
)

const sampleTranscript = `1
00:00:01,000 --> 00:00:04,500
Chapter one.

2
00:00:04,500 --> 00:00:09,250
The Long Road Home.

3
01:02:03,456 --> 01:02:05,000
It was a dark
and stormy night.
`

func TestParse(t *testing.T) {
	cues, stats, err := srt.Parse(strings.NewReader(sampleTranscript))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if stats.SkippedBlocks != 0 {
		t.Fatalf("unexpected skipped blocks: %d", stats.SkippedBlocks)
	}
	if len(cues) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(cues))
	}

	if cues[0].Start != 1.0 || cues[0].End != 4.5 {
		t.Fatalf("unexpected first cue times: %v -> %v", cues[0].Start, cues[0].End)
	}
	if cues[0].Text != "Chapter one." {
		t.Fatalf("unexpected first cue text: %q", cues[0].Text)
	}

	want := float64(1*3600+2*60+3) + 456.0/1000.0
	if cues[2].Start != want {
		t.Fatalf("timestamp arithmetic: got %v want %v", cues[2].Start, want)
	}
	if cues[2].Text != "It was a dark and stormy night." {
		t.Fatalf("multi-line text not joined: %q", cues[2].Text)
	}
}

func TestParseSkipsMalformedBlocks(t *testing.T) {
	doc := "1\n00:00:01,000 --> 00:00:02,000\nhello\n\njust text\n\n3\nnot a timestamp\ntext\n\n4\n00:00:05,000 --> 00:00:06,000\nworld\n"
	cues, stats, err := srt.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if stats.SkippedBlocks != 2 {
		t.Fatalf("expected 2 skipped blocks, got %d", stats.SkippedBlocks)
	}
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
	if cues[1].Text != "world" {
		t.Fatalf("unexpected surviving cue: %q", cues[1].Text)
	}
}

func TestParseToleratesCRLF(t *testing.T) {
	doc := strings.ReplaceAll(sampleTranscript, "\n", "\r\n")
	cues, _, err := srt.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(cues) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(cues))
	}
}

func TestFormatTimestamp(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00,000"},
		{1.5, "00:00:01,500"},
		{3723.456, "01:02:03,456"},
		{59.9995, "00:01:00,000"},
	}
	for _, tc := range cases {
		if got := srt.FormatTimestamp(tc.seconds); got != tc.want {
			t.Fatalf("FormatTimestamp(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestWriteRoundTrip(t *testing.T) {
	cues := []srt.Cue{
		{Start: 0, End: 2.5, Text: "Chapter one."},
		{Start: 2.5, End: 10, Text: "The story begins."},
	}
	var buf bytes.Buffer
	if err := srt.Write(&buf, cues); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	parsed, stats, err := srt.Parse(&buf)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if stats.SkippedBlocks != 0 || len(parsed) != 2 {
		t.Fatalf("round trip mismatch: %d cues, %d skipped", len(parsed), stats.SkippedBlocks)
	}
	if parsed[1].Start != 2.5 || parsed[1].Text != "The story begins." {
		t.Fatalf("unexpected cue after round trip: %+v", parsed[1])
	}
}
