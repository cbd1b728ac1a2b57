package ffprobe

import (
	"math"
	"testing"
)

const samplePayload = `{
  "streams": [
    {"index": 0, "codec_name": "mp3", "codec_type": "audio", "sample_rate": "44100", "channels": 2},
    {"index": 1, "codec_name": "mjpeg", "codec_type": "video"}
  ],
  "chapters": [
    {"id": 0, "start_time": "0.000000", "end_time": "120.500000", "tags": {"title": "Opening"}},
    {"id": 1, "start_time": "120.500000", "end_time": "250.000000", "tags": {"title": "Chapter Two"}},
    {"id": 2, "start_time": "250.000000", "end_time": "300.000000"}
  ],
  "format": {
    "filename": "book.mp3",
    "nb_streams": 2,
    "duration": "300.123456",
    "format_name": "mp3"
  }
}`

func TestDecode(t *testing.T) {
	result, err := Decode([]byte(samplePayload))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if got := result.AudioStreamCount(); got != 1 {
		t.Fatalf("AudioStreamCount = %d, want 1", got)
	}
	if got := result.VideoStreamCount(); got != 1 {
		t.Fatalf("VideoStreamCount = %d, want 1", got)
	}
	if got := result.DurationSeconds(); math.Abs(got-300.123456) > 1e-9 {
		t.Fatalf("DurationSeconds = %v, want 300.123456", got)
	}
}

func TestDecodeInvalidPayload(t *testing.T) {
	if _, err := Decode([]byte("not json")); err == nil {
		t.Fatal("expected error for invalid payload")
	}
}

func TestEmbeddedChapters(t *testing.T) {
	result, err := Decode([]byte(samplePayload))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	embedded := result.EmbeddedChapters()
	if len(embedded) != 3 {
		t.Fatalf("EmbeddedChapters returned %d entries, want 3", len(embedded))
	}
	if embedded[0].Title != "Opening" || embedded[0].Start != 0 {
		t.Fatalf("unexpected first chapter: %+v", embedded[0])
	}
	if embedded[1].Start != 120.5 {
		t.Fatalf("second chapter start = %v, want 120.5", embedded[1].Start)
	}
	if embedded[2].Title != "" {
		t.Fatalf("untitled chapter should have empty title, got %q", embedded[2].Title)
	}
}

func TestEmbeddedChaptersEmpty(t *testing.T) {
	result, err := Decode([]byte(`{"format": {"duration": "10.0"}}`))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if got := result.EmbeddedChapters(); got != nil {
		t.Fatalf("expected nil chapters, got %v", got)
	}
}

func TestDurationSecondsMissing(t *testing.T) {
	result := Result{}
	if got := result.DurationSeconds(); got != 0 {
		t.Fatalf("DurationSeconds = %v, want 0", got)
	}
	result.Format.Duration = "garbage"
	if got := result.DurationSeconds(); got != 0 {
		t.Fatalf("DurationSeconds = %v, want 0 for unparsable value", got)
	}
}
