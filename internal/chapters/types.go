// Package chapters turns transcript cues or embedded container metadata
// into a canonical, labeled chapter list ready for segmentation.
package chapters

// Candidate is an unvalidated chapter detection. Numbers may repeat and
// arrive out of order; the sequencer resolves both.
type Candidate struct {
	Number int
	Start  float64
	Title  string
}

// Chapter is a canonical chapter entry. Label is the display string used in
// output filenames, either the zero-padded number ("003") or a merged gap
// range ("003-005").
type Chapter struct {
	Number int
	Start  float64
	Title  string
	Label  string
}

// EmbeddedChapter is one entry of container chapter metadata as supplied by
// the media prober.
type EmbeddedChapter struct {
	Start float64
	Title string
}
