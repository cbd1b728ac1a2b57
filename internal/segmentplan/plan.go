// Package segmentplan converts a canonical chapter list and a total
// duration into concrete cut boundaries and output filenames.
package segmentplan

import (
	"fmt"

	"chapsplit/internal/chapters"
)

// DefaultPreRollMS is the fixed trim subtracted from a detected chapter
// start so the spoken announcement preceding the cue boundary is kept with
// the previous segment's tail rather than cut off.
const DefaultPreRollMS = 500

// Segment is one planned cut: a half-open millisecond range and the
// filename the exported audio should get.
type Segment struct {
	StartMS  int64
	EndMS    int64
	Filename string
}

// Options controls plan construction.
type Options struct {
	// WithTitles appends the sanitized chapter title to each filename.
	WithTitles bool
	// PreRollMS is the trim in milliseconds. Zero disables the trim;
	// negative selects DefaultPreRollMS.
	PreRollMS int64
}

// Plan produces one segment per chapter, covering [0, totalDuration) with
// the final segment ending exactly at the total duration. A chapter whose
// start is 0 keeps it; every other start gets the pre-roll trim, clamped at
// zero.
func Plan(chs []chapters.Chapter, totalDurationSec float64, opts Options) []Segment {
	if len(chs) == 0 {
		return nil
	}

	preRoll := opts.PreRollMS
	if preRoll < 0 {
		preRoll = DefaultPreRollMS
	}

	boundaries := make([]float64, 0, len(chs)+1)
	for _, ch := range chs {
		boundaries = append(boundaries, ch.Start)
	}
	boundaries = append(boundaries, totalDurationSec)

	segments := make([]Segment, 0, len(chs))
	for i, ch := range chs {
		var startMS int64
		if ch.Start != 0.0 {
			startMS = int64(ch.Start*1000) - preRoll
			if startMS < 0 {
				startMS = 0
			}
		}
		endMS := int64(boundaries[i+1] * 1000)

		segments = append(segments, Segment{
			StartMS:  startMS,
			EndMS:    endMS,
			Filename: segmentFilename(ch, opts.WithTitles),
		})
	}
	return segments
}

func segmentFilename(ch chapters.Chapter, withTitle bool) string {
	if !withTitle {
		return fmt.Sprintf("%s.mp3", ch.Label)
	}
	return fmt.Sprintf("%s.%s.mp3", ch.Label, SanitizeFilename(ch.Title))
}
