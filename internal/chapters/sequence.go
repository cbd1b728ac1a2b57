package chapters

import (
	"fmt"
	"log/slog"
	"sort"

	"chapsplit/internal/logging"
)

// Sequence sorts candidates by chapter number and assigns display labels.
// The first chapter's start time is forced to 0: the recording begins before
// its announcement is spoken. When the next chapter number is more than one
// ahead, the label merges the unannounced range ("002-004").
//
// Duplicate numbers are deliberately not collapsed; they propagate into the
// cut plan as zero-length or overlapping segments, matching the legacy
// behavior. They are logged as an anomaly so the operator can clean up the
// transcript or cache.
func Sequence(candidates []Candidate, logger *slog.Logger) []Chapter {
	if len(candidates) == 0 {
		return nil
	}
	logger = logging.NewComponentLogger(logger, "sequencer")

	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Number < sorted[j].Number
	})

	if dupes := duplicateNumbers(sorted); len(dupes) > 0 {
		logging.WarnWithContext(logger, "duplicate chapter numbers detected", "duplicate_chapters",
			logging.Alert("duplicate_chapters"),
			logging.Any("numbers", dupes),
			logging.String(logging.FieldImpact, "segments for these chapters will overlap or be empty"),
			logging.String(logging.FieldErrorHint, "fix the transcript or delete the chapter cache"))
	}

	chapters := make([]Chapter, 0, len(sorted))
	for i, candidate := range sorted {
		start := candidate.Start
		if i == 0 {
			start = 0.0
		}

		var label string
		switch {
		case i == len(sorted)-1:
			label = fmt.Sprintf("%03d", candidate.Number)
		case sorted[i+1].Number > candidate.Number+1:
			label = fmt.Sprintf("%03d-%03d", candidate.Number, sorted[i+1].Number-1)
		default:
			label = fmt.Sprintf("%03d", candidate.Number)
		}

		chapters = append(chapters, Chapter{
			Number: candidate.Number,
			Start:  start,
			Title:  candidate.Title,
			Label:  label,
		})
	}
	return chapters
}

func duplicateNumbers(sorted []Candidate) []int {
	var dupes []int
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Number == sorted[i-1].Number {
			if len(dupes) == 0 || dupes[len(dupes)-1] != sorted[i].Number {
				dupes = append(dupes, sorted[i].Number)
			}
		}
	}
	return dupes
}
