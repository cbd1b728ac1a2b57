package chapters

import (
	"fmt"
	"strings"
)

// FromEmbedded converts container chapter metadata into candidates, numbered
// by 1-based ordinal position. Entries without a title get "Chapter N".
// Recordings with embedded metadata bypass transcript scanning entirely.
func FromEmbedded(embedded []EmbeddedChapter) []Candidate {
	if len(embedded) == 0 {
		return nil
	}
	candidates := make([]Candidate, 0, len(embedded))
	for i, entry := range embedded {
		title := strings.TrimSpace(entry.Title)
		if title == "" {
			title = fmt.Sprintf("Chapter %d", i+1)
		}
		candidates = append(candidates, Candidate{
			Number: i + 1,
			Start:  entry.Start,
			Title:  title,
		})
	}
	return candidates
}
