// Package srt parses and writes SubRip transcript files. Cues carry
// fractional-second timestamps derived from the HH:MM:SS,mmm form with
// exact integer arithmetic on the millisecond component.
package srt

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Cue is one timestamped text block from a transcript.
type Cue struct {
	Index int
	Start float64
	End   float64
	Text  string
}

// ParseStats reports blocks the parser had to discard.
type ParseStats struct {
	SkippedBlocks int
}

// Parse reads an SRT document and returns its cues in order. Blocks with
// fewer than three lines or an unreadable timestamp line are skipped, not
// fatal; the count is reported in the stats.
func Parse(r io.Reader) ([]Cue, ParseStats, error) {
	var stats ParseStats

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, stats, fmt.Errorf("read transcript: %w", err)
	}

	normalized := strings.ReplaceAll(string(raw), "\r\n", "\n")
	blocks := splitBlocks(normalized)

	cues := make([]Cue, 0, len(blocks))
	for _, block := range blocks {
		lines := strings.Split(block, "\n")
		if len(lines) < 3 {
			stats.SkippedBlocks++
			continue
		}

		start, end, err := parseTimestampLine(lines[1])
		if err != nil {
			stats.SkippedBlocks++
			continue
		}

		index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
		if err != nil {
			index = len(cues) + 1
		}

		text := make([]string, 0, len(lines)-2)
		for _, line := range lines[2:] {
			text = append(text, strings.TrimSpace(line))
		}

		cues = append(cues, Cue{
			Index: index,
			Start: start,
			End:   end,
			Text:  strings.Join(text, " "),
		})
	}

	return cues, stats, nil
}

// ParseFile parses the SRT document at path.
func ParseFile(path string) ([]Cue, ParseStats, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, ParseStats{}, fmt.Errorf("open transcript: %w", err)
	}
	defer file.Close()
	return Parse(file)
}

func splitBlocks(content string) []string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n\n")
}

func parseTimestampLine(line string) (float64, float64, error) {
	parts := strings.Split(line, " --> ")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed timestamp line %q", line)
	}
	start, err := parseTimestamp(parts[0])
	if err != nil {
		return 0, 0, err
	}
	end, err := parseTimestamp(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// parseTimestamp converts "HH:MM:SS,mmm" to seconds.
func parseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	fields := strings.Split(value, ":")
	if len(fields) != 3 {
		return 0, fmt.Errorf("malformed timestamp %q", value)
	}
	secFields := strings.Split(fields[2], ",")
	if len(secFields) != 2 {
		return 0, fmt.Errorf("malformed timestamp %q", value)
	}

	h, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q: %w", value, err)
	}
	m, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q: %w", value, err)
	}
	s, err := strconv.Atoi(secFields[0])
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q: %w", value, err)
	}
	ms, err := strconv.Atoi(secFields[1])
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q: %w", value, err)
	}

	return float64(h*3600+m*60+s) + float64(ms)/1000.0, nil
}

// FormatTimestamp converts seconds to the SRT "HH:MM:SS,mmm" form.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int64(math.Round(seconds * 1000.0))
	hours := total / 3600000
	minutes := total % 3600000 / 60000
	secs := total % 60000 / 1000
	millis := total % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// Write renders cues as an SRT document, renumbering sequentially from 1.
func Write(w io.Writer, cues []Cue) error {
	for i, cue := range cues {
		if _, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n\n",
			i+1,
			FormatTimestamp(cue.Start),
			FormatTimestamp(cue.End),
			strings.TrimSpace(cue.Text),
		); err != nil {
			return fmt.Errorf("write transcript: %w", err)
		}
	}
	return nil
}
