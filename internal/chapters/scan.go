package chapters

import (
	"log/slog"
	"strings"

	"chapsplit/internal/logging"
	"chapsplit/internal/numerals"
	"chapsplit/internal/srt"
	"chapsplit/internal/titles"
)

const announcementWord = "chapter"

// tokenCutset strips sentence punctuation when matching announcement tokens.
const tokenCutset = ".,?!"

// Scanner detects spoken chapter announcements in transcript cues.
type Scanner struct {
	extractTitles bool
	logger        *slog.Logger
}

// NewScanner builds a scanner. extractTitles controls whether the text
// following an announcement is captured as a title.
func NewScanner(extractTitles bool, logger *slog.Logger) *Scanner {
	return &Scanner{
		extractTitles: extractTitles,
		logger:        logging.NewComponentLogger(logger, "scanner"),
	}
}

// Scan walks the cues in order and returns one candidate per cue that
// announces a chapter. Only the first announcement token in a cue is
// attempted; if its numeral does not resolve, the cue yields nothing.
func (s *Scanner) Scan(cues []srt.Cue) []Candidate {
	var candidates []Candidate
	for i := range cues {
		candidate, ok := s.scanCue(cues, i)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate)
	}
	return candidates
}

func (s *Scanner) scanCue(cues []srt.Cue, idx int) (Candidate, bool) {
	cue := cues[idx]
	if !strings.Contains(strings.ToLower(cue.Text), announcementWord) {
		return Candidate{}, false
	}

	words := strings.Fields(cue.Text)
	pos := -1
	for i, word := range words {
		if strings.Trim(strings.ToLower(word), tokenCutset) == announcementWord && i+1 < len(words) {
			pos = i
			break
		}
	}
	if pos < 0 {
		return Candidate{}, false
	}

	token := strings.Trim(strings.ToLower(strings.TrimSpace(words[pos+1])), tokenCutset)
	number, ok := numerals.Resolve(token)
	if !ok {
		s.logger.Debug("announcement numeral did not resolve",
			logging.String("token", token),
			logging.Float64("cue_start", cue.Start))
		return Candidate{}, false
	}

	candidate := Candidate{Number: number, Start: cue.Start}

	if s.extractTitles {
		titleText := strings.TrimSpace(strings.Join(words[pos+2:], " "))
		if titleText == "" && idx+1 < len(cues) {
			titleText = strings.TrimSpace(cues[idx+1].Text)
		}
		candidate.Title = titles.Extract(titleText)
		s.logger.Info("chapter detected",
			logging.Int(logging.FieldChapter, number),
			logging.Float64("start", cue.Start),
			logging.String("title", candidate.Title))
	} else {
		s.logger.Info("chapter detected",
			logging.Int(logging.FieldChapter, number),
			logging.Float64("start", cue.Start))
	}

	return candidate, true
}
