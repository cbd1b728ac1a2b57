// Package titles extracts a chapter title from free transcript text by
// accumulating sentence fragments until a true sentence end is found.
package titles

import (
	"regexp"
	"strings"
	"unicode"
)

// Words that end a fragment without ending the sentence. A fragment whose
// last word is one of these, or a single-letter initial, is joined with the
// following fragment.
var abbreviations = map[string]struct{}{
	"mr":   {},
	"mrs":  {},
	"ms":   {},
	"dr":   {},
	"prof": {},
	"st":   {},
	"vol":  {},
	"no":   {},
	"etc":  {},
	"rev":  {},
	"capt": {},
}

var sentenceBoundary = regexp.MustCompile(`[.?!]\s+`)

// Extract returns the leading title of text, stopping at the first real
// sentence-ending punctuation. The result is trimmed of trailing
// sentence-ending punctuation and whitespace. Empty input yields "".
func Extract(text string) string {
	if text == "" {
		return ""
	}

	var parts []string
	for _, sentence := range splitSentences(text) {
		parts = append(parts, sentence)
		words := strings.Fields(strings.TrimRight(sentence, ".?!"))
		if len(words) == 0 {
			break
		}
		last := strings.ToLower(words[len(words)-1])
		if isAbbreviation(last) || isInitial(last) {
			continue
		}
		break
	}

	title := strings.TrimSpace(strings.Join(parts, " "))
	return strings.TrimSpace(strings.TrimRight(title, ".?!"))
}

// splitSentences splits at sentence-ending punctuation followed by
// whitespace, keeping the punctuation with the preceding fragment.
func splitSentences(text string) []string {
	locs := sentenceBoundary.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []string{text}
	}
	parts := make([]string, 0, len(locs)+1)
	start := 0
	for _, loc := range locs {
		parts = append(parts, text[start:loc[0]+1])
		start = loc[1]
	}
	if start <= len(text) {
		parts = append(parts, text[start:])
	}
	return parts
}

func isAbbreviation(word string) bool {
	_, ok := abbreviations[word]
	return ok
}

func isInitial(word string) bool {
	runes := []rune(word)
	return len(runes) == 1 && unicode.IsLetter(runes[0])
}
