package titles_test

import (
	"testing"

	"chapsplit/internal/titles"
)

func TestExtractStopsAtFirstTrueSentenceEnd(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain sentence", "The Long Road Home. And then the rain started.", "The Long Road Home"},
		{"abbreviation continues", "Mr. Smith went home. He left.", "Mr. Smith went home"},
		{"initial continues", "A J. Pemberton mystery. The body was found at dawn.", "A J. Pemberton mystery"},
		{"question mark", "Who goes there? Nobody answered.", "Who goes there"},
		{"no punctuation", "the endless night", "the endless night"},
		{"trailing punctuation only", "The Visitor.", "The Visitor"},
		{"volume abbreviation", "Tales of the city vol. 2 continues. More follows.", "Tales of the city vol. 2 continues"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := titles.Extract(tc.in); got != tc.want {
				t.Fatalf("Extract(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestExtractEmptyInput(t *testing.T) {
	if got := titles.Extract(""); got != "" {
		t.Fatalf("Extract(\"\") = %q, want empty", got)
	}
}
