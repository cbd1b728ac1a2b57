// Package numerals resolves chapter announcement tokens to integers.
// Three grammars compete in order: decimal digits, spelled-out English
// cardinals, and Roman numerals.
package numerals

import (
	"strconv"
	"strings"
)

var cardinalUnits = map[string]int{
	"zero":      0,
	"one":       1,
	"two":       2,
	"three":     3,
	"four":      4,
	"five":      5,
	"six":       6,
	"seven":     7,
	"eight":     8,
	"nine":      9,
	"ten":       10,
	"eleven":    11,
	"twelve":    12,
	"thirteen":  13,
	"fourteen":  14,
	"fifteen":   15,
	"sixteen":   16,
	"seventeen": 17,
	"eighteen":  18,
	"nineteen":  19,
	"twenty":    20,
	"thirty":    30,
	"forty":     40,
	"fifty":     50,
	"sixty":     60,
	"seventy":   70,
	"eighty":    80,
	"ninety":    90,
}

var cardinalScales = map[string]int{
	"thousand": 1000,
	"million":  1000000,
}

var romanValues = map[byte]int{
	'I': 1,
	'V': 5,
	'X': 10,
	'L': 50,
	'C': 100,
	'D': 500,
	'M': 1000,
}

// Resolve parses token as a chapter number. It tries, in order, a decimal
// integer, a spelled-out cardinal (including multi-word phrases such as
// "twenty one"), and a Roman numeral. The second return value is false when
// no grammar matches. Matching is case-insensitive.
func Resolve(token string) (int, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(token); err == nil {
		return n, true
	}
	if n, ok := parseCardinal(token); ok {
		return n, true
	}
	return parseRoman(token)
}

// parseCardinal resolves spelled-out numbers. Single words cover the common
// case; compound phrases accumulate units against "hundred"/"thousand"
// multipliers ("one hundred twenty one").
func parseCardinal(phrase string) (int, bool) {
	words := strings.FieldsFunc(strings.ToLower(phrase), func(r rune) bool {
		return r == ' ' || r == '-'
	})
	if len(words) == 0 {
		return 0, false
	}

	total := 0
	current := 0
	matched := false
	for _, word := range words {
		switch {
		case word == "and":
			continue
		case word == "hundred":
			if current == 0 {
				current = 1
			}
			current *= 100
			matched = true
		default:
			if v, ok := cardinalUnits[word]; ok {
				current += v
				matched = true
				continue
			}
			if scale, ok := cardinalScales[word]; ok {
				if current == 0 {
					current = 1
				}
				total += current * scale
				current = 0
				matched = true
				continue
			}
			return 0, false
		}
	}
	if !matched {
		return 0, false
	}
	return total + current, true
}

// parseRoman implements the textbook running-total-with-lookback algorithm:
// a digit larger than its predecessor corrects the already-counted
// predecessor by subtracting twice its value. Invalid sequences such as
// "IIII" are parsed literally, never rejected; only characters outside the
// Roman digit set fail.
func parseRoman(token string) (int, bool) {
	upper := strings.ToUpper(token)
	if upper == "" {
		return 0, false
	}
	result := 0
	prev := 0
	for i := 0; i < len(upper); i++ {
		value, ok := romanValues[upper[i]]
		if !ok {
			return 0, false
		}
		if i > 0 && value > prev {
			result += value - 2*prev
		} else {
			result += value
		}
		prev = value
	}
	return result, true
}
