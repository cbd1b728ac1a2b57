package segmentplan

import (
	"regexp"
	"strings"
)

// maxFilenameRunes bounds sanitized titles so label + title + extension
// stays comfortably inside common filesystem limits.
const maxFilenameRunes = 100

// illegalCharReplacer removes characters that are invalid in filenames on
// at least one supported platform.
var illegalCharReplacer = strings.NewReplacer(
	"\\", "",
	"/", "",
	"*", "",
	"?", "",
	":", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// SanitizeFilename strips illegal characters, collapses whitespace runs to
// single dots, trims leading/trailing dots, and truncates to 100 characters.
func SanitizeFilename(name string) string {
	sanitized := illegalCharReplacer.Replace(name)
	sanitized = whitespaceRun.ReplaceAllString(sanitized, ".")
	sanitized = strings.Trim(sanitized, ".")
	runes := []rune(sanitized)
	if len(runes) > maxFilenameRunes {
		return string(runes[:maxFilenameRunes])
	}
	return sanitized
}
