package validate

import (
	"regexp"
	"strings"
)

// MaxStringLength is the hard ceiling applied to every sanitized string.
const MaxStringLength = 10000

var (
	controlCharsRe = regexp.MustCompile("[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]")
	scriptTagRe    = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
)

// SanitizeString trims whitespace, strips control characters and embedded
// script tags, and truncates to MaxStringLength runes. Non-string input
// sanitizes to the empty string.
func SanitizeString(value any) string {
	s, ok := value.(string)
	if !ok {
		return ""
	}

	s = strings.TrimSpace(s)
	s = controlCharsRe.ReplaceAllString(s, "")
	s = scriptTagRe.ReplaceAllString(s, "")

	if runes := []rune(s); len(runes) > MaxStringLength {
		s = string(runes[:MaxStringLength])
	}

	return s
}
