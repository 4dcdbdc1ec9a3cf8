package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Required sanitizes the value and fails when the result is empty.
func Required(field string, value any) (string, error) {
	s := SanitizeString(value)
	if s == "" {
		return "", failf(field, fmt.Sprintf("%s is required and cannot be empty", field))
	}
	return s, nil
}

// Optional sanitizes the value, returning nil for empty or absent input.
// Non-empty results are bound-checked against the supplied lengths.
func Optional(field string, value any, minLen, maxLen int) (*string, error) {
	if value == nil {
		return nil, nil
	}

	s := SanitizeString(value)
	if s == "" {
		return nil, nil
	}

	if err := Length(field, s, minLen, maxLen); err != nil {
		return nil, err
	}

	return &s, nil
}

// Length enforces an inclusive rune-count range on an already-sanitized string.
func Length(field, value string, minLen, maxLen int) error {
	n := utf8.RuneCountInString(value)
	if n < minLen || n > maxLen {
		return failf(field, fmt.Sprintf("%s must be between %d and %d characters", field, minLen, maxLen))
	}
	return nil
}

// Number coerces the value to a float64 and enforces an inclusive range.
func Number(field string, value any, min, max float64) (float64, error) {
	var n float64

	switch v := value.(type) {
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, failf(field, fmt.Sprintf("%s must be a number", field))
		}
		n = parsed
	default:
		return 0, failf(field, fmt.Sprintf("%s must be a number", field))
	}

	if n < min || n > max {
		return 0, failf(field, fmt.Sprintf("%s must be between %v and %v", field, min, max))
	}

	return n, nil
}

// Date parses the value as a timestamp. Accepts time.Time directly, RFC 3339
// strings, and bare yyyy-mm-dd dates.
func Date(field string, value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		s := strings.TrimSpace(v)
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, nil
		}
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, failf(field, fmt.Sprintf("%s must be a valid date", field))
}

// Enum fails unless the sanitized value equals one of the allowed members.
func Enum(field string, value any, allowed []string) (string, error) {
	s := SanitizeString(value)
	for _, candidate := range allowed {
		if s == candidate {
			return s, nil
		}
	}
	return "", failf(field, fmt.Sprintf("%s must be one of: %s", field, strings.Join(allowed, ", ")))
}

// Email lower-cases and trims the value, checks it against a permissive
// local@domain.tld pattern, and enforces the domain allow-list.
func Email(field string, value any, allowedDomains []string) (string, error) {
	s := strings.ToLower(SanitizeString(value))
	if s == "" || !emailRe.MatchString(s) {
		return "", failf(field, fmt.Sprintf("%s must be a valid email address", field))
	}

	domain := s[strings.LastIndex(s, "@")+1:]
	for _, allowed := range allowedDomains {
		if domain == strings.ToLower(allowed) {
			return s, nil
		}
	}

	return "", failf(field, fmt.Sprintf("%s domain is not allowed", field))
}
