package validators

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// SanitizeString trims whitespace and caps the result at maxLen runes.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && utf8.RuneCountInString(trimmed) > maxLen {
		return string([]rune(trimmed)[:maxLen])
	}
	return trimmed
}

// FormString reads and sanitizes a single form value.
func FormString(values url.Values, key string, maxLen int) string {
	return SanitizeString(values.Get(key), maxLen)
}
