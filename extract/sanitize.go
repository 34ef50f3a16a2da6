package extract

import "strings"

// Sanitize strips null bytes and C0/C1 control characters (keeping tab,
// newline and carriage return) and trims surrounding whitespace. Every
// extraction path runs through this so downstream length caps always
// operate on clean text.
func Sanitize(text string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return r
		}
		if r < 0x20 || (r >= 0x7f && r <= 0x9f) {
			return -1
		}
		return r
	}, text)
	return strings.TrimSpace(cleaned)
}
