package retrieve

import (
	"strings"
	"unicode"
)

// Tokenize splits a query on non-word characters, lowercases each token,
// and drops empties.
func Tokenize(query string) []string {
	return strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}

// keywordScore counts how many query tokens appear as a substring of the
// lowercased document text.
func keywordScore(text string, tokens []string) int {
	lowered := strings.ToLower(text)
	score := 0
	for _, token := range tokens {
		if strings.Contains(lowered, token) {
			score++
		}
	}
	return score
}
