package core

import (
	"strings"
	"unicode"
)

// TopicTournamentResults is the reserved topic whose CSV sources receive
// tabular normalization instead of plain truncation.
const TopicTournamentResults = "tournament results"

// DefaultTopics is the fixed topic set known before any document has been
// imported. Discovery extends it with topics found on stored documents.
var DefaultTopics = []string{
	"rules",
	"events",
	TopicTournamentResults,
}

// SlugifyTopic converts a topic label to its filesystem/URI-safe form:
// lowercase, runs of non-alphanumeric characters collapsed to single
// underscores, leading and trailing underscores trimmed.
func SlugifyTopic(topic string) string {
	var b strings.Builder
	b.Grow(len(topic))
	lastUnderscore := false
	for _, r := range strings.ToLower(topic) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.Trim(b.String(), "_")
}

// UnslugTopic converts a topic slug back to a human label: underscores
// become spaces. Labels are kept lowercase.
func UnslugTopic(slug string) string {
	return strings.TrimSpace(strings.ReplaceAll(slug, "_", " "))
}

// NormalizeTopic canonicalizes a free-form topic label for storage and
// comparison: trimmed and lowercased. Topic equality is exact after this.
func NormalizeTopic(topic string) string {
	return strings.ToLower(strings.TrimSpace(topic))
}
