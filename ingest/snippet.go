// Copyright 2026 Sagewood Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ingest

import (
	"strings"

	"github.com/sagewood/corpus/core"
	"github.com/sagewood/corpus/extract"
	"github.com/sagewood/corpus/tabular"
)

// MaxSnippetRunes caps the stored text for generic documents. Tabular
// documents get the larger tabular.MaxNormalizedRunes cap instead.
const MaxSnippetRunes = 4000

// BuildSnippet turns extracted text into the snippet stored on a
// document. CSV files under the reserved tournament-results topic go
// through the tabular normalizer; when normalization declines the input
// (or for any other file) the text is truncated to MaxSnippetRunes.
// Returns "" when nothing usable remains.
func BuildSnippet(text, topic, filename string, format extract.Format) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	if topic == core.TopicTournamentResults && format == extract.FormatCSV {
		if normalized, ok := tabular.Normalize(text, filename); ok {
			return normalized
		}
	}

	return truncateRunes(text, MaxSnippetRunes)
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
