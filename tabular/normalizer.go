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


package tabular

import (
	"encoding/csv"
	"regexp"
	"strings"
)

// MaxNormalizedRunes caps the normalized output length.
const MaxNormalizedRunes = 24000

// Fixed preamble telling downstream consumers how to read the fact lines.
const (
	headerLine1 = "Tournament results. Each line is one team's final placement at one tournament."
	headerLine2 = "Treat each team label (for example \"Lincoln HS Team A\") as a distinct team; never merge results across different team labels."
)

var filenameDateRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})_(.+)$`)

// Normalize rewrites a tournament-results CSV into dense per-team fact
// lines. ok is false when the input does not match the expected schema
// (fewer than two lines, or a required column missing); callers fall back
// to plain truncation in that case.
//
// Required columns (case-insensitive): school, rank, total.
// Optional: team, state, track.
func Normalize(text, filename string) (string, bool) {
	lines := splitNonEmptyLines(text)
	if len(lines) < 2 {
		return "", false
	}

	header, err := splitCSVLine(lines[0])
	if err != nil {
		return "", false
	}

	cols := columnIndex(header)
	schoolIdx, okSchool := cols["school"]
	rankIdx, okRank := cols["rank"]
	totalIdx, okTotal := cols["total"]
	if !okSchool || !okRank || !okTotal {
		return "", false
	}
	teamIdx, hasTeam := cols["team"]
	stateIdx, hasState := cols["state"]
	trackIdx, hasTrack := cols["track"]

	date, tournament := parseFilename(filename)

	out := []string{headerLine1, headerLine2}
	for _, line := range lines[1:] {
		fields, err := splitCSVLine(line)
		if err != nil {
			continue
		}

		school := fieldAt(fields, schoolIdx)
		team := ""
		if hasTeam {
			team = fieldAt(fields, teamIdx)
		}
		label := TeamLabel(school, team)
		rank := fieldAt(fields, rankIdx)
		total := fieldAt(fields, totalIdx)
		if label == "" || rank == "" || total == "" {
			continue
		}

		parts := []string{date, tournament, label, "rank=" + rank, "total=" + total}
		if hasState {
			if state := fieldAt(fields, stateIdx); state != "" {
				parts = append(parts, "state="+state)
			}
		}
		if hasTrack {
			if track := fieldAt(fields, trackIdx); track != "" {
				parts = append(parts, "track="+track)
			}
		}
		out = append(out, strings.Join(parts, " | "))
	}

	return truncateRunes(strings.Join(out, "\n"), MaxNormalizedRunes), true
}

// TeamLabel combines a school name and team designator into one label.
// An empty team becomes "Team Unspecified"; a team already starting with
// the word "Team" is concatenated as-is; anything else gets a "Team "
// prefix. Returns "" when both inputs are empty.
func TeamLabel(school, team string) string {
	school = strings.TrimSpace(school)
	team = strings.TrimSpace(team)

	if team == "" {
		if school == "" {
			return ""
		}
		return school + " Team Unspecified"
	}

	if !hasTeamPrefix(team) {
		team = "Team " + team
	}
	if school == "" {
		return team
	}
	return school + " " + team
}

func hasTeamPrefix(team string) bool {
	lower := strings.ToLower(team)
	return lower == "team" || strings.HasPrefix(lower, "team ")
}

// parseFilename derives (date, tournament) from a source filename with a
// YYYY-MM-DD_<tournament-slug> prefix. Without the prefix the date is
// "unknown-date" and the tournament is the bare filename stem.
func parseFilename(filename string) (date, tournament string) {
	stem := filename
	if idx := strings.LastIndex(stem, "."); idx > 0 {
		stem = stem[:idx]
	}

	if m := filenameDateRe.FindStringSubmatch(stem); m != nil {
		return m[1], m[2]
	}
	return "unknown-date", stem
}

func splitNonEmptyLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// splitCSVLine splits one CSV line with full quote handling: embedded
// commas and doubled-quote escapes inside quoted fields.
func splitCSVLine(line string) ([]string, error) {
	reader := csv.NewReader(strings.NewReader(line))
	reader.FieldsPerRecord = -1
	fields, err := reader.Read()
	if err != nil {
		return nil, err
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields, nil
}

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, seen := cols[name]; !seen {
			cols[name] = i
		}
	}
	return cols
}

func fieldAt(fields []string, idx int) string {
	if idx < 0 || idx >= len(fields) {
		return ""
	}
	return fields[idx]
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
