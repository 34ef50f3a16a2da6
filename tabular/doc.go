// Package tabular rewrites tournament-results CSV dumps into dense,
// retrieval-friendly fact lines.
//
// Raw CSV retrieves poorly: a query about one team's placement has to
// match against a whole file of comma-separated rows. Normalization emits
// one self-contained line per team result (date, tournament, team label,
// rank, total, optional state and track) so similarity and keyword search
// can match individual results directly. Input that does not carry the
// expected schema falls back to plain truncation at the caller.
package tabular
