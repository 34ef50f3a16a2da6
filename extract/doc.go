// Package extract converts raw source bytes into sanitized plain text.
//
// Extraction is hint-driven (PDF, Word, CSV, plain text) and never fails
// past the package boundary: corrupt or unsupported content produces the
// best available text, possibly empty. All output is sanitized uniformly,
// stripping null bytes and C0/C1 control characters so snippet length
// limits downstream operate on clean text.
package extract
