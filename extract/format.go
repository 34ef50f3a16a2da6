package extract

import (
	"path/filepath"
	"strings"
)

// Format is the hint telling the extractor how to interpret raw bytes.
type Format int

const (
	// FormatText treats bytes as UTF-8 plain text.
	FormatText Format = iota
	// FormatPDF parses a PDF document.
	FormatPDF
	// FormatWord parses a Word document, best effort.
	FormatWord
	// FormatCSV is plain text to the extractor; the tabular normalizer
	// keys off it downstream.
	FormatCSV
)

// String returns the hint name for logging.
func (f Format) String() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatWord:
		return "word"
	case FormatCSV:
		return "csv"
	default:
		return "text"
	}
}

// FormatFromFilename derives the format hint from a filename extension.
// Unknown extensions fall back to plain text.
func FormatFromFilename(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FormatPDF
	case ".doc", ".docx":
		return FormatWord
	case ".csv":
		return FormatCSV
	default:
		return FormatText
	}
}
