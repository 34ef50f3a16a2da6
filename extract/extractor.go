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


package extract

import "log/slog"

// Extract converts a raw byte buffer into sanitized plain text according
// to the format hint. It never fails past this boundary: unsupported or
// corrupt content yields the best available text, possibly empty.
func Extract(data []byte, format Format) string {
	switch format {
	case FormatPDF:
		text, err := pdfText(data)
		if err != nil {
			slog.Default().Warn("pdf extraction failed, returning empty text", "err", err)
			return ""
		}
		return Sanitize(text)
	case FormatWord:
		text, err := wordText(data)
		if err != nil {
			slog.Default().Debug("word extraction failed, returning empty text", "err", err)
			return ""
		}
		return Sanitize(text)
	default:
		return Sanitize(string(data))
	}
}
