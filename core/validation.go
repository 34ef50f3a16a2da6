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


package core

import "fmt"

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Path must not be empty (it is the record identity)
//   - Filename must not be empty
//   - Embedding and EmbeddingProvider are both present or both absent
//
// NOT validated:
//   - Topic (empty is permitted when not inferrable)
//   - Text (an empty snippet is rejected earlier, at the sync boundary)
//   - Id (0 is overwritten from Path on write)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.Path == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyPath)
	}

	if doc.Filename == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyFilename)
	}

	if (len(doc.Embedding) > 0) != (doc.EmbeddingProvider != "") {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmbeddingProviderMismatch)
	}

	return nil
}

// ValidateProviderConfig validates a ProviderConfig according to domain rules.
func ValidateProviderConfig(cfg *ProviderConfig) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidProviderConfig)
	}

	if cfg.Provider == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProviderConfig, ErrEmptyProvider)
	}

	return nil
}
