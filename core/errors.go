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

import "errors"

// Domain validation errors
var (
	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidProviderConfig indicates a ProviderConfig failed validation.
	ErrInvalidProviderConfig = errors.New("invalid provider config")

	// ErrEmptyPath indicates the Path field is empty.
	ErrEmptyPath = errors.New("path cannot be empty")

	// ErrEmptyFilename indicates the Filename field is empty.
	ErrEmptyFilename = errors.New("filename cannot be empty")

	// ErrEmbeddingProviderMismatch indicates an embedding without a provider
	// tag, or a provider tag without an embedding.
	ErrEmbeddingProviderMismatch = errors.New("embedding and embedding provider must both be present or both absent")

	// ErrEmptyProvider indicates the Provider field is empty.
	ErrEmptyProvider = errors.New("provider cannot be empty")
)
