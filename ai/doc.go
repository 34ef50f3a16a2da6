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


// Package ai provides the embedding-provider abstraction for corpus.
//
// The provider set is a closed enumeration (openai, google, ollama). Each
// provider requires its own credential; a Registry resolves a ProviderID
// to an Embedder and reports "unavailable" when the credential is missing
// or the client cannot be constructed. Callers treat unavailability as a
// degradation signal, never as an error: ingestion skips the embedding,
// retrieval falls back to keyword overlap.
//
// Implementation sub-packages:
//
//   - ai/openai: OpenAI-compatible embedding APIs
//   - ai/googleai: Google embedding APIs
//   - ai/ollama: self-hosted model server
//   - ai/mock: deterministic test doubles
//
// Constructors in the implementation packages return the ai.Embedder
// interface to prevent coupling to a concrete backend. The mock package
// returns concrete types so tests can inject behavior and assert on call
// counts.
package ai
