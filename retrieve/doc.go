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

// Package retrieve answers topic-scoped queries over the document store.
//
// The Retriever type implements a two-tier ranking algorithm:
//   - Semantic ranking by cosine similarity, restricted to documents
//     whose stored embedding was computed under the requested provider
//   - Keyword-overlap ranking as the fallback when embeddings cannot
//     serve (provider down, query embedding failure, or no matching
//     embedded documents)
//
// The fallback tier means retrieval degrades rather than failing when an
// embedding provider is unavailable or documents predate embedding
// support.
package retrieve
