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


// Package storage provides the storage abstraction layer for corpus.
//
// This package defines repository interfaces that decouple storage
// implementation from business logic, allowing different backends
// (BadgerDB, in-memory) to be used interchangeably.
//
// Public constructors in backend packages return these interfaces to
// prevent accidental coupling to a concrete store:
//
//	repo, err := badger.NewDocumentRepository(backend)  // storage.DocumentRepository
//
// Document identity is structural: a document's record ID is derived from
// its canonical path, so "at most one document per path" is enforced by
// the key layout rather than by lookups scattered through business logic.
//
// All repository implementations must be thread-safe, and all methods
// accept a context.Context.
package storage
