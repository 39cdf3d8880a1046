// Copyright 2025 Poiesic Systems
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


// Package storage provides the storage abstraction layer for arbor.
//
// This package defines repository interfaces that decouple storage
// implementation from business logic, so different backends (BadgerDB,
// in-memory, etc.) can be used interchangeably.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return these interfaces rather than
// concrete types:
//
//	repo, err := badger.NewContentRepository(backend)  // returns storage.ContentRepository
//
// This keeps consumers decoupled from BadgerDB specifics and lets tests
// substitute in-memory implementations without modification.
//
// # Architecture
//
//   - ContentRepository: append-only log of consolidated extraction results per user
//   - ForestRepository: append-only log of synthesized knowledge forests per user
//
// Both logs are per-user and ordered by insertion. Persistence of pipeline
// output is best effort by design: callers log storage failures and return
// the in-memory result regardless.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines.
package storage
