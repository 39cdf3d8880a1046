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


// Package ai provides abstractions for the inference services used in Arbor.
//
// This package defines interfaces for the two inference concerns of the
// system: turning raw study material into textual findings, and synthesizing
// knowledge-tree structures with assessment questions. The extraction
// pipeline and the forest builder depend on these abstractions rather than
// on a concrete service.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - ContentAnalyzer: analyzes document chunks, images, and audio
//   - TreeSynthesizer: proposes forest skeletons and generates questions
//   - Provider: aggregates both for convenient initialization
//
// The inference service is not a trusted source of structure. Responses are
// free text that may wrap JSON in markdown fences or surround it with prose;
// implementations extract the first well-formed JSON payload and fall back
// to typed defaults (or report ErrUnparseable where the caller must pick the
// fallback). Nothing downstream ever assumes response shape.
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external dependencies
//
// Public constructors (openai.NewProvider) return interface types to enforce
// abstraction; mock constructors return concrete types so tests can script
// behavior and assert call counts.
package ai
