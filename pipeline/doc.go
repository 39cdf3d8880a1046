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


// Package pipeline coordinates the per-modality extractors for one parse
// request: fan-out to document, image, and audio branches, fan-in once every
// admitted branch has reported, then consolidation and best-effort storage.
//
// The coordinator is a single-owner merge loop. Branch goroutines only send
// completion messages over a channel; the loop goroutine alone touches the
// accumulator, so branch results need no locks. The image branch can be
// admitted twice: once for direct image assets and again for images the
// document branch discovered, with already-processed URLs filtered out.
//
// A branch failure degrades that modality, never the run. Storage failures
// are logged and the in-memory result is returned regardless.
package pipeline
