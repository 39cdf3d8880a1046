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


// Package forest synthesizes knowledge forests from consolidated study
// content.
//
// Builder turns one corpus into a forest: the synthesizer proposes tree
// sketches, Repair normalizes them into structurally valid trees, and a
// depth-first pass attaches assessment questions with forest-wide prompt
// uniqueness. Generator wraps the whole flow for a stored user: retrieve
// content, build, persist.
//
// Model output is treated as untrusted. Levels are rewritten rather than
// checked, unparseable proposals degrade to a single placeholder tree, and
// every question is screened before it is attached.
package forest
