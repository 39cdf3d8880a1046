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


// Package extract implements the per-modality content extractors.
//
// DocumentExtractor turns documents into analyzed text chunks and discovers
// images embedded in PDFs. ImageExtractor normalizes standalone images and
// describes them. AudioExtractor resolves audio references and outlines them.
//
// Extractors are failure-isolating: a broken asset is recorded in its
// result's findings and never aborts the remaining assets. Concurrency inside
// an extractor is bounded by worker pools; callers run extractors themselves
// and own any cross-extractor coordination.
package extract
