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


// Package openai implements the ai interfaces over OpenAI-compatible chat
// APIs (OpenAI, Ollama, LocalAI, vLLM) via langchaingo.
//
// Responses are treated as untrusted free text. Every structured call strips
// markdown fences, extracts the first well-formed JSON payload, and applies a
// light repair pass for common model formatting mistakes before decoding.
// Chunk analysis degrades to a raw-text summary on parse failure; forest and
// question synthesis report ai.ErrUnparseable so their callers can pick the
// fallback the operation requires.
package openai
