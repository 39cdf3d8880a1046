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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidRequest indicates a ParseRequest failed validation.
	ErrInvalidRequest = errors.New("invalid parse request")

	// ErrEmptyUserID indicates the UserID field is empty.
	ErrEmptyUserID = errors.New("user id cannot be empty")

	// ErrNoAssets indicates a request carries no asset references at all.
	ErrNoAssets = errors.New("request carries no assets")

	// ErrInsufficientEvidence indicates the evidence corpus is empty; forest
	// synthesis for that corpus cannot proceed. This is the only failure that
	// terminates an operation early.
	ErrInsufficientEvidence = errors.New("insufficient evidence for forest synthesis")

	// ErrInvalidForest indicates a Forest violated a structural invariant.
	ErrInvalidForest = errors.New("invalid forest")
)
