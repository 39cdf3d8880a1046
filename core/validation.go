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

import (
	"fmt"
	"strings"
)

// ValidateParseRequest validates a ParseRequest according to domain rules.
//
// Validation rules:
//   - UserID must not be empty
//   - at least one asset reference across all modalities
func ValidateParseRequest(req *ParseRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidRequest)
	}

	if req.UserID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, ErrEmptyUserID)
	}

	if req.AssetCount() == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, ErrNoAssets)
	}

	return nil
}

// ValidateForest checks the structural invariants of a built forest:
//   - 1 <= len(Trees) <= TreeCap
//   - root levels are 0, every child level equals parent level + 1
//   - no node level reaches MaxLevels
//   - no two non-nil question prompts are equal case-insensitively
//
// A forest produced by the builder always passes; this exists so callers and
// tests can assert the invariants independently of how the forest was made.
func ValidateForest(f *Forest) error {
	if f == nil {
		return fmt.Errorf("%w: forest is nil", ErrInvalidForest)
	}
	if len(f.Trees) == 0 {
		return fmt.Errorf("%w: no trees", ErrInvalidForest)
	}
	if len(f.Trees) > TreeCap {
		return fmt.Errorf("%w: %d trees exceeds cap %d", ErrInvalidForest, len(f.Trees), TreeCap)
	}

	prompts := make(map[string]string)
	for _, t := range f.Trees {
		if t.Root == nil {
			return fmt.Errorf("%w: tree %q has no root", ErrInvalidForest, t.RootConcept)
		}
		if err := validateNode(t.Root, 0, prompts); err != nil {
			return err
		}
	}
	return nil
}

func validateNode(n *ConceptNode, level int, prompts map[string]string) error {
	if n.Level != level {
		return fmt.Errorf("%w: node %q has level %d, want %d", ErrInvalidForest, n.Concept, n.Level, level)
	}
	if n.Level >= MaxLevels {
		return fmt.Errorf("%w: node %q at level %d reaches max depth %d", ErrInvalidForest, n.Concept, n.Level, MaxLevels)
	}
	if n.Question != nil {
		key := strings.ToLower(strings.TrimSpace(n.Question.Prompt))
		if key == "" {
			return fmt.Errorf("%w: node %q carries an empty question", ErrInvalidForest, n.Concept)
		}
		if other, dup := prompts[key]; dup {
			return fmt.Errorf("%w: duplicate question %q on %q and %q", ErrInvalidForest, n.Question.Prompt, other, n.Concept)
		}
		prompts[key] = n.Concept
	}
	for _, child := range n.Children {
		if err := validateNode(child, level+1, prompts); err != nil {
			return err
		}
	}
	return nil
}
