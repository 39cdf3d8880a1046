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


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/arbor/ai"
	"github.com/tmc/langchaingo/llms"
)

// TreeSynthesizer implements ai.TreeSynthesizer using OpenAI-compatible chat APIs.
type TreeSynthesizer struct {
	tree     llms.Model
	question llms.Model
	logger   *slog.Logger
}

// proposedQuestion mirrors the JSON the model is instructed to return.
// Prompt is a pointer so an explicit null survives unmarshaling.
type proposedQuestion struct {
	Prompt    *string           `json:"question"`
	Options   map[string]string `json:"options"`
	Correct   string            `json:"correct_answer"`
	Rationale string            `json:"explanation"`
}

// newTreeSynthesizer is an internal constructor that returns the concrete type.
func newTreeSynthesizer(config *ai.Config) (*TreeSynthesizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	tree, err := newClient(config.Host, config.TreeModel)
	if err != nil {
		return nil, err
	}
	question, err := newClient(config.Host, config.QuestionModel)
	if err != nil {
		return nil, err
	}

	return &TreeSynthesizer{
		tree:     tree,
		question: question,
		logger:   slog.Default().With("component", "openai-synthesizer"),
	}, nil
}

// NewTreeSynthesizer creates a tree synthesizer using the provided configuration.
//
// Returns ai.TreeSynthesizer interface to enforce abstraction.
func NewTreeSynthesizer(config *ai.Config) (ai.TreeSynthesizer, error) {
	return newTreeSynthesizer(config)
}

// ProposeForest asks the model for a forest skeleton. Output with no
// well-formed JSON array is reported as ai.ErrUnparseable; the returned
// sketches carry levels exactly as the model produced them.
func (s *TreeSynthesizer) ProposeForest(ctx context.Context, corpus string, maxTrees, maxLevels int) ([]ai.TreeSketch, error) {
	raw, err := generate(ctx, s.tree, treePrompt(corpus, maxTrees, maxLevels), 0.3)
	if err != nil {
		s.logger.Error("forest proposal call failed", "err", err)
		return nil, err
	}

	text := stripFences(raw)
	payload, ok := firstJSONArray(text)
	if !ok {
		s.logger.Warn("no JSON array in forest proposal", "response", truncate(text, 200))
		return nil, fmt.Errorf("%w: no JSON array", ai.ErrUnparseable)
	}

	var sketches []ai.TreeSketch
	if err := json.Unmarshal([]byte(repairJSON(payload)), &sketches); err != nil {
		s.logger.Warn("error parsing forest proposal", "err", err)
		return nil, fmt.Errorf("%w: %v", ai.ErrUnparseable, err)
	}

	s.logger.Debug("forest proposed", "trees", len(sketches))
	return sketches, nil
}

// GenerateQuestion asks the model for one assessment question. An explicit
// null question marks the insufficient-evidence arm; output with no
// well-formed JSON object is reported as ai.ErrUnparseable.
func (s *TreeSynthesizer) GenerateQuestion(ctx context.Context, req ai.QuestionRequest) (*ai.ProposedQuestion, error) {
	prompt := questionPrompt(req.Concept, req.Corpus, req.Level, req.PriorPrompts)
	raw, err := generate(ctx, s.question, prompt, 0.3)
	if err != nil {
		s.logger.Error("question call failed", "concept", req.Concept, "err", err)
		return nil, err
	}

	text := stripFences(raw)
	payload, ok := firstJSONObject(text)
	if !ok {
		s.logger.Warn("no JSON object in question response", "concept", req.Concept)
		return nil, fmt.Errorf("%w: no JSON object", ai.ErrUnparseable)
	}

	var parsed proposedQuestion
	if err := json.Unmarshal([]byte(repairJSON(payload)), &parsed); err != nil {
		s.logger.Warn("error parsing question response", "concept", req.Concept, "err", err)
		return nil, fmt.Errorf("%w: %v", ai.ErrUnparseable, err)
	}

	if parsed.Prompt == nil || strings.TrimSpace(*parsed.Prompt) == "" {
		return &ai.ProposedQuestion{Insufficient: true, Rationale: parsed.Rationale}, nil
	}

	return &ai.ProposedQuestion{
		Prompt:    strings.TrimSpace(*parsed.Prompt),
		Options:   parsed.Options,
		Correct:   parsed.Correct,
		Rationale: parsed.Rationale,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
