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


package forest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/arbor/ai"
	"github.com/poiesic/arbor/core"
)

// fallbackConcept names the placeholder tree built when the model's forest
// proposal cannot be parsed.
const fallbackConcept = "General Topics"

// Builder synthesizes a knowledge forest from one consolidated corpus.
type Builder struct {
	synthesizer ai.TreeSynthesizer
	attempts    int
	logger      *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder) error

// WithQuestionAttempts sets how many generation attempts each concept node
// gets before it is left without a question. Default is 1.
func WithQuestionAttempts(attempts int) BuilderOption {
	return func(b *Builder) error {
		if attempts < 1 {
			return fmt.Errorf("question attempts must be positive, got %d", attempts)
		}
		b.attempts = attempts
		return nil
	}
}

// WithBuilderLogger sets a custom logger. Default is slog.Default().
func WithBuilderLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBuilder creates a forest builder.
func NewBuilder(synthesizer ai.TreeSynthesizer, opts ...BuilderOption) (*Builder, error) {
	if synthesizer == nil {
		return nil, ErrSynthesizerRequired
	}

	b := &Builder{
		synthesizer: synthesizer,
		attempts:    1,
		logger:      slog.Default().With("component", "forest"),
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// Build synthesizes a forest for the content's corpus.
//
// The tree budget is one tree per distinct source document, at least one,
// capped at core.TreeCap. An empty corpus is terminal and returns
// core.ErrInsufficientEvidence. An unparseable forest proposal degrades to a
// single placeholder tree without questions and without error.
func (b *Builder) Build(ctx context.Context, content *core.ConsolidatedContent) (*core.Forest, error) {
	corpus := content.Corpus()
	if strings.TrimSpace(corpus) == "" {
		return nil, core.ErrInsufficientEvidence
	}

	maxTrees := content.DistinctDocuments()
	if maxTrees < 1 {
		maxTrees = 1
	}
	if maxTrees > core.TreeCap {
		maxTrees = core.TreeCap
	}

	sketches, err := b.synthesizer.ProposeForest(ctx, corpus, maxTrees, core.MaxLevels)
	if err != nil {
		if errors.Is(err, ai.ErrUnparseable) {
			b.logger.Warn("forest proposal unparseable, using fallback tree", "err", err)
			return b.fallbackForest(), nil
		}
		return nil, fmt.Errorf("propose forest: %w", err)
	}
	if len(sketches) == 0 {
		b.logger.Warn("forest proposal empty, using fallback tree")
		return b.fallbackForest(), nil
	}

	// Proposals beyond the budget are dropped in order; the model lists its
	// strongest trees first.
	if len(sketches) > maxTrees {
		b.logger.Debug("truncating forest proposal", "proposed", len(sketches), "budget", maxTrees)
		sketches = sketches[:maxTrees]
	}

	trees := make([]core.Tree, 0, len(sketches))
	for _, sketch := range sketches {
		trees = append(trees, Repair(sketch, core.MaxLevels))
	}

	f := &core.Forest{Trees: trees, CreatedAt: time.Now().UTC()}
	b.attachQuestions(ctx, f, corpus)

	if err := core.ValidateForest(f); err != nil {
		// Repair and the question screen are supposed to make this
		// impossible; refuse to hand out a broken forest if it happens.
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidForest, err)
	}

	return f, nil
}

// fallbackForest is the graceful-degradation result for unusable proposals:
// one placeholder tree, no questions.
func (b *Builder) fallbackForest() *core.Forest {
	return &core.Forest{
		Trees: []core.Tree{
			{
				RootConcept: fallbackConcept,
				Root:        &core.ConceptNode{Concept: fallbackConcept, Level: 0},
			},
		},
		CreatedAt: time.Now().UTC(),
	}
}
