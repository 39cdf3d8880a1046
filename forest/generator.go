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
	"fmt"
	"log/slog"

	"github.com/poiesic/arbor/core"
	"github.com/poiesic/arbor/storage"
)

// Milestone identifies a generation progress point.
type Milestone string

const (
	// MilestoneRetrieved fires after stored content was loaded and merged.
	MilestoneRetrieved Milestone = "content_retrieved"
	// MilestoneBuilt fires after the forest was synthesized.
	MilestoneBuilt Milestone = "forest_built"
	// MilestoneStored fires after the forest was persisted.
	MilestoneStored Milestone = "forest_stored"
)

// MilestoneFunc receives generation progress addressed to the requesting
// user. Advisory only.
type MilestoneFunc func(userID string, m Milestone)

// Generator builds and persists a knowledge forest from everything stored
// for a user.
type Generator struct {
	content   storage.ContentRepository
	forests   storage.ForestRepository
	builder   *Builder
	milestone MilestoneFunc
	logger    *slog.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator) error

// WithMilestones sets a progress callback.
func WithMilestones(fn MilestoneFunc) GeneratorOption {
	return func(g *Generator) error {
		g.milestone = fn
		return nil
	}
}

// WithGeneratorLogger sets a custom logger. Default is slog.Default().
func WithGeneratorLogger(logger *slog.Logger) GeneratorOption {
	return func(g *Generator) error {
		if logger == nil {
			logger = slog.Default()
		}
		g.logger = logger
		return nil
	}
}

// NewGenerator creates a forest generator.
func NewGenerator(content storage.ContentRepository, forests storage.ForestRepository, builder *Builder, opts ...GeneratorOption) (*Generator, error) {
	if content == nil {
		return nil, ErrContentRepositoryRequired
	}
	if forests == nil {
		return nil, ErrForestRepositoryRequired
	}
	if builder == nil {
		return nil, ErrBuilderRequired
	}

	g := &Generator{
		content: content,
		forests: forests,
		builder: builder,
		logger:  slog.Default().With("component", "forest.generator"),
	}

	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// Generate retrieves all stored content for the user, builds a forest over
// the merged corpus, and persists it. Persistence is best effort: on a
// storage failure the forest is still returned with a zero ID. A user with
// no stored content, or only empty content, gets
// core.ErrInsufficientEvidence and nothing is persisted.
func (g *Generator) Generate(ctx context.Context, userID string) (*core.Forest, core.ID, error) {
	records, err := g.content.ContentForUser(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("retrieve content: %w", err)
	}
	if len(records) == 0 {
		return nil, 0, core.ErrInsufficientEvidence
	}

	merged := mergeContent(records)
	g.notify(userID, MilestoneRetrieved)

	f, err := g.builder.Build(ctx, merged)
	if err != nil {
		return nil, 0, err
	}
	g.notify(userID, MilestoneBuilt)

	id, err := g.forests.AppendForest(ctx, userID, f)
	if err != nil {
		g.logger.Error("persisting forest failed", "user", userID, "err", err)
		return f, 0, nil
	}
	g.notify(userID, MilestoneStored)
	g.logger.Info("forest stored", "user", userID, "id", id, "trees", len(f.Trees), "questions", f.QuestionCount())

	return f, id, nil
}

func (g *Generator) notify(userID string, m Milestone) {
	if g.milestone != nil {
		g.milestone(userID, m)
	}
}

// mergeContent folds every stored record into one corpus-bearing record.
// Source assets are deduplicated preserving first appearance.
func mergeContent(records []*core.ConsolidatedContent) *core.ConsolidatedContent {
	merged := &core.ConsolidatedContent{}
	seenAssets := make(map[string]struct{})

	for _, record := range records {
		mergeModality(&merged.Document, record.Document)
		mergeModality(&merged.Image, record.Image)
		mergeModality(&merged.Audio, record.Audio)

		for _, asset := range record.SourceAssets {
			if _, dup := seenAssets[asset]; dup {
				continue
			}
			seenAssets[asset] = struct{}{}
			merged.SourceAssets = append(merged.SourceAssets, asset)
		}

		if record.CreatedAt.After(merged.CreatedAt) {
			merged.CreatedAt = record.CreatedAt
		}
	}

	return merged
}

func mergeModality(dst *core.ModalityContent, src core.ModalityContent) {
	dst.Findings = append(dst.Findings, src.Findings...)
	dst.URLs = append(dst.URLs, src.URLs...)
	dst.Errors = append(dst.Errors, src.Errors...)
}
