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
	"strings"

	"github.com/poiesic/arbor/ai"
	"github.com/poiesic/arbor/core"
)

// attachQuestions walks every tree depth-first and attaches one question per
// concept node where generation succeeds. A single prior-prompt list threads
// through the whole forest, so uniqueness is forest-wide, not per-tree.
// Nodes whose generation fails, duplicates, or insufficient-evidence answers
// are simply left without a question.
func (b *Builder) attachQuestions(ctx context.Context, f *core.Forest, corpus string) {
	var prior []string
	seen := make(map[string]struct{})

	for _, tree := range f.Trees {
		b.questionNode(ctx, tree.Root, corpus, &prior, seen)
	}
}

// questionNode generates for one node, then descends. Accepted prompts are
// recorded before children are visited so descendants always see them.
func (b *Builder) questionNode(ctx context.Context, node *core.ConceptNode, corpus string, prior *[]string, seen map[string]struct{}) {
	if node == nil {
		return
	}

	for attempt := 0; attempt < b.attempts; attempt++ {
		proposed, err := b.synthesizer.GenerateQuestion(ctx, ai.QuestionRequest{
			Concept:      node.Concept,
			Corpus:       corpus,
			Level:        node.Level,
			PriorPrompts: *prior,
		})
		if err != nil {
			b.logger.Warn("question generation failed", "concept", node.Concept, "err", err)
			continue
		}
		if proposed == nil || proposed.Insufficient {
			b.logger.Debug("no question for concept", "concept", node.Concept)
			break
		}

		question, ok := screenQuestion(proposed, seen)
		if !ok {
			b.logger.Debug("question rejected", "concept", node.Concept, "attempt", attempt+1)
			continue
		}

		node.Question = question
		key := strings.ToLower(strings.TrimSpace(question.Prompt))
		seen[key] = struct{}{}
		*prior = append(*prior, question.Prompt)
		break
	}

	for _, child := range node.Children {
		b.questionNode(ctx, child, corpus, prior, seen)
	}
}

// screenQuestion validates one proposed question: non-empty prompt, no
// case-insensitive duplicate, all four option labels present, and a correct
// label that names one of them.
func screenQuestion(proposed *ai.ProposedQuestion, seen map[string]struct{}) (*core.Question, bool) {
	prompt := strings.TrimSpace(proposed.Prompt)
	if prompt == "" {
		return nil, false
	}
	if _, dup := seen[strings.ToLower(prompt)]; dup {
		return nil, false
	}

	for _, label := range core.OptionLabels {
		if strings.TrimSpace(proposed.Options[label]) == "" {
			return nil, false
		}
	}

	correct := strings.ToUpper(strings.TrimSpace(proposed.Correct))
	if _, ok := proposed.Options[correct]; !ok {
		return nil, false
	}

	return &core.Question{
		Prompt:    prompt,
		Options:   proposed.Options,
		Correct:   correct,
		Rationale: strings.TrimSpace(proposed.Rationale),
	}, true
}
