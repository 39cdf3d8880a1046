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


package pipeline

import (
	"context"
	"log/slog"

	"github.com/poiesic/arbor/core"
	"github.com/poiesic/arbor/storage"
)

// Extractor is a per-modality branch: given a user and asset references it
// returns the aggregate result. Implementations never fail the run for one
// bad asset; a returned error means the whole branch broke.
type Extractor interface {
	Extract(ctx context.Context, userID string, assets []string) (*core.ExtractionResult, error)
}

// Coordinator fans a parse request out to the modality extractors and fans
// the results back in. Safe for concurrent use; each Run owns its state.
type Coordinator struct {
	documents Extractor
	images    Extractor
	audio     Extractor
	content   storage.ContentRepository
	sink      ProgressSink
	logger    *slog.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator) error

// WithContentRepository enables persistence of consolidated results.
// Without a repository the pipeline is compute-only.
func WithContentRepository(repo storage.ContentRepository) Option {
	return func(c *Coordinator) error {
		c.content = repo
		return nil
	}
}

// WithProgressSink sets the progress sink. Default discards events.
func WithProgressSink(sink ProgressSink) Option {
	return func(c *Coordinator) error {
		if sink == nil {
			sink = NopSink{}
		}
		c.sink = sink
		return nil
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewCoordinator creates a pipeline coordinator over the three extractors.
func NewCoordinator(documents, images, audio Extractor, opts ...Option) (*Coordinator, error) {
	if documents == nil {
		return nil, ErrDocumentExtractorRequired
	}
	if images == nil {
		return nil, ErrImageExtractorRequired
	}
	if audio == nil {
		return nil, ErrAudioExtractorRequired
	}

	c := &Coordinator{
		documents: documents,
		images:    images,
		audio:     audio,
		sink:      NopSink{},
		logger:    slog.Default().With("component", "pipeline"),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// branchDone is the message a finished branch sends to the merge loop.
type branchDone struct {
	modality core.Modality
	result   *core.ExtractionResult
	err      error
}

// Run executes the pipeline for one request and returns the consolidated
// content. Sibling branches are never cancelled on one branch's failure; a
// broken branch surfaces as errors inside its modality slice. Persistence is
// best effort: a storage failure is logged and the result still returned.
func (c *Coordinator) Run(ctx context.Context, req *core.ParseRequest) (*core.ConsolidatedContent, error) {
	if err := core.ValidateParseRequest(req); err != nil {
		return nil, err
	}

	acc := newAccumulator(req)
	done := make(chan branchDone)

	if acc.wantDocument {
		c.admit(ctx, done, acc, c.documents, core.ModalityDocument, req.UserID, req.Documents)
	}
	if acc.wantImage {
		c.admit(ctx, done, acc, c.images, core.ModalityImage, req.UserID, acc.unseen(req.Images))
	}
	if acc.wantAudio {
		c.admit(ctx, done, acc, c.audio, core.ModalityAudio, req.UserID, req.Audio)
	}

	// Single-owner merge loop: only this goroutine reads or writes acc.
	for acc.inFlight > 0 {
		msg := <-done
		acc.inFlight--

		c.publish(ctx, req.UserID, Event{Stage: StageBranchCompleted, Modality: msg.modality, Percent: 100})

		if msg.err != nil {
			c.logger.Error("branch failed", "modality", msg.modality, "err", msg.err)
			acc.merge(&core.ExtractionResult{
				Modality: msg.modality,
				Findings: []core.AssetFinding{{Asset: string(msg.modality), Err: msg.err.Error()}},
			})
			continue
		}

		acc.merge(msg.result)

		// The document branch may have found images inside its documents;
		// re-admit the image branch for the ones this run has not processed.
		if msg.modality == core.ModalityDocument {
			if derived := acc.unseen(msg.result.DerivedAssets); len(derived) > 0 {
				acc.wantImage = true
				c.admit(ctx, done, acc, c.images, core.ModalityImage, req.UserID, derived)
			}
		}
	}

	if !acc.satisfied() {
		// Unreachable by construction; the loop drains every admission.
		c.logger.Error("merge loop exited unsatisfied")
	}

	content := acc.consolidate(req)
	c.publish(ctx, req.UserID, Event{Stage: StageConsolidated, Message: "content consolidated"})

	c.store(ctx, req.UserID, content)

	return content, nil
}

// admit starts one branch goroutine and counts it in flight.
func (c *Coordinator) admit(ctx context.Context, done chan<- branchDone, acc *accumulator, extractor Extractor, modality core.Modality, userID string, assets []string) {
	acc.inFlight++
	c.publish(ctx, userID, Event{Stage: StageBranchStarted, Modality: modality, Percent: 0})

	go func() {
		result, err := extractor.Extract(ctx, userID, assets)
		done <- branchDone{modality: modality, result: result, err: err}
	}()
}

// store persists the consolidated record if a repository is configured.
func (c *Coordinator) store(ctx context.Context, userID string, content *core.ConsolidatedContent) {
	if c.content == nil {
		return
	}
	id, err := c.content.AppendContent(ctx, userID, content)
	if err != nil {
		c.logger.Error("persisting consolidated content failed", "user", userID, "err", err)
		return
	}
	c.publish(ctx, userID, Event{Stage: StageStored, Message: "content stored"})
	c.logger.Info("consolidated content stored", "user", userID, "id", id)
}

// publish addresses an event to the requesting user and forwards it,
// swallowing sink errors.
func (c *Coordinator) publish(ctx context.Context, userID string, event Event) {
	event.UserID = userID
	if err := c.sink.Publish(ctx, event); err != nil {
		c.logger.Debug("progress sink error", "stage", event.Stage, "err", err)
	}
}
