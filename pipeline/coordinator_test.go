package pipeline

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/arbor/core"
	"github.com/poiesic/arbor/storage"
)

// stubExtractor is a controllable pipeline branch. When gate is non-nil the
// extractor blocks until the gate closes, so tests can force completion order.
type stubExtractor struct {
	modality core.Modality
	fn       func(assets []string) *core.ExtractionResult
	err      error
	gate     chan struct{}

	mu    sync.Mutex
	calls [][]string
}

func (s *stubExtractor) Extract(ctx context.Context, userID string, assets []string) (*core.ExtractionResult, error) {
	s.mu.Lock()
	s.calls = append(s.calls, assets)
	s.mu.Unlock()

	if s.gate != nil {
		<-s.gate
	}
	if s.err != nil {
		return nil, s.err
	}
	if s.fn != nil {
		return s.fn(assets), nil
	}
	return &core.ExtractionResult{Modality: s.modality}, nil
}

func (s *stubExtractor) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func echoURLs(modality core.Modality) func(assets []string) *core.ExtractionResult {
	return func(assets []string) *core.ExtractionResult {
		return &core.ExtractionResult{Modality: modality, URLs: assets}
	}
}

func textResult(modality core.Modality, text string) func(assets []string) *core.ExtractionResult {
	return func(assets []string) *core.ExtractionResult {
		return &core.ExtractionResult{
			Modality: modality,
			Findings: []core.AssetFinding{{Asset: "batch", Text: text}},
		}
	}
}

func TestRunWaitsForAllBranches(t *testing.T) {
	// Release the three branches in a random order; consolidation must wait
	// for every one of them no matter which finishes first.
	for round := 0; round < 5; round++ {
		docs := &stubExtractor{modality: core.ModalityDocument, fn: textResult(core.ModalityDocument, "doc text"), gate: make(chan struct{})}
		images := &stubExtractor{modality: core.ModalityImage, fn: textResult(core.ModalityImage, "image text"), gate: make(chan struct{})}
		audio := &stubExtractor{modality: core.ModalityAudio, fn: textResult(core.ModalityAudio, "audio text"), gate: make(chan struct{})}

		coord, err := NewCoordinator(docs, images, audio)
		require.NoError(t, err)

		gates := []chan struct{}{docs.gate, images.gate, audio.gate}
		for _, i := range rand.Perm(len(gates)) {
			gate := gates[i]
			go close(gate)
		}

		content, err := coord.Run(context.Background(), &core.ParseRequest{
			UserID:    "user-1",
			Documents: []string{"a.pdf"},
			Images:    []string{"b.png"},
			Audio:     []string{"c.mp3"},
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"doc text"}, content.Document.Findings)
		assert.Equal(t, []string{"image text"}, content.Image.Findings)
		assert.Equal(t, []string{"audio text"}, content.Audio.Findings)
	}
}

func TestRunReadmitsImageBranchForDerivedAssets(t *testing.T) {
	// One document with three embedded images and no direct images: the
	// image branch must run exactly once, over the three derived URLs.
	derived := []string{"file:///store/d1.jpg", "file:///store/d2.jpg", "file:///store/d3.jpg"}

	docs := &stubExtractor{
		modality: core.ModalityDocument,
		fn: func(assets []string) *core.ExtractionResult {
			return &core.ExtractionResult{
				Modality:      core.ModalityDocument,
				Findings:      []core.AssetFinding{{Asset: assets[0], Text: "chapter summary"}},
				DerivedAssets: derived,
			}
		},
	}
	images := &stubExtractor{modality: core.ModalityImage, fn: echoURLs(core.ModalityImage)}
	audio := &stubExtractor{modality: core.ModalityAudio}

	coord, err := NewCoordinator(docs, images, audio)
	require.NoError(t, err)

	content, err := coord.Run(context.Background(), &core.ParseRequest{
		UserID:    "user-1",
		Documents: []string{"notes.pdf"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, images.callCount())
	assert.ElementsMatch(t, derived, content.Image.URLs)
	assert.Zero(t, audio.callCount(), "audio branch must not be admitted without audio assets")
}

func TestRunImageMergeIsAdditive(t *testing.T) {
	// Direct images {A,B} plus derived {B,C} must consolidate to {A,B,C}
	// with B processed only once.
	urlA := "file:///img/a.png"
	urlB := "file:///img/b.png"
	urlC := "file:///img/c.png"

	docGate := make(chan struct{})
	docs := &stubExtractor{
		modality: core.ModalityDocument,
		gate:     docGate,
		fn: func(assets []string) *core.ExtractionResult {
			return &core.ExtractionResult{
				Modality:      core.ModalityDocument,
				DerivedAssets: []string{urlB, urlC},
			}
		},
	}
	images := &stubExtractor{modality: core.ModalityImage, fn: echoURLs(core.ModalityImage)}
	audio := &stubExtractor{modality: core.ModalityAudio}
	close(docGate)

	coord, err := NewCoordinator(docs, images, audio)
	require.NoError(t, err)

	content, err := coord.Run(context.Background(), &core.ParseRequest{
		UserID:    "user-1",
		Documents: []string{"notes.pdf"},
		Images:    []string{urlA, urlB},
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{urlA, urlB, urlC}, content.Image.URLs)

	var handled []string
	images.mu.Lock()
	for _, call := range images.calls {
		handled = append(handled, call...)
	}
	images.mu.Unlock()
	assert.ElementsMatch(t, []string{urlA, urlB, urlC}, handled, "no URL may be processed twice")
}

func TestRunBranchFailureDegradesModality(t *testing.T) {
	docs := &stubExtractor{modality: core.ModalityDocument, err: errors.New("extractor crashed")}
	images := &stubExtractor{modality: core.ModalityImage, fn: textResult(core.ModalityImage, "image text")}
	audio := &stubExtractor{modality: core.ModalityAudio}

	coord, err := NewCoordinator(docs, images, audio)
	require.NoError(t, err)

	content, err := coord.Run(context.Background(), &core.ParseRequest{
		UserID:    "user-1",
		Documents: []string{"a.pdf"},
		Images:    []string{"b.png"},
	})
	require.NoError(t, err, "a broken branch must not fail the run")

	require.Len(t, content.Document.Errors, 1)
	assert.Contains(t, content.Document.Errors[0], "extractor crashed")
	assert.Equal(t, []string{"image text"}, content.Image.Findings)
}

func TestRunRejectsInvalidRequests(t *testing.T) {
	docs := &stubExtractor{modality: core.ModalityDocument}
	images := &stubExtractor{modality: core.ModalityImage}
	audio := &stubExtractor{modality: core.ModalityAudio}

	coord, err := NewCoordinator(docs, images, audio)
	require.NoError(t, err)

	_, err = coord.Run(context.Background(), nil)
	assert.ErrorIs(t, err, core.ErrInvalidRequest)

	_, err = coord.Run(context.Background(), &core.ParseRequest{UserID: "user-1"})
	assert.ErrorIs(t, err, core.ErrNoAssets)

	_, err = coord.Run(context.Background(), &core.ParseRequest{Documents: []string{"a.pdf"}})
	assert.ErrorIs(t, err, core.ErrEmptyUserID)
}

// failingContentRepo always fails writes.
type failingContentRepo struct{}

func (failingContentRepo) AppendContent(context.Context, string, *core.ConsolidatedContent) (core.ID, error) {
	return 0, errors.New("disk full")
}

func (failingContentRepo) ContentForUser(context.Context, string) ([]*core.ConsolidatedContent, error) {
	return nil, nil
}

func (failingContentRepo) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (failingContentRepo) Close() error { return nil }

var _ storage.ContentRepository = failingContentRepo{}

func TestRunStorageIsBestEffort(t *testing.T) {
	docs := &stubExtractor{modality: core.ModalityDocument, fn: textResult(core.ModalityDocument, "doc text")}
	images := &stubExtractor{modality: core.ModalityImage}
	audio := &stubExtractor{modality: core.ModalityAudio}

	coord, err := NewCoordinator(docs, images, audio, WithContentRepository(failingContentRepo{}))
	require.NoError(t, err)

	content, err := coord.Run(context.Background(), &core.ParseRequest{
		UserID:    "user-1",
		Documents: []string{"a.pdf"},
	})
	require.NoError(t, err, "storage failure must not fail the run")
	assert.Equal(t, []string{"doc text"}, content.Document.Findings)
}

// recordingSink captures progress events; publishes happen only from the
// merge loop goroutine.
type recordingSink struct {
	events []Event
}

func (s *recordingSink) Publish(_ context.Context, event Event) error {
	s.events = append(s.events, event)
	return nil
}

func TestRunPublishesProgress(t *testing.T) {
	docs := &stubExtractor{modality: core.ModalityDocument, fn: textResult(core.ModalityDocument, "doc text")}
	images := &stubExtractor{modality: core.ModalityImage}
	audio := &stubExtractor{modality: core.ModalityAudio}

	sink := &recordingSink{}
	coord, err := NewCoordinator(docs, images, audio, WithProgressSink(sink))
	require.NoError(t, err)

	_, err = coord.Run(context.Background(), &core.ParseRequest{
		UserID:    "user-1",
		Documents: []string{"a.pdf"},
	})
	require.NoError(t, err)

	var stages []Stage
	for _, e := range sink.events {
		stages = append(stages, e.Stage)
		assert.Equal(t, "user-1", e.UserID, "every event is addressed to the requesting user")
	}
	assert.Equal(t, []Stage{StageBranchStarted, StageBranchCompleted, StageConsolidated}, stages)
	assert.Equal(t, 0, sink.events[0].Percent)
	assert.Equal(t, 100, sink.events[1].Percent)
}

// erroringSink always fails; the coordinator must swallow it.
type erroringSink struct{}

func (erroringSink) Publish(context.Context, Event) error { return errors.New("sink down") }

func TestRunSwallowsSinkErrors(t *testing.T) {
	docs := &stubExtractor{modality: core.ModalityDocument, fn: textResult(core.ModalityDocument, "doc text")}
	images := &stubExtractor{modality: core.ModalityImage}
	audio := &stubExtractor{modality: core.ModalityAudio}

	coord, err := NewCoordinator(docs, images, audio, WithProgressSink(erroringSink{}))
	require.NoError(t, err)

	_, err = coord.Run(context.Background(), &core.ParseRequest{
		UserID:    "user-1",
		Documents: []string{"a.pdf"},
	})
	assert.NoError(t, err)
}
