package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poiesic/arbor/core"
)

func TestSatisfiedIsIdempotent(t *testing.T) {
	acc := newAccumulator(&core.ParseRequest{
		UserID:    "u",
		Documents: []string{"a.pdf"},
		Audio:     []string{"b.mp3"},
	})

	assert.False(t, acc.satisfied())
	assert.False(t, acc.satisfied(), "evaluating the predicate must not change state")

	acc.merge(&core.ExtractionResult{Modality: core.ModalityDocument})
	assert.False(t, acc.satisfied(), "audio still outstanding")

	acc.merge(&core.ExtractionResult{Modality: core.ModalityAudio})
	assert.True(t, acc.satisfied())
	assert.True(t, acc.satisfied())
}

func TestSatisfiedWaitsForInFlight(t *testing.T) {
	acc := newAccumulator(&core.ParseRequest{UserID: "u", Images: []string{"a.png"}})
	acc.inFlight = 1
	acc.merge(&core.ExtractionResult{Modality: core.ModalityImage})
	assert.False(t, acc.satisfied())

	acc.inFlight = 0
	assert.True(t, acc.satisfied())
}

func TestImageMergeUnion(t *testing.T) {
	acc := newAccumulator(&core.ParseRequest{UserID: "u", Images: []string{"x"}})

	acc.merge(&core.ExtractionResult{Modality: core.ModalityImage, URLs: []string{"a", "b"}})
	acc.merge(&core.ExtractionResult{Modality: core.ModalityImage, URLs: []string{"b", "c"}})

	assert.Equal(t, []string{"a", "b", "c"}, acc.image.URLs)
}

func TestUnseenClaimsURLs(t *testing.T) {
	acc := newAccumulator(&core.ParseRequest{UserID: "u", Documents: []string{"d.pdf"}})

	first := acc.unseen([]string{"a", "b"})
	assert.Equal(t, []string{"a", "b"}, first)

	second := acc.unseen([]string{"b", "c"})
	assert.Equal(t, []string{"c"}, second, "claimed URLs must not be handed out twice")
}

func TestConsolidateSeparatesErrorsFromFindings(t *testing.T) {
	acc := newAccumulator(&core.ParseRequest{UserID: "u", Documents: []string{"d.pdf"}})
	acc.merge(&core.ExtractionResult{
		Modality: core.ModalityDocument,
		Findings: []core.AssetFinding{
			{Asset: "d.pdf", Text: "summary"},
			{Asset: "bad.pdf", Err: "unreadable"},
		},
	})

	content := acc.consolidate(&core.ParseRequest{UserID: "u", Documents: []string{"d.pdf", "bad.pdf"}})
	assert.Equal(t, []string{"summary"}, content.Document.Findings)
	assert.Equal(t, []string{"bad.pdf: unreadable"}, content.Document.Errors)
	assert.Equal(t, []string{"d.pdf", "bad.pdf"}, content.SourceAssets)
	assert.False(t, content.CreatedAt.IsZero())
}
