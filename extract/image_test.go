package extract

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/arbor/ai/mock"
	"github.com/poiesic/arbor/core"
)

func TestImageExtractorProcessesRawImages(t *testing.T) {
	store := newTestStore(t)
	analyzer := mock.NewMockContentAnalyzer()

	data := testImagePNG(t, 64, 64)
	require.NoError(t, store.Upload(context.Background(), "photos/board.png", data, "image/png"))

	extractor, err := NewImageExtractor(store, analyzer)
	require.NoError(t, err)
	defer extractor.Release()

	result, err := extractor.Extract(context.Background(), "user-1", []string{"photos/board.png"})
	require.NoError(t, err)

	assert.Equal(t, core.ModalityImage, result.Modality)
	require.Len(t, result.URLs, 1)
	assert.True(t, strings.Contains(result.URLs[0], "users/user-1/processed/images/"),
		"processed copy should live under the user prefix, got %s", result.URLs[0])

	require.Len(t, result.Findings, 1)
	assert.Contains(t, result.Findings[0].Text, "Diagram content")
	assert.Equal(t, 1, analyzer.ImageCalls())
}

func TestImageExtractorPassesThroughURLs(t *testing.T) {
	store := newTestStore(t)
	analyzer := mock.NewMockContentAnalyzer()

	extractor, err := NewImageExtractor(store, analyzer)
	require.NoError(t, err)
	defer extractor.Release()

	url := "file:///already/processed/diagram.jpg"
	result, err := extractor.Extract(context.Background(), "user-1", []string{url})
	require.NoError(t, err)

	require.Equal(t, []string{url}, result.URLs)
	assert.Equal(t, 1, analyzer.ImageCalls())
}

func TestImageExtractorIsolatesFailures(t *testing.T) {
	store := newTestStore(t)
	analyzer := mock.NewMockContentAnalyzer()

	data := testImagePNG(t, 32, 32)
	require.NoError(t, store.Upload(context.Background(), "ok.png", data, "image/png"))
	require.NoError(t, store.Upload(context.Background(), "broken.png", []byte("not an image"), "image/png"))

	extractor, err := NewImageExtractor(store, analyzer)
	require.NoError(t, err)
	defer extractor.Release()

	result, err := extractor.Extract(context.Background(), "user-1", []string{"broken.png", "ok.png"})
	require.NoError(t, err)

	assert.Len(t, result.URLs, 1)

	var failed, described bool
	for _, f := range result.Findings {
		if f.Asset == "broken.png" && f.Err != "" {
			failed = true
		}
		if f.Text != "" {
			described = true
		}
	}
	assert.True(t, failed, "broken asset should be recorded")
	assert.True(t, described, "surviving asset should still be described")
}

func TestImageExtractorEmptyBatch(t *testing.T) {
	store := newTestStore(t)
	analyzer := mock.NewMockContentAnalyzer()

	extractor, err := NewImageExtractor(store, analyzer)
	require.NoError(t, err)
	defer extractor.Release()

	result, err := extractor.Extract(context.Background(), "user-1", nil)
	require.NoError(t, err)
	assert.Empty(t, result.URLs)
	assert.Empty(t, result.Findings)
	assert.Zero(t, analyzer.ImageCalls())
}

func TestAudioExtractorOutlinesBatch(t *testing.T) {
	store := newTestStore(t)
	analyzer := mock.NewMockContentAnalyzer()

	require.NoError(t, store.Upload(context.Background(), "lectures/week1.mp3", []byte("audio bytes"), "audio/mpeg"))

	extractor, err := NewAudioExtractor(store, analyzer)
	require.NoError(t, err)

	result, err := extractor.Extract(context.Background(), "user-1", []string{"lectures/week1.mp3", "missing.mp3"})
	require.NoError(t, err)

	assert.Equal(t, core.ModalityAudio, result.Modality)
	assert.Len(t, result.URLs, 1)

	var outlined, failed bool
	for _, f := range result.Findings {
		if strings.Contains(f.Text, "Lecture outline") {
			outlined = true
		}
		if f.Asset == "missing.mp3" && f.Err != "" {
			failed = true
		}
	}
	assert.True(t, outlined)
	assert.True(t, failed)
	assert.Equal(t, 1, analyzer.AudioCalls())
}
