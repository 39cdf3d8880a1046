package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/arbor/ai"
	"github.com/poiesic/arbor/ai/mock"
	"github.com/poiesic/arbor/core"
	"github.com/poiesic/arbor/objstore"
)

func newTestStore(t *testing.T) *objstore.FS {
	t.Helper()
	store, err := objstore.NewFS(t.TempDir())
	require.NoError(t, err)
	return store
}

func writeAsset(t *testing.T, store *objstore.FS, path, contents string) {
	t.Helper()
	require.NoError(t, store.Upload(context.Background(), path, []byte(contents), "text/plain"))
}

func TestDocumentExtractorAnalyzesTextChunks(t *testing.T) {
	store := newTestStore(t)
	analyzer := mock.NewMockContentAnalyzer()

	writeAsset(t, store, "notes.txt", "Photosynthesis converts light into chemical energy. Plants do this in chloroplasts.")

	extractor, err := NewDocumentExtractor(store, analyzer)
	require.NoError(t, err)
	defer extractor.Release()

	result, err := extractor.Extract(context.Background(), "user-1", []string{"notes.txt"})
	require.NoError(t, err)

	assert.Equal(t, core.ModalityDocument, result.Modality)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, "notes.txt", result.Findings[0].Asset)
	assert.Contains(t, result.Findings[0].Text, "Photosynthesis")
	assert.Empty(t, result.Findings[0].Err)
	assert.Equal(t, 1, analyzer.ChunkCalls())
}

func TestDocumentExtractorChunksLongText(t *testing.T) {
	store := newTestStore(t)
	analyzer := mock.NewMockContentAnalyzer()

	// 25 words with a 10-word chunk size gives three chunks.
	writeAsset(t, store, "long.md", strings.Repeat("word ", 25))

	extractor, err := NewDocumentExtractor(store, analyzer, WithChunkWords(10))
	require.NoError(t, err)
	defer extractor.Release()

	result, err := extractor.Extract(context.Background(), "user-1", []string{"long.md"})
	require.NoError(t, err)

	assert.Len(t, result.Findings, 3)
	assert.Equal(t, 3, analyzer.ChunkCalls())
}

func TestDocumentExtractorIsolatesFailures(t *testing.T) {
	store := newTestStore(t)
	analyzer := mock.NewMockContentAnalyzer()

	writeAsset(t, store, "good.txt", "Valid study notes here.")

	extractor, err := NewDocumentExtractor(store, analyzer)
	require.NoError(t, err)
	defer extractor.Release()

	result, err := extractor.Extract(context.Background(), "user-1", []string{"missing.txt", "good.txt"})
	require.NoError(t, err)

	require.Len(t, result.Findings, 2)
	assert.Equal(t, "missing.txt", result.Findings[0].Asset)
	assert.NotEmpty(t, result.Findings[0].Err)
	assert.Equal(t, "good.txt", result.Findings[1].Asset)
	assert.NotEmpty(t, result.Findings[1].Text)
}

func TestDocumentExtractorUnsupportedAsset(t *testing.T) {
	store := newTestStore(t)
	analyzer := mock.NewMockContentAnalyzer()

	writeAsset(t, store, "deck.pptx", "binary-ish")

	extractor, err := NewDocumentExtractor(store, analyzer)
	require.NoError(t, err)
	defer extractor.Release()

	result, err := extractor.Extract(context.Background(), "user-1", []string{"deck.pptx"})
	require.NoError(t, err)

	require.Len(t, result.Findings, 1)
	assert.Contains(t, result.Findings[0].Err, "unsupported asset type")
	assert.Empty(t, result.DerivedAssets)
}

func TestDocumentExtractorRecordsAnalyzerErrors(t *testing.T) {
	store := newTestStore(t)
	analyzer := mock.NewMockContentAnalyzer()
	analyzer.AnalyzeChunkFunc = func(ctx context.Context, chunk string) (ai.ChunkAnalysis, error) {
		return ai.ChunkAnalysis{}, errors.New("model offline")
	}

	writeAsset(t, store, "notes.txt", "Some study notes.")

	extractor, err := NewDocumentExtractor(store, analyzer)
	require.NoError(t, err)
	defer extractor.Release()

	result, err := extractor.Extract(context.Background(), "user-1", []string{"notes.txt"})
	require.NoError(t, err)

	require.Len(t, result.Findings, 1)
	assert.Equal(t, "model offline", result.Findings[0].Err)
}

func TestDocumentExtractorRequiresCollaborators(t *testing.T) {
	store := newTestStore(t)

	_, err := NewDocumentExtractor(nil, mock.NewMockContentAnalyzer())
	assert.ErrorIs(t, err, ErrResolverRequired)

	_, err = NewDocumentExtractor(store, nil)
	assert.ErrorIs(t, err, ErrAnalyzerRequired)
}

func TestDocumentExtractorFetchesFileURLs(t *testing.T) {
	store := newTestStore(t)
	analyzer := mock.NewMockContentAnalyzer()

	dir := t.TempDir()
	path := filepath.Join(dir, "external.txt")
	require.NoError(t, os.WriteFile(path, []byte("External notes."), 0o644))

	extractor, err := NewDocumentExtractor(store, analyzer)
	require.NoError(t, err)
	defer extractor.Release()

	result, err := extractor.Extract(context.Background(), "user-1", []string{"file://" + filepath.ToSlash(path)})
	require.NoError(t, err)

	require.Len(t, result.Findings, 1)
	assert.Empty(t, result.Findings[0].Err)
	assert.Contains(t, result.Findings[0].Text, "External notes.")
}
