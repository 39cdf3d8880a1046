package mock

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/poiesic/arbor/ai"
)

// MockContentAnalyzer is a test double for ai.ContentAnalyzer.
// It allows custom behavior injection via function fields.
// Call counts are atomic; extractors invoke the analyzer from pool workers.
type MockContentAnalyzer struct {
	// AnalyzeChunkFunc is called by AnalyzeChunk if set.
	// If nil, returns the chunk's first sentence as the summary.
	AnalyzeChunkFunc func(ctx context.Context, chunk string) (ai.ChunkAnalysis, error)

	// DescribeImagesFunc is called by DescribeImages if set.
	// If nil, returns a canned description naming the URLs.
	DescribeImagesFunc func(ctx context.Context, urls []string) (string, error)

	// OutlineAudioFunc is called by OutlineAudio if set.
	// If nil, returns a canned outline naming the URLs.
	OutlineAudioFunc func(ctx context.Context, urls []string) (string, error)

	chunkCalls atomic.Int64
	imageCalls atomic.Int64
	audioCalls atomic.Int64
}

// NewMockContentAnalyzer creates a mock content analyzer with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockContentAnalyzer() *MockContentAnalyzer {
	return &MockContentAnalyzer{}
}

// AnalyzeChunk returns a simple analysis derived from the chunk text.
func (m *MockContentAnalyzer) AnalyzeChunk(ctx context.Context, chunk string) (ai.ChunkAnalysis, error) {
	m.chunkCalls.Add(1)

	if m.AnalyzeChunkFunc != nil {
		return m.AnalyzeChunkFunc(ctx, chunk)
	}

	summary := chunk
	if idx := strings.IndexByte(summary, '.'); idx > 0 {
		summary = summary[:idx+1]
	}
	return ai.ChunkAnalysis{Summary: strings.TrimSpace(summary)}, nil
}

// DescribeImages returns a canned description.
func (m *MockContentAnalyzer) DescribeImages(ctx context.Context, urls []string) (string, error) {
	m.imageCalls.Add(1)

	if m.DescribeImagesFunc != nil {
		return m.DescribeImagesFunc(ctx, urls)
	}
	return "Diagram content from " + strings.Join(urls, ", "), nil
}

// OutlineAudio returns a canned outline.
func (m *MockContentAnalyzer) OutlineAudio(ctx context.Context, urls []string) (string, error) {
	m.audioCalls.Add(1)

	if m.OutlineAudioFunc != nil {
		return m.OutlineAudioFunc(ctx, urls)
	}
	return "Lecture outline from " + strings.Join(urls, ", "), nil
}

// ChunkCalls returns the number of times AnalyzeChunk was called.
func (m *MockContentAnalyzer) ChunkCalls() int { return int(m.chunkCalls.Load()) }

// ImageCalls returns the number of times DescribeImages was called.
func (m *MockContentAnalyzer) ImageCalls() int { return int(m.imageCalls.Load()) }

// AudioCalls returns the number of times OutlineAudio was called.
func (m *MockContentAnalyzer) AudioCalls() int { return int(m.audioCalls.Load()) }

// Reset clears the call counts and custom functions.
func (m *MockContentAnalyzer) Reset() {
	m.chunkCalls.Store(0)
	m.imageCalls.Store(0)
	m.audioCalls.Store(0)
	m.AnalyzeChunkFunc = nil
	m.DescribeImagesFunc = nil
	m.OutlineAudioFunc = nil
}
