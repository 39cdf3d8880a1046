package ai

import "context"

// ContentAnalyzer turns raw study material into textual findings.
// Implementations must be thread-safe for concurrent use.
type ContentAnalyzer interface {
	// AnalyzeChunk analyzes one text chunk of a document and returns
	// structured study information. A response the service mangles beyond
	// parsing degrades to a ChunkAnalysis carrying the raw text as its
	// summary; AnalyzeChunk fails only when the call itself fails.
	AnalyzeChunk(ctx context.Context, chunk string) (ChunkAnalysis, error)

	// DescribeImages extracts study cues from the images behind the given
	// access URLs and returns them as free text.
	DescribeImages(ctx context.Context, urls []string) (string, error)

	// OutlineAudio produces an outline with key takeaways for the audio
	// behind the given access URLs and returns it as free text.
	OutlineAudio(ctx context.Context, urls []string) (string, error)
}

// TreeSynthesizer requests knowledge-tree structures and assessment
// questions from the inference service. The returned structures are
// untrusted; callers enforce their own invariants.
type TreeSynthesizer interface {
	// ProposeForest asks for a forest skeleton over the evidence corpus.
	// The instruction bounds the response to maxTrees root trees and
	// maxLevels levels, but the service may ignore either; levels come back
	// exactly as returned. Structurally unparseable output is reported as
	// ErrUnparseable so the caller can choose a fallback.
	ProposeForest(ctx context.Context, corpus string, maxTrees, maxLevels int) ([]TreeSketch, error)

	// GenerateQuestion asks for one assessment question for a concept,
	// answered from the evidence corpus only. Unparseable output is
	// reported as ErrUnparseable.
	GenerateQuestion(ctx context.Context, req QuestionRequest) (*ProposedQuestion, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management.
type Provider interface {
	// ContentAnalyzer returns the content analysis service.
	// The returned ContentAnalyzer is safe for concurrent use.
	ContentAnalyzer() ContentAnalyzer

	// TreeSynthesizer returns the tree and question synthesis service.
	// The returned TreeSynthesizer is safe for concurrent use.
	TreeSynthesizer() TreeSynthesizer

	// Close releases resources held by the provider and its services.
	Close() error
}
