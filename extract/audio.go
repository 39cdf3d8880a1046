package extract

import (
	"context"
	"log/slog"

	"github.com/poiesic/arbor/ai"
	"github.com/poiesic/arbor/core"
	"github.com/poiesic/arbor/objstore"
)

// AudioExtractor resolves audio references and outlines them as a batch.
// Audio bytes are never transformed; the analyzer works from access URLs.
type AudioExtractor struct {
	resolver objstore.Resolver
	analyzer ai.ContentAnalyzer
	logger   *slog.Logger
}

// NewAudioExtractor creates an audio extractor.
func NewAudioExtractor(resolver objstore.Resolver, analyzer ai.ContentAnalyzer) (*AudioExtractor, error) {
	if resolver == nil {
		return nil, ErrResolverRequired
	}
	if analyzer == nil {
		return nil, ErrAnalyzerRequired
	}
	return &AudioExtractor{
		resolver: resolver,
		analyzer: analyzer,
		logger:   slog.Default().With("component", "extract.audio"),
	}, nil
}

// Extract resolves every audio asset and outlines the resolvable ones in one
// analyzer call. Per-asset failures are recorded and skipped.
func (e *AudioExtractor) Extract(ctx context.Context, userID string, assets []string) (*core.ExtractionResult, error) {
	result := &core.ExtractionResult{Modality: core.ModalityAudio}
	if len(assets) == 0 {
		return result, nil
	}

	var urls []string
	for _, asset := range assets {
		url, err := e.resolver.ResolveURL(ctx, asset)
		if err != nil {
			e.logger.Warn("audio failed", "asset", asset, "err", err)
			result.Findings = append(result.Findings, core.AssetFinding{Asset: asset, Err: err.Error()})
			continue
		}
		urls = append(urls, url)
	}
	result.URLs = urls

	if len(urls) == 0 {
		return result, nil
	}

	outline, err := e.analyzer.OutlineAudio(ctx, urls)
	if err != nil {
		e.logger.Warn("audio outline failed", "count", len(urls), "err", err)
		result.Findings = append(result.Findings, core.AssetFinding{Asset: batchLabel, Err: err.Error()})
		return result, nil
	}
	result.Findings = append(result.Findings, core.AssetFinding{Asset: batchLabel, Text: outline})

	return result, nil
}
