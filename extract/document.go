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


package extract

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/arbor/ai"
	"github.com/poiesic/arbor/core"
	"github.com/poiesic/arbor/objstore"
)

const (
	// analysisWindow bounds concurrent chunk-analysis calls per document.
	analysisWindow = 3

	// uploadWindow bounds concurrent derived-image uploads.
	uploadWindow = 5
)

// DocumentExtractor turns document assets into analyzed text chunks and
// lifts embedded images out of PDFs for the image branch to process.
type DocumentExtractor struct {
	resolver   objstore.Resolver
	analyzer   ai.ContentAnalyzer
	llmPool    *ants.Pool
	uploadPool *ants.Pool
	chunkWords int
	logger     *slog.Logger
}

// DocumentOption configures a DocumentExtractor.
type DocumentOption func(*DocumentExtractor) error

// WithChunkWords sets the analysis chunk size in words. Default is 750.
func WithChunkWords(words int) DocumentOption {
	return func(e *DocumentExtractor) error {
		if words < 1 {
			return fmt.Errorf("chunk words must be positive, got %d", words)
		}
		e.chunkWords = words
		return nil
	}
}

// WithDocumentLogger sets a custom logger. Default is slog.Default().
func WithDocumentLogger(logger *slog.Logger) DocumentOption {
	return func(e *DocumentExtractor) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewDocumentExtractor creates a document extractor.
// Call Release when done to free the worker pools.
func NewDocumentExtractor(resolver objstore.Resolver, analyzer ai.ContentAnalyzer, opts ...DocumentOption) (*DocumentExtractor, error) {
	if resolver == nil {
		return nil, ErrResolverRequired
	}
	if analyzer == nil {
		return nil, ErrAnalyzerRequired
	}

	llmPool, err := ants.NewPool(analysisWindow)
	if err != nil {
		return nil, err
	}
	uploadPool, err := ants.NewPool(uploadWindow)
	if err != nil {
		llmPool.Release()
		return nil, err
	}

	e := &DocumentExtractor{
		resolver:   resolver,
		analyzer:   analyzer,
		llmPool:    llmPool,
		uploadPool: uploadPool,
		chunkWords: defaultChunkWords,
		logger:     slog.Default().With("component", "extract.document"),
	}

	for _, opt := range opts {
		if optErr := opt(e); optErr != nil {
			e.Release()
			return nil, optErr
		}
	}

	return e, nil
}

// Release frees the worker pools. The extractor must not be used afterwards.
func (e *DocumentExtractor) Release() {
	if e.llmPool != nil {
		e.llmPool.Release()
	}
	if e.uploadPool != nil {
		e.uploadPool.Release()
	}
}

// Extract processes every document asset and returns the aggregate result.
// A failing asset is recorded in the findings and does not stop the rest.
// Images discovered inside PDFs are normalized, uploaded under the user's
// processed prefix, and returned as DerivedAssets.
func (e *DocumentExtractor) Extract(ctx context.Context, userID string, assets []string) (*core.ExtractionResult, error) {
	result := &core.ExtractionResult{Modality: core.ModalityDocument}

	for _, asset := range assets {
		text, images, err := e.loadDocument(ctx, asset)
		if err != nil {
			e.logger.Warn("document failed", "asset", asset, "err", err)
			result.Findings = append(result.Findings, core.AssetFinding{Asset: asset, Err: err.Error()})
			continue
		}

		result.Findings = append(result.Findings, e.analyzeChunks(ctx, asset, text)...)
		result.DerivedAssets = append(result.DerivedAssets, e.uploadDerived(ctx, userID, asset, images)...)
	}

	return result, nil
}

// loadDocument fetches a document and returns its text plus any embedded
// images (PDF only).
func (e *DocumentExtractor) loadDocument(ctx context.Context, asset string) (string, [][]byte, error) {
	url, err := e.resolver.ResolveURL(ctx, asset)
	if err != nil {
		return "", nil, err
	}
	data, err := e.resolver.Fetch(ctx, url)
	if err != nil {
		return "", nil, err
	}

	switch strings.ToLower(path.Ext(asset)) {
	case ".pdf":
		text, err := pdfText(data)
		if err != nil {
			return "", nil, err
		}
		images, err := pdfEmbeddedImages(data)
		if err != nil {
			// Text still counts; image discovery is additive.
			e.logger.Debug("embedded image discovery failed", "asset", asset, "err", err)
		}
		return text, images, nil

	case ".txt", ".md":
		return string(data), nil, nil

	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedAsset, asset)
	}
}

// analyzeChunks runs chunk analysis under the LLM window and returns findings
// in chunk order.
func (e *DocumentExtractor) analyzeChunks(ctx context.Context, asset, text string) []core.AssetFinding {
	chunks := ChunkText(text, e.chunkWords)
	if len(chunks) == 0 {
		return nil
	}

	findings := make([]core.AssetFinding, len(chunks))
	var wg sync.WaitGroup

	for i, chunk := range chunks {
		wg.Add(1)
		err := e.llmPool.Submit(func() {
			defer wg.Done()
			analysis, err := e.analyzer.AnalyzeChunk(ctx, chunk)
			if err != nil {
				findings[i] = core.AssetFinding{Asset: asset, Err: err.Error()}
				return
			}
			findings[i] = core.AssetFinding{Asset: asset, Text: analysis.Text()}
		})
		if err != nil {
			wg.Done()
			findings[i] = core.AssetFinding{Asset: asset, Err: err.Error()}
		}
	}
	wg.Wait()

	return findings
}

// uploadDerived compresses and uploads embedded images under the user's
// processed prefix, returning their access URLs. Failures are logged and
// skipped; derived assets are best effort.
func (e *DocumentExtractor) uploadDerived(ctx context.Context, userID, asset string, images [][]byte) []string {
	if len(images) == 0 {
		return nil
	}

	var (
		mu   sync.Mutex
		urls []string
		wg   sync.WaitGroup
	)

	for _, raw := range images {
		wg.Add(1)
		err := e.uploadPool.Submit(func() {
			defer wg.Done()

			compressed, err := CompressJPEG(raw)
			if err != nil {
				e.logger.Debug("skipping embedded image", "asset", asset, "err", err)
				return
			}
			storePath := fmt.Sprintf("users/%s/processed/images/%s.jpg", userID, uuid.NewString())
			if err := e.resolver.Upload(ctx, storePath, compressed, "image/jpeg"); err != nil {
				e.logger.Warn("derived image upload failed", "asset", asset, "err", err)
				return
			}
			url, err := e.resolver.ResolveURL(ctx, storePath)
			if err != nil {
				e.logger.Warn("derived image resolve failed", "asset", asset, "err", err)
				return
			}

			mu.Lock()
			urls = append(urls, url)
			mu.Unlock()
		})
		if err != nil {
			wg.Done()
			e.logger.Warn("derived image upload rejected", "asset", asset, "err", err)
		}
	}
	wg.Wait()

	return urls
}
