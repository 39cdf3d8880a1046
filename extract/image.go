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
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/arbor/ai"
	"github.com/poiesic/arbor/core"
	"github.com/poiesic/arbor/objstore"
)

// batchLabel names batch-level findings that do not belong to a single asset.
const batchLabel = "batch"

// ImageExtractor normalizes image assets and describes them as a batch.
// References that already are URLs pass through untouched; those are the
// processed copies the document branch uploaded.
type ImageExtractor struct {
	resolver objstore.Resolver
	analyzer ai.ContentAnalyzer
	pool     *ants.Pool
	logger   *slog.Logger
}

// ImageOption configures an ImageExtractor.
type ImageOption func(*ImageExtractor) error

// WithImageLogger sets a custom logger. Default is slog.Default().
func WithImageLogger(logger *slog.Logger) ImageOption {
	return func(e *ImageExtractor) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewImageExtractor creates an image extractor.
// Call Release when done to free the worker pool.
func NewImageExtractor(resolver objstore.Resolver, analyzer ai.ContentAnalyzer, opts ...ImageOption) (*ImageExtractor, error) {
	if resolver == nil {
		return nil, ErrResolverRequired
	}
	if analyzer == nil {
		return nil, ErrAnalyzerRequired
	}

	pool, err := ants.NewPool(uploadWindow)
	if err != nil {
		return nil, err
	}

	e := &ImageExtractor{
		resolver: resolver,
		analyzer: analyzer,
		pool:     pool,
		logger:   slog.Default().With("component", "extract.image"),
	}

	for _, opt := range opts {
		if optErr := opt(e); optErr != nil {
			e.Release()
			return nil, optErr
		}
	}

	return e, nil
}

// Release frees the worker pool. The extractor must not be used afterwards.
func (e *ImageExtractor) Release() {
	if e.pool != nil {
		e.pool.Release()
	}
}

// Extract normalizes and uploads raw image assets, then describes the whole
// batch in one analyzer call. Per-asset failures are recorded and skipped.
func (e *ImageExtractor) Extract(ctx context.Context, userID string, assets []string) (*core.ExtractionResult, error) {
	result := &core.ExtractionResult{Modality: core.ModalityImage}
	if len(assets) == 0 {
		return result, nil
	}

	urls := make([]string, len(assets))
	errs := make([]error, len(assets))
	var wg sync.WaitGroup

	for i, asset := range assets {
		if objstore.IsURL(asset) {
			urls[i] = asset
			continue
		}
		wg.Add(1)
		err := e.pool.Submit(func() {
			defer wg.Done()
			url, err := e.processImage(ctx, userID, asset)
			if err != nil {
				errs[i] = err
				return
			}
			urls[i] = url
		})
		if err != nil {
			wg.Done()
			errs[i] = err
		}
	}
	wg.Wait()

	var ready []string
	for i, asset := range assets {
		if errs[i] != nil {
			e.logger.Warn("image failed", "asset", asset, "err", errs[i])
			result.Findings = append(result.Findings, core.AssetFinding{Asset: asset, Err: errs[i].Error()})
			continue
		}
		if urls[i] != "" {
			ready = append(ready, urls[i])
		}
	}
	result.URLs = ready

	if len(ready) == 0 {
		return result, nil
	}

	description, err := e.analyzer.DescribeImages(ctx, ready)
	if err != nil {
		e.logger.Warn("image description failed", "count", len(ready), "err", err)
		result.Findings = append(result.Findings, core.AssetFinding{Asset: batchLabel, Err: err.Error()})
		return result, nil
	}
	result.Findings = append(result.Findings, core.AssetFinding{Asset: batchLabel, Text: description})

	return result, nil
}

// processImage fetches, normalizes, and uploads one raw image asset,
// returning the access URL of the processed copy.
func (e *ImageExtractor) processImage(ctx context.Context, userID, asset string) (string, error) {
	url, err := e.resolver.ResolveURL(ctx, asset)
	if err != nil {
		return "", err
	}
	data, err := e.resolver.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	normalized, err := NormalizePNG(data)
	if err != nil {
		return "", err
	}

	storePath := fmt.Sprintf("users/%s/processed/images/%s.png", userID, uuid.NewString())
	if err := e.resolver.Upload(ctx, storePath, normalized, "image/png"); err != nil {
		return "", err
	}
	return e.resolver.ResolveURL(ctx, storePath)
}
