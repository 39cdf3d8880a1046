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


package openai

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/poiesic/arbor/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ContentAnalyzer implements ai.ContentAnalyzer using OpenAI-compatible chat APIs.
type ContentAnalyzer struct {
	document llms.Model
	image    llms.Model
	audio    llms.Model
	logger   *slog.Logger
}

// newContentAnalyzer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newContentAnalyzer(config *ai.Config) (*ContentAnalyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	document, err := newClient(config.Host, config.DocumentModel)
	if err != nil {
		return nil, err
	}
	image, err := newClient(config.Host, config.ImageModel)
	if err != nil {
		return nil, err
	}
	audio, err := newClient(config.Host, config.AudioModel)
	if err != nil {
		return nil, err
	}

	return &ContentAnalyzer{
		document: document,
		image:    image,
		audio:    audio,
		logger:   slog.Default().With("component", "openai-analyzer"),
	}, nil
}

// NewContentAnalyzer creates a content analyzer using the provided configuration.
//
// Returns ai.ContentAnalyzer interface to enforce abstraction.
func NewContentAnalyzer(config *ai.Config) (ai.ContentAnalyzer, error) {
	return newContentAnalyzer(config)
}

// newClient creates an OpenAI-compatible chat client.
// Use "none" as token for local services that don't require authentication.
func newClient(host, model string) (llms.Model, error) {
	return openai.New(
		openai.WithBaseURL(host),
		openai.WithToken("none"),
		openai.WithModel(model),
	)
}

// generate runs one single-turn completion and returns the raw text of the
// first choice.
func generate(ctx context.Context, client llms.Model, prompt string, temperature float64) (string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	response, err := client.GenerateContent(ctx, content, llms.WithTemperature(temperature))
	if err != nil {
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", nil
	}
	return response.Choices[0].Content, nil
}

// AnalyzeChunk analyzes one document text chunk. A response that carries no
// parseable JSON degrades to an analysis with the raw text as its summary;
// only a failed call is an error.
func (a *ContentAnalyzer) AnalyzeChunk(ctx context.Context, chunk string) (ai.ChunkAnalysis, error) {
	raw, err := generate(ctx, a.document, chunkPrompt(chunk), 0.2)
	if err != nil {
		a.logger.Error("chunk analysis call failed", "err", err)
		return ai.ChunkAnalysis{}, err
	}

	text := stripFences(raw)
	payload, ok := firstJSONObject(text)
	if !ok {
		a.logger.Debug("no JSON object in chunk response, using raw text")
		return ai.ChunkAnalysis{Summary: text}, nil
	}

	var analysis ai.ChunkAnalysis
	if err := json.Unmarshal([]byte(repairJSON(payload)), &analysis); err != nil {
		a.logger.Warn("error parsing chunk analysis, using raw text", "err", err)
		return ai.ChunkAnalysis{Summary: text}, nil
	}
	return analysis, nil
}

// DescribeImages extracts study cues from images as free text.
func (a *ContentAnalyzer) DescribeImages(ctx context.Context, urls []string) (string, error) {
	raw, err := generate(ctx, a.image, imagePrompt(urls), 0.1)
	if err != nil {
		a.logger.Error("image description call failed", "err", err)
		return "", err
	}
	return stripFences(raw), nil
}

// OutlineAudio produces a transcript outline for audio as free text.
func (a *ContentAnalyzer) OutlineAudio(ctx context.Context, urls []string) (string, error) {
	raw, err := generate(ctx, a.audio, audioPrompt(urls), 0.2)
	if err != nil {
		a.logger.Error("audio outline call failed", "err", err)
		return "", err
	}
	return stripFences(raw), nil
}
