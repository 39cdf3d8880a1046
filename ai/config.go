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


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// Host is the base URL for the OpenAI-compatible inference service.
	// Example: "http://localhost:11434/v1" for a local server
	Host string

	// DocumentModel analyzes document text chunks.
	DocumentModel string

	// ImageModel extracts study cues from images.
	ImageModel string

	// AudioModel outlines audio recordings.
	AudioModel string

	// TreeModel proposes knowledge-tree skeletons.
	TreeModel string

	// QuestionModel generates assessment questions.
	QuestionModel string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the inference service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithDocumentModel sets the document chunk analysis model.
func WithDocumentModel(model string) ConfigOption {
	return func(c *Config) {
		c.DocumentModel = model
	}
}

// WithImageModel sets the image description model.
func WithImageModel(model string) ConfigOption {
	return func(c *Config) {
		c.ImageModel = model
	}
}

// WithAudioModel sets the audio outlining model.
func WithAudioModel(model string) ConfigOption {
	return func(c *Config) {
		c.AudioModel = model
	}
}

// WithTreeModel sets the forest skeleton model.
func WithTreeModel(model string) ConfigOption {
	return func(c *Config) {
		c.TreeModel = model
	}
}

// WithQuestionModel sets the question generation model.
func WithQuestionModel(model string) ConfigOption {
	return func(c *Config) {
		c.QuestionModel = model
	}
}

// WithModel sets every purpose-specific model to the same identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.DocumentModel = model
		c.ImageModel = model
		c.AudioModel = model
		c.TreeModel = model
		c.QuestionModel = model
	}
}

// DefaultConfig returns a Config with sensible defaults for local
// OpenAI-compatible services.
func DefaultConfig() *Config {
	return &Config{
		Host:          "http://localhost:11434/v1",
		DocumentModel: "qwen2.5:3b",
		ImageModel:    "qwen2.5:3b",
		AudioModel:    "qwen2.5:3b",
		TreeModel:     "qwen2.5:3b",
		QuestionModel: "qwen2.5:3b",
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithHost("http://localhost:11434"),
//	    ai.WithModel("gpt-4o-mini"),
//	    ai.WithTreeModel("gpt-4o"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to the host if missing, which is
// required by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/")
		c.Host = c.Host + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.DocumentModel == "" {
		return errors.New("ai config: DocumentModel is required")
	}
	if c.ImageModel == "" {
		return errors.New("ai config: ImageModel is required")
	}
	if c.AudioModel == "" {
		return errors.New("ai config: AudioModel is required")
	}
	if c.TreeModel == "" {
		return errors.New("ai config: TreeModel is required")
	}
	if c.QuestionModel == "" {
		return errors.New("ai config: QuestionModel is required")
	}
	return nil
}
