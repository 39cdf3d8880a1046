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


package mock

import "github.com/poiesic/arbor/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates mock analyzer and synthesizer instances.
type MockProvider struct {
	analyzer    *MockContentAnalyzer
	synthesizer *MockTreeSynthesizer
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production constructors.
// Use GetMockAnalyzer()/GetMockSynthesizer() to access concrete types for
// test assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		analyzer:    NewMockContentAnalyzer(),
		synthesizer: NewMockTreeSynthesizer(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(analyzer *MockContentAnalyzer, synthesizer *MockTreeSynthesizer) ai.Provider {
	return &MockProvider{
		analyzer:    analyzer,
		synthesizer: synthesizer,
	}
}

// ContentAnalyzer returns the mock content analyzer.
func (p *MockProvider) ContentAnalyzer() ai.ContentAnalyzer {
	return p.analyzer
}

// TreeSynthesizer returns the mock tree synthesizer.
func (p *MockProvider) TreeSynthesizer() ai.TreeSynthesizer {
	return p.synthesizer
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockAnalyzer returns the underlying mock analyzer for test assertions.
func (p *MockProvider) GetMockAnalyzer() *MockContentAnalyzer {
	return p.analyzer
}

// GetMockSynthesizer returns the underlying mock synthesizer for test assertions.
func (p *MockProvider) GetMockSynthesizer() *MockTreeSynthesizer {
	return p.synthesizer
}
