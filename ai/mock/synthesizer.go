package mock

import (
	"context"
	"fmt"

	"github.com/poiesic/arbor/ai"
)

// MockTreeSynthesizer is a test double for ai.TreeSynthesizer.
// It allows custom behavior injection via function fields.
type MockTreeSynthesizer struct {
	// ProposeForestFunc is called by ProposeForest if set.
	// If nil, returns a single two-level tree derived from the corpus.
	ProposeForestFunc func(ctx context.Context, corpus string, maxTrees, maxLevels int) ([]ai.TreeSketch, error)

	// GenerateQuestionFunc is called by GenerateQuestion if set.
	// If nil, returns a deterministic question unique per concept.
	GenerateQuestionFunc func(ctx context.Context, req ai.QuestionRequest) (*ai.ProposedQuestion, error)

	forestCalls   int
	questionCalls int
}

// NewMockTreeSynthesizer creates a mock tree synthesizer with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockTreeSynthesizer() *MockTreeSynthesizer {
	return &MockTreeSynthesizer{}
}

// ProposeForest returns a minimal well-formed sketch.
func (m *MockTreeSynthesizer) ProposeForest(ctx context.Context, corpus string, maxTrees, maxLevels int) ([]ai.TreeSketch, error) {
	m.forestCalls++

	if m.ProposeForestFunc != nil {
		return m.ProposeForestFunc(ctx, corpus, maxTrees, maxLevels)
	}

	return []ai.TreeSketch{
		{
			RootConcept: "Study Material",
			Root: &ai.SketchNode{
				Concept: "Study Material",
				Level:   0,
				Children: []*ai.SketchNode{
					{Concept: "Key Ideas", Level: 1},
				},
			},
		},
	}, nil
}

// GenerateQuestion returns a question whose prompt embeds the concept, so
// default questions never collide across concepts.
func (m *MockTreeSynthesizer) GenerateQuestion(ctx context.Context, req ai.QuestionRequest) (*ai.ProposedQuestion, error) {
	m.questionCalls++

	if m.GenerateQuestionFunc != nil {
		return m.GenerateQuestionFunc(ctx, req)
	}

	return &ai.ProposedQuestion{
		Prompt: fmt.Sprintf("What best describes %s?", req.Concept),
		Options: map[string]string{
			"A": "The correct description",
			"B": "A plausible distractor",
			"C": "Another distractor",
			"D": "A third distractor",
		},
		Correct:   "A",
		Rationale: "Stated directly in the material.",
	}, nil
}

// ForestCalls returns the number of times ProposeForest was called.
func (m *MockTreeSynthesizer) ForestCalls() int { return m.forestCalls }

// QuestionCalls returns the number of times GenerateQuestion was called.
func (m *MockTreeSynthesizer) QuestionCalls() int { return m.questionCalls }

// Reset clears the call counts and custom functions.
func (m *MockTreeSynthesizer) Reset() {
	m.forestCalls = 0
	m.questionCalls = 0
	m.ProposeForestFunc = nil
	m.GenerateQuestionFunc = nil
}
