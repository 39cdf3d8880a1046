package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTreePromptCarriesBudgets(t *testing.T) {
	prompt := treePrompt("corpus text", 3, 5)
	assert.Contains(t, prompt, "At most 3 trees and at most 5 levels")
	assert.Contains(t, prompt, "corpus text")
}

func TestQuestionPromptListsPriorQuestions(t *testing.T) {
	prompt := questionPrompt("Mitosis", "context", 2, []string{"What is a cell?", "What is DNA?"})
	assert.Contains(t, prompt, "Concept: Mitosis")
	assert.Contains(t, prompt, "Level: 2")
	assert.Contains(t, prompt, "- What is a cell?")
	assert.Contains(t, prompt, "- What is DNA?")
}

func TestQuestionPromptWithoutPriors(t *testing.T) {
	prompt := questionPrompt("Mitosis", "context", 0, nil)
	assert.Contains(t, prompt, "None")
}
