package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateParseRequest(t *testing.T) {
	assert.ErrorIs(t, ValidateParseRequest(nil), ErrInvalidRequest)

	err := ValidateParseRequest(&ParseRequest{Documents: []string{"a.pdf"}})
	assert.ErrorIs(t, err, ErrEmptyUserID)

	err = ValidateParseRequest(&ParseRequest{UserID: "u"})
	assert.ErrorIs(t, err, ErrNoAssets)

	assert.NoError(t, ValidateParseRequest(&ParseRequest{UserID: "u", Audio: []string{"a.mp3"}}))
}

func validTree(concept string) Tree {
	return Tree{
		RootConcept: concept,
		Root: &ConceptNode{
			Concept: concept,
			Level:   0,
			Children: []*ConceptNode{
				{Concept: concept + " child", Level: 1},
			},
		},
	}
}

func TestValidateForest(t *testing.T) {
	assert.ErrorIs(t, ValidateForest(nil), ErrInvalidForest)
	assert.ErrorIs(t, ValidateForest(&Forest{}), ErrInvalidForest)

	f := &Forest{Trees: []Tree{validTree("A")}}
	assert.NoError(t, ValidateForest(f))
}

func TestValidateForestTreeCap(t *testing.T) {
	var trees []Tree
	for i := 0; i <= TreeCap; i++ {
		trees = append(trees, validTree(string(rune('A'+i))))
	}
	assert.ErrorIs(t, ValidateForest(&Forest{Trees: trees}), ErrInvalidForest)

	assert.NoError(t, ValidateForest(&Forest{Trees: trees[:TreeCap]}))
}

func TestValidateForestLevels(t *testing.T) {
	f := &Forest{Trees: []Tree{
		{
			RootConcept: "A",
			Root: &ConceptNode{
				Concept:  "A",
				Level:    0,
				Children: []*ConceptNode{{Concept: "skips", Level: 2}},
			},
		},
	}}
	assert.ErrorIs(t, ValidateForest(f), ErrInvalidForest)
}

func TestValidateForestMaxDepth(t *testing.T) {
	// Build a chain that reaches MaxLevels.
	node := &ConceptNode{Concept: "leaf", Level: MaxLevels}
	for level := MaxLevels - 1; level >= 0; level-- {
		node = &ConceptNode{Concept: "n", Level: level, Children: []*ConceptNode{node}}
	}
	f := &Forest{Trees: []Tree{{RootConcept: "deep", Root: node}}}
	assert.ErrorIs(t, ValidateForest(f), ErrInvalidForest)
}

func TestValidateForestDuplicateQuestions(t *testing.T) {
	f := &Forest{Trees: []Tree{
		{
			RootConcept: "A",
			Root:        &ConceptNode{Concept: "A", Level: 0, Question: &Question{Prompt: "What is X?"}},
		},
		{
			RootConcept: "B",
			Root:        &ConceptNode{Concept: "B", Level: 0, Question: &Question{Prompt: "what is x?"}},
		},
	}}
	assert.ErrorIs(t, ValidateForest(f), ErrInvalidForest, "prompt uniqueness is case-insensitive and forest-wide")
}

func TestValidateForestEmptyPrompt(t *testing.T) {
	f := &Forest{Trees: []Tree{
		{
			RootConcept: "A",
			Root:        &ConceptNode{Concept: "A", Level: 0, Question: &Question{Prompt: "   "}},
		},
	}}
	assert.ErrorIs(t, ValidateForest(f), ErrInvalidForest)
}
