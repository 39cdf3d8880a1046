package ai

import "strings"

// ChunkAnalysis is the structured outcome of analyzing one document chunk.
// When the service response cannot be parsed, Summary carries the raw text
// and the other fields stay empty.
type ChunkAnalysis struct {
	Summary   string   `json:"summary"`
	Topics    []string `json:"topics"`
	KeyPoints []string `json:"key_points"`
}

// Text renders the analysis as a finding string for the evidence corpus.
func (a ChunkAnalysis) Text() string {
	var parts []string
	if a.Summary != "" {
		parts = append(parts, a.Summary)
	}
	if len(a.Topics) > 0 {
		parts = append(parts, "Topics: "+strings.Join(a.Topics, ", "))
	}
	if len(a.KeyPoints) > 0 {
		parts = append(parts, strings.Join(a.KeyPoints, "\n"))
	}
	return strings.Join(parts, "\n")
}

// SketchNode is one node of a proposed tree, exactly as the inference
// service returned it. Levels are untrusted and may skip or repeat.
type SketchNode struct {
	Concept  string        `json:"concept"`
	Level    int           `json:"level"`
	Children []*SketchNode `json:"children"`
}

// TreeSketch is one proposed root tree.
type TreeSketch struct {
	RootConcept string      `json:"root_concept"`
	Root        *SketchNode `json:"tree"`
}

// QuestionRequest carries everything the service needs to produce one
// assessment question for a concept node.
type QuestionRequest struct {
	Concept string
	Corpus  string
	Level   int
	// PriorPrompts lists every question prompt already accepted in the
	// forest; the service is instructed not to duplicate any of them.
	PriorPrompts []string
}

// ProposedQuestion is a question candidate as returned by the service.
// Insufficient marks the explicit insufficient-evidence arm: the service
// could not ground a question in the corpus, which is not an error.
type ProposedQuestion struct {
	Prompt       string            `json:"question"`
	Options      map[string]string `json:"options"`
	Correct      string            `json:"correct_answer"`
	Rationale    string            `json:"explanation"`
	Insufficient bool              `json:"-"`
}
