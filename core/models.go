package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from content bytes using BLAKE2b hashing.
// Identical content produces identical IDs.
func IDFromContent(data []byte) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write(data)
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Modality identifies a source-asset category.
type Modality string

const (
	// ModalityDocument covers text-bearing documents (PDFs, notes).
	ModalityDocument Modality = "document"
	// ModalityImage covers standalone images and images discovered inside documents.
	ModalityImage Modality = "image"
	// ModalityAudio covers recorded lectures and voice notes.
	ModalityAudio Modality = "audio"
)

const (
	// MaxLevels is the maximum tree depth; node levels are 0-based and
	// always strictly below this bound.
	MaxLevels = 5

	// TreeCap is the hard upper bound on the number of root trees in a
	// forest, regardless of how many documents contributed.
	TreeCap = 8
)

// ParseRequest describes one pipeline invocation: a user and the asset
// references to process, grouped by modality. Immutable once created.
type ParseRequest struct {
	UserID    string
	Documents []string
	Images    []string
	Audio     []string
}

// AssetCount returns the total number of assets across all modalities.
func (r *ParseRequest) AssetCount() int {
	return len(r.Documents) + len(r.Images) + len(r.Audio)
}

// Assets returns every asset reference in the request, documents first.
func (r *ParseRequest) Assets() []string {
	out := make([]string, 0, r.AssetCount())
	out = append(out, r.Documents...)
	out = append(out, r.Images...)
	out = append(out, r.Audio...)
	return out
}

// AssetFinding is the per-asset outcome of an extraction call.
// Err != "" marks the error arm; the asset failed but the run continued.
type AssetFinding struct {
	Asset string `json:"asset"`
	Text  string `json:"text,omitempty"`
	Err   string `json:"err,omitempty"`
}

// ExtractionResult is the aggregate outcome of one extractor invocation.
// Findings accumulate unordered; completion order within a call carries no
// meaning. DerivedAssets is populated only by document extraction and lists
// access URLs of images discovered inside the processed documents.
type ExtractionResult struct {
	Modality      Modality
	Findings      []AssetFinding
	URLs          []string
	DerivedAssets []string
}

// ModalityContent is the consolidated per-modality slice of a pipeline run.
type ModalityContent struct {
	Findings []string `json:"findings,omitempty"`
	URLs     []string `json:"urls,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

// Empty reports whether the modality produced nothing at all.
func (m ModalityContent) Empty() bool {
	return len(m.Findings) == 0 && len(m.URLs) == 0 && len(m.Errors) == 0
}

// ConsolidatedContent is the unit handed to persistence and to the tree
// builder. Immutable once produced.
type ConsolidatedContent struct {
	Document     ModalityContent `json:"document"`
	Image        ModalityContent `json:"image"`
	Audio        ModalityContent `json:"audio"`
	SourceAssets []string        `json:"source_assets,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Corpus concatenates every textual finding across modalities into one
// evidence string. Returns "" when no modality produced findings.
func (c *ConsolidatedContent) Corpus() string {
	var parts []string
	for _, m := range []ModalityContent{c.Document, c.Image, c.Audio} {
		for _, f := range m.Findings {
			if strings.TrimSpace(f) != "" {
				parts = append(parts, f)
			}
		}
	}
	return strings.Join(parts, "\n\n")
}

// DistinctDocuments counts distinct document source assets. Assets of other
// modalities do not contribute.
func (c *ConsolidatedContent) DistinctDocuments() int {
	seen := make(map[string]struct{})
	for _, a := range c.SourceAssets {
		if IsDocumentAsset(a) {
			seen[a] = struct{}{}
		}
	}
	return len(seen)
}

// IsDocumentAsset reports whether an asset reference names a document.
// URL query and fragment parts are ignored, so signed access URLs like
// ".../notes.pdf?token=..." still count.
func IsDocumentAsset(ref string) bool {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	lower := strings.ToLower(ref)
	return strings.HasSuffix(lower, ".pdf") || strings.HasSuffix(lower, ".txt") ||
		strings.HasSuffix(lower, ".md")
}

// Question is a four-option assessment question attached to a concept node.
// Options are labeled "A" through "D"; Correct names the right label.
type Question struct {
	Prompt    string            `json:"prompt"`
	Options   map[string]string `json:"options"`
	Correct   string            `json:"correct"`
	Rationale string            `json:"rationale,omitempty"`
}

// OptionLabels are the required question option labels, in display order.
var OptionLabels = []string{"A", "B", "C", "D"}

// ConceptNode is one node of a knowledge tree. Level is 0-based depth;
// every child's level equals its parent's level plus one.
type ConceptNode struct {
	Concept  string         `json:"concept"`
	Level    int            `json:"level"`
	Children []*ConceptNode `json:"children,omitempty"`
	Question *Question      `json:"question,omitempty"`
}

// Walk visits the node and all descendants depth-first, children in order.
func (n *ConceptNode) Walk(visit func(*ConceptNode)) {
	if n == nil {
		return
	}
	visit(n)
	for _, child := range n.Children {
		child.Walk(visit)
	}
}

// NodeCount returns the number of nodes in the subtree rooted at n.
func (n *ConceptNode) NodeCount() int {
	count := 0
	n.Walk(func(*ConceptNode) { count++ })
	return count
}

// Tree pairs a root concept label with its concept tree.
type Tree struct {
	RootConcept string       `json:"root_concept"`
	Root        *ConceptNode `json:"tree"`
}

// Forest is the full set of root-level concept trees produced for one
// corpus. Immutable once built; regeneration produces a new Forest.
type Forest struct {
	Trees     []Tree    `json:"trees"`
	CreatedAt time.Time `json:"created_at"`
}

// Walk visits every node of every tree depth-first.
func (f *Forest) Walk(visit func(*ConceptNode)) {
	for _, t := range f.Trees {
		t.Root.Walk(visit)
	}
}

// NodeCount returns the total number of concept nodes in the forest.
func (f *Forest) NodeCount() int {
	count := 0
	f.Walk(func(*ConceptNode) { count++ })
	return count
}

// QuestionCount returns the number of nodes carrying an accepted question.
func (f *Forest) QuestionCount() int {
	count := 0
	f.Walk(func(n *ConceptNode) {
		if n.Question != nil {
			count++
		}
	})
	return count
}
