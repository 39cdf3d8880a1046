package storage

import (
	"testing"
	"time"

	"github.com/poiesic/arbor/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDRoundTrip(t *testing.T) {
	for _, id := range []core.ID{0, 1, 42, 1<<63 + 7} {
		got, err := UnmarshalID(MarshalID(id))
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}

	_, err := UnmarshalID([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestIDKeysSortNumerically(t *testing.T) {
	a := MarshalID(core.ID(255))
	b := MarshalID(core.ID(256))
	assert.Equal(t, -1, compareBytes(a, b))
}

func compareBytes(a, b []byte) int {
	for i := range a {
		if a[i] < b[i] {
			return -1
		}
		if a[i] > b[i] {
			return 1
		}
	}
	return 0
}

func TestContentRoundTrip(t *testing.T) {
	content := &core.ConsolidatedContent{
		Document: core.ModalityContent{
			Findings: []string{"The Krebs cycle produces ATP."},
			Errors:   []string{"notes/broken.pdf: unreadable"},
		},
		Image: core.ModalityContent{
			Findings: []string{"Diagram of the cycle."},
			URLs:     []string{"file:///tmp/diagram.png"},
		},
		SourceAssets: []string{"notes/biology.pdf", "photos/diagram.png"},
		CreatedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := MarshalContent(content)
	require.NoError(t, err)

	got, err := UnmarshalContent(data)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestForestRoundTrip(t *testing.T) {
	forest := &core.Forest{
		Trees: []core.Tree{
			{
				RootConcept: "Thermodynamics",
				Root: &core.ConceptNode{
					Concept: "Thermodynamics",
					Level:   0,
					Children: []*core.ConceptNode{
						{
							Concept: "Entropy",
							Level:   1,
							Question: &core.Question{
								Prompt:  "What does entropy measure?",
								Options: map[string]string{"A": "Disorder", "B": "Heat", "C": "Mass", "D": "Volume"},
								Correct: "A",
							},
						},
					},
				},
			},
		},
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := MarshalForest(forest)
	require.NoError(t, err)

	got, err := UnmarshalForest(data)
	require.NoError(t, err)
	assert.Equal(t, forest, got)
}

func TestUnmarshalGarbage(t *testing.T) {
	_, err := UnmarshalContent([]byte("not json"))
	assert.ErrorIs(t, err, ErrSerializationFailed)

	_, err = UnmarshalForest([]byte("{broken"))
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
