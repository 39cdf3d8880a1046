package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkTextEmpty(t *testing.T) {
	assert.Nil(t, ChunkText("", 10))
	assert.Nil(t, ChunkText("   \n\t  ", 10))
}

func TestChunkTextSingleChunk(t *testing.T) {
	chunks := ChunkText("one two three", 10)
	assert.Equal(t, []string{"one two three"}, chunks)
}

func TestChunkTextSplitsAtBoundary(t *testing.T) {
	words := make([]string, 25)
	for i := range words {
		words[i] = "w"
	}
	chunks := ChunkText(strings.Join(words, " "), 10)
	assert.Len(t, chunks, 3)
	assert.Len(t, strings.Fields(chunks[0]), 10)
	assert.Len(t, strings.Fields(chunks[1]), 10)
	assert.Len(t, strings.Fields(chunks[2]), 5)
}

func TestChunkTextPreservesOrder(t *testing.T) {
	chunks := ChunkText("a b c d e", 2)
	assert.Equal(t, []string{"a b", "c d", "e"}, chunks)
}

func TestChunkTextDefaultsBadSize(t *testing.T) {
	chunks := ChunkText("a b c", 0)
	assert.Equal(t, []string{"a b c"}, chunks)
}
