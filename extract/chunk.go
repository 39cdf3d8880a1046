package extract

import "strings"

// defaultChunkWords is the target chunk size for document analysis.
// Large enough to carry context, small enough to stay inside model limits.
const defaultChunkWords = 750

// ChunkText splits text into chunks of at most wordsPerChunk whitespace-
// separated words, preserving word order. Empty or whitespace-only input
// yields no chunks.
func ChunkText(text string, wordsPerChunk int) []string {
	if wordsPerChunk < 1 {
		wordsPerChunk = defaultChunkWords
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	chunks := make([]string, 0, (len(words)+wordsPerChunk-1)/wordsPerChunk)
	for start := 0; start < len(words); start += wordsPerChunk {
		end := start + wordsPerChunk
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}
