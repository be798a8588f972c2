package chunker

import "strings"

// DefaultMaxWords is the word budget used when none is configured.
const DefaultMaxWords = 250

// Chunk is a bounded-size contiguous slice of document text, the unit of
// both summarization and retrieval scoring.
type Chunk struct {
	Text  string // Chunk text content
	Index int    // Sequence number within document
	Words int    // Word count of Text
}

// Split breaks cleaned text into chunks of at most maxWords words,
// accumulating whole paragraphs greedily. A paragraph whose own word count
// exceeds the budget is emitted as a single oversized chunk; paragraphs
// are never split mid-sentence.
func Split(text string, maxWords int) []Chunk {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}

	var chunks []Chunk
	var current []string
	currentWords := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		chunks = append(chunks, Chunk{
			Text:  strings.Join(current, " "),
			Index: len(chunks),
			Words: currentWords,
		})
		current = current[:0]
		currentWords = 0
	}

	for _, para := range splitParagraphs(text) {
		words := CountWords(para)

		// Close the running chunk if this paragraph would overflow it.
		if currentWords > 0 && currentWords+words > maxWords {
			flush()
		}
		current = append(current, para)
		currentWords += words

		// A paragraph alone over budget becomes its own chunk.
		if currentWords > maxWords {
			flush()
		}
	}
	flush()

	return chunks
}

// splitParagraphs splits on blank-line boundaries, dropping empties.
func splitParagraphs(text string) []string {
	parts := strings.Split(text, "\n\n")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
