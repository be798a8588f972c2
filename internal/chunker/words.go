package chunker

import "strings"

// CountWords counts whitespace-separated words. Chunk budgets are defined
// in words, not model tokens.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
