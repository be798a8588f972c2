// Package answer locates the document passage most relevant to a free-text
// question using exact lexical overlap over chunks. Synonyms and paraphrases
// do not match.
package answer

import (
	"regexp"
	"strings"

	"github.com/dgallion1/presales/internal/chunker"
)

// NotFound is returned when no chunk shares a single token with the question.
const NotFound = "Sorry, I couldn't find the answer in the document."

var wordPattern = regexp.MustCompile(`\w+`)

// Tokens extracts the set of distinct lowercase word tokens from s.
func Tokens(s string) map[string]struct{} {
	words := wordPattern.FindAllString(strings.ToLower(s), -1)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Find returns the text of the chunk sharing the most distinct word tokens
// with the question, along with its position in chunks. Ties keep the
// earliest chunk seen. When no chunk overlaps at all, it returns NotFound
// and -1.
func Find(question string, chunks []chunker.Chunk) (string, int) {
	qtokens := Tokens(question)

	best := -1
	bestScore := 0
	for i, c := range chunks {
		score := 0
		for tok := range Tokens(c.Text) {
			if _, ok := qtokens[tok]; ok {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = i
		}
	}

	if best < 0 {
		return NotFound, -1
	}
	return chunks[best].Text, best
}
