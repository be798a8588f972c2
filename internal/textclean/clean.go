package textclean

import (
	"regexp"
	"strings"
)

// junkPattern matches URLs and known spam markers that show up in
// web-sourced proposal text.
var junkPattern = regexp.MustCompile(`https?://\S+|www\.\S+|gallery\.com|iReport\.com`)

// Clean normalizes raw extracted text: lines containing junk markers are
// dropped, remaining lines are whitespace-trimmed, and duplicate lines are
// removed (case-insensitive, first occurrence wins, order preserved).
// Blank lines act as paragraph separators; runs collapse to a single
// separator and are exempt from deduplication.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	lines := strings.Split(text, "\n")
	seen := make(map[string]bool, len(lines))
	out := make([]string, 0, len(lines))
	blankPending := false

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			// Only emit a separator between non-blank content.
			blankPending = len(out) > 0
			continue
		}
		if junkPattern.MatchString(line) {
			continue
		}
		key := strings.ToLower(line)
		if seen[key] {
			continue
		}
		seen[key] = true

		if blankPending {
			out = append(out, "")
			blankPending = false
		}
		out = append(out, line)
	}

	return strings.Join(out, "\n")
}
