package summarizer

import (
	"regexp"
	"strings"
)

// RE2's \s is ASCII only; this also covers no-break, thin and ideographic
// spaces, vertical tab and the C0/C1 separators.
const whitespaceClass = `\s\p{Z}\x0b\x1c-\x1f\x85`

var (
	reWhitespace = regexp.MustCompile(`[` + whitespaceClass + `]+`)
	// Letters and digits in any script, underscore, whitespace and . , ! ? -
	reDisallowed = regexp.MustCompile(`[^\p{L}\p{N}_` + whitespaceClass + `.,!?-]`)
)

// CleanText flattens a transcript into one line of plain words and basic
// punctuation before it is sent to a backend.
func CleanText(text string) string {
	text = strings.NewReplacer("\r", " ", "\n", " ").Replace(text)
	text = reWhitespace.ReplaceAllString(text, " ")
	text = reDisallowed.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
