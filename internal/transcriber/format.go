package transcriber

import (
	"regexp"
	"strings"
)

// sentenceEnd matches terminal punctuation and the whitespace after it,
// including Unicode spaces that RE2's \s does not match.
var sentenceEnd = regexp.MustCompile(`[.!?][\s\p{Z}\x0b\x1c-\x1f\x85]+`)

// SplitSentences splits text after '.', '!' or '?' followed by whitespace.
// The punctuation stays with its sentence; the whitespace is dropped.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)

	var sentences []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		sentences = append(sentences, text[start:loc[0]+1])
		start = loc[1]
	}
	return append(sentences, text[start:])
}

// FormatTranscript groups consecutive sentences into paragraphs of at most
// perParagraph sentences separated by blank lines.
func FormatTranscript(text string, perParagraph int) string {
	if perParagraph <= 0 {
		perParagraph = 3
	}

	sentences := SplitSentences(text)
	paragraphs := make([]string, 0, (len(sentences)+perParagraph-1)/perParagraph)
	for i := 0; i < len(sentences); i += perParagraph {
		end := min(i+perParagraph, len(sentences))
		paragraphs = append(paragraphs, strings.Join(sentences[i:end], " "))
	}
	return strings.Join(paragraphs, "\n\n")
}
