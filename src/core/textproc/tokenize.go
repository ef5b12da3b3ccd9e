package textproc

import "strings"

// sentence terminators for both scripts; '।' is the Bangla danda
func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == '।'
}

// SplitSentences splits normalized text into an ordered sequence of
// sentences. A boundary is a terminator ('.', '!', '?', '।') followed by
// whitespace or end of input; the terminator stays with its sentence.
// Trailing text without a terminator forms a final sentence.
func SplitSentences(text string) []string {
	var sentences []string
	var b strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		b.WriteRune(r)
		if !isSentenceEnd(r) {
			continue
		}
		if i+1 < len(runes) && runes[i+1] != ' ' && runes[i+1] != '\n' && runes[i+1] != '\t' {
			// mid-token terminator, e.g. "3.5" or "U.N."
			continue
		}
		if s := strings.TrimSpace(b.String()); s != "" {
			sentences = append(sentences, s)
		}
		b.Reset()
	}

	if s := strings.TrimSpace(b.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// Words splits text into word tokens on whitespace. Language-agnostic: both
// Bangla and English words are whitespace-delimited after normalization.
func Words(text string) []string {
	return strings.Fields(text)
}

// CountWords returns the word token count of text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
