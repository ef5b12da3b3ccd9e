package textproc

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes raw extracted text so segmentation and language
// detection see a stable script: NFC composition, zero-width and BOM
// removal, Bangla digits mapped to ASCII, whitespace collapsed to single
// spaces. Normalize(Normalize(x)) == Normalize(x) for all inputs.
func Normalize(text string) string {
	text = norm.NFC.String(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= '\u200b' && r <= '\u200d', r == '\ufeff':
			// zero-width space/non-joiner/joiner, BOM
		case r >= '০' && r <= '৯':
			b.WriteRune('0' + (r - '০'))
		default:
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
