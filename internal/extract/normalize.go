package extract

import (
	"strings"
	"unicode"
)

// Normalize trims text, drops control characters, collapses every whitespace
// run to a single space and caps the result at maxRunes runes (no cap when
// maxRunes <= 0).
func Normalize(text string, maxRunes int) string {
	text = strings.TrimSpace(text)
	var b strings.Builder
	b.Grow(len(text))
	wasSpace := false
	n := 0
	for _, r := range text {
		if maxRunes > 0 && n >= maxRunes {
			break
		}
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			continue
		}
		if unicode.IsSpace(r) {
			if wasSpace {
				continue
			}
			r = ' '
			wasSpace = true
		} else {
			wasSpace = false
		}
		b.WriteRune(r)
		n++
	}
	return strings.TrimSpace(b.String())
}
