package mining

import (
	"regexp"
	"strings"
	"unicode"
)

// matcher inspects one sentence and optionally returns a term and its raw description.
type matcher func(unit string) (term, description string, ok bool)

// termPattern is a leading phrase of one or two title-case words, or a
// numeral of at least two digits.
const termPattern = `([A-Z][\p{L}\d'-]*(?:\s+[A-Z][\p{L}\d'-]*)?|\d{2,})`

var (
	copulaRe     = regexp.MustCompile(`^` + termPattern + `\s+(?:is|are|was|were)\s+(.+)$`)
	possessionRe = regexp.MustCompile(`^` + termPattern + `\s+(?:has|have|provides?|contains?|includes?)\s+(.+)$`)
)

// matchers run in order; the first hit wins.
var matchers = []matcher{
	relation(copulaRe),
	relation(possessionRe),
}

func relation(re *regexp.Regexp) matcher {
	return func(unit string) (string, string, bool) {
		m := re.FindStringSubmatch(unit)
		if m == nil {
			return "", "", false
		}
		term, ok := cleanTerm(m[1])
		if !ok {
			return "", "", false
		}
		desc := firstWords(m[2], maxDescriptionWords)
		desc = strings.TrimRightFunc(desc, isTrailingJunk)
		if desc == "" {
			return "", "", false
		}
		return term, desc, true
	}
}

// matchFact runs the matcher chain against unit.
func matchFact(unit string) (term, description string, ok bool) {
	for _, m := range matchers {
		if term, description, ok = m(unit); ok {
			return term, description, true
		}
	}
	return "", "", false
}

// cleanTerm drops a leading stopword from a two-word term ("The Sun" -> "Sun")
// and rejects terms that are only stopwords.
func cleanTerm(raw string) (string, bool) {
	words := strings.Fields(raw)
	if len(words) == 2 && isStopword(words[0]) {
		words = words[1:]
	}
	for _, w := range words {
		if isStopword(w) {
			return "", false
		}
	}
	if len(words) == 0 {
		return "", false
	}
	return strings.Join(words, " "), true
}

// firstWords returns at most n whitespace-separated words of s joined by single spaces.
func firstWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

func isTrailingJunk(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}
