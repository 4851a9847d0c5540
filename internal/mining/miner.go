// Package mining extracts candidate answer terms and short term descriptions from document text.
package mining

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hyperjump/kuizu/internal/models"
)

const (
	// MaxTerms caps the term pool handed to the fallback builder.
	MaxTerms = 20
	// minUnitWords is the shortest sentence considered for mining.
	minUnitWords = 5
	// maxDescriptionWords caps a fact description.
	maxDescriptionWords = 6
	// minTermLen is the minimum rune length of a capitalized term.
	minTermLen = 3
	// minNumeralLen is the minimum digit count of a numeral term.
	minNumeralLen = 2
)

// Result holds what Mine found in one document.
type Result struct {
	// Facts are in first-seen term order; a later match for the same term
	// replaces the description but keeps the position.
	Facts []models.Fact
	// Terms is the deduplicated term pool in first-seen order, at most MaxTerms long.
	Terms []string
}

// Description returns the fact description for term, if any.
func (r Result) Description(term string) (string, bool) {
	for _, f := range r.Facts {
		if f.Term == term {
			return f.Description, true
		}
	}
	return "", false
}

// Mine scans normalized text and returns its facts and term pool.
func Mine(text string) Result {
	var (
		res       Result
		factIndex = make(map[string]int)
		seen      = make(map[string]struct{})
	)
	for _, unit := range Sentences(text) {
		if term, desc, ok := matchFact(unit); ok {
			if i, exists := factIndex[term]; exists {
				res.Facts[i].Description = desc
			} else {
				factIndex[term] = len(res.Facts)
				res.Facts = append(res.Facts, models.Fact{Term: term, Description: desc})
			}
		}
		for _, tok := range strings.Fields(unit) {
			if len(res.Terms) >= MaxTerms {
				break
			}
			tok = strings.TrimFunc(tok, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })
			if !isTermCandidate(tok) {
				continue
			}
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			res.Terms = append(res.Terms, tok)
		}
	}
	return res
}

// Sentences splits text on periods and keeps the units worth mining: at least
// five words and not an all-uppercase title.
func Sentences(text string) []string {
	var units []string
	for _, raw := range strings.Split(text, ".") {
		unit := strings.TrimSpace(raw)
		if len(strings.Fields(unit)) < minUnitWords || isTitle(unit) {
			continue
		}
		units = append(units, unit)
	}
	return units
}

func isTitle(unit string) bool {
	hasLetter := false
	for _, r := range unit {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

func isTermCandidate(tok string) bool {
	if tok == "" || isStopword(tok) {
		return false
	}
	if isNumeral(tok) {
		return len(tok) >= minNumeralLen
	}
	first, _ := utf8.DecodeRuneInString(tok)
	return unicode.IsUpper(first) && utf8.RuneCountInString(tok) >= minTermLen
}

// isNumeral reports whether s consists only of ASCII digits.
func isNumeral(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
