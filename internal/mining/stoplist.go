package mining

import "strings"

// stoplist holds generic capitalized words that never become terms. Keys are lowercase.
var stoplist = map[string]struct{}{
	"the": {}, "this": {}, "that": {}, "these": {}, "those": {}, "there": {},
	"their": {}, "they": {}, "then": {}, "than": {}, "thus": {}, "therefore": {},
	"what": {}, "which": {}, "when": {}, "where": {}, "while": {}, "who": {}, "why": {}, "how": {},
	"with": {}, "without": {}, "from": {}, "into": {}, "onto": {}, "for": {}, "and": {}, "but": {},
	"also": {}, "however": {}, "although": {}, "because": {}, "after": {}, "before": {}, "during": {},
	"each": {}, "every": {}, "some": {}, "many": {}, "most": {}, "more": {}, "other": {}, "such": {},
	"its": {}, "our": {}, "your": {}, "you": {}, "his": {}, "her": {}, "she": {}, "him": {}, "are": {},
	"was": {}, "were": {}, "has": {}, "have": {}, "had": {}, "not": {}, "all": {}, "any": {}, "one": {},
	"here": {}, "now": {}, "only": {}, "both": {}, "either": {}, "neither": {}, "about": {}, "over": {},
	"guide": {}, "chapter": {}, "section": {}, "page": {}, "figure": {}, "table": {}, "lesson": {},
	"unit": {}, "introduction": {}, "summary": {}, "conclusion": {}, "overview": {}, "note": {},
	"notes": {}, "example": {}, "examples": {}, "question": {}, "questions": {}, "answer": {},
	"answers": {}, "part": {}, "step": {}, "contents": {},
}

// isStopword reports whether word is a generic word that must not become a term.
func isStopword(word string) bool {
	_, ok := stoplist[strings.ToLower(word)]
	return ok
}
