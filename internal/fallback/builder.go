// Package fallback synthesizes MCQs from mined facts and terms when generation
// yields too little. It never fails; it may return fewer questions than asked for.
package fallback

import (
	"strconv"
	"strings"

	"github.com/hyperjump/kuizu/internal/mining"
	"github.com/hyperjump/kuizu/internal/models"
	"github.com/hyperjump/kuizu/internal/shuffle"
)

const (
	// PresenceQuestion is asked by the term-presence strategy.
	PresenceQuestion = "Which is mentioned in the text?"
	// questionWords caps the description words used in a fact-grounded question.
	questionWords = 5
	distractors   = models.ChoiceCount - 1
)

// placeholders pad fact-grounded questions whose term pool ran dry.
var placeholders = []string{"Unknown", "None", "Other"}

// Build returns up to target MCQs for res. Fact-grounded questions come
// first, then term-presence questions. No term is the correct answer twice.
func Build(src shuffle.Source, res mining.Result, target int) []models.MCQ {
	if target <= 0 {
		return nil
	}
	st := &state{
		src:    src,
		pool:   res.Terms,
		target: target,
		used:   make(map[string]struct{}),
	}
	st.factGrounded(res.Facts)
	st.termPresence()
	return st.out
}

// state is owned by a single Build call. Both strategies share its used set.
type state struct {
	src    shuffle.Source
	pool   []string
	target int
	used   map[string]struct{}
	out    []models.MCQ
}

func (s *state) full() bool { return len(s.out) >= s.target }

func (s *state) isUsed(term string) bool {
	_, ok := s.used[term]
	return ok
}

func (s *state) markUsed(terms ...string) {
	for _, t := range terms {
		s.used[t] = struct{}{}
	}
}

// add shuffles choices, re-validates and appends. It reports whether the MCQ was kept.
func (s *state) add(question string, choices [models.ChoiceCount]string, answer string) bool {
	m, ok := shuffle.Choices(s.src, question, choices, answer)
	if !ok || m.Validate() != nil {
		return false
	}
	s.out = append(s.out, m)
	return true
}

// factGrounded asks "Which is <description>?" for every fact whose term is unused.
func (s *state) factGrounded(facts []models.Fact) {
	for _, f := range facts {
		if s.full() {
			return
		}
		if s.isUsed(f.Term) {
			continue
		}
		question := "Which is " + firstWords(f.Description, questionWords) + "?"
		d := s.distractorsFor(f.Term)
		if s.add(question, [models.ChoiceCount]string{f.Term, d[0], d[1]}, f.Term) {
			s.markUsed(f.Term)
		}
	}
}

// termPresence groups the next three unused pool terms; the first is correct.
func (s *state) termPresence() {
	for !s.full() {
		group := s.nextUnused(models.ChoiceCount)
		if len(group) < models.ChoiceCount {
			return
		}
		// All three are consumed even if the group is rejected, so the loop always advances.
		s.markUsed(group...)
		s.add(PresenceQuestion, [models.ChoiceCount]string{group[0], group[1], group[2]}, group[0])
	}
}

func (s *state) nextUnused(n int) []string {
	var terms []string
	for _, t := range s.pool {
		if len(terms) == n {
			break
		}
		if !s.isUsed(t) {
			terms = append(terms, t)
		}
	}
	return terms
}

// distractorsFor takes the first unused pool terms other than term, then pads.
func (s *state) distractorsFor(term string) [distractors]string {
	var (
		out   [distractors]string
		n     int
		taken = map[string]struct{}{strings.ToLower(term): {}}
	)
	take := func(c string) {
		key := strings.ToLower(c)
		if _, dup := taken[key]; dup || n == distractors {
			return
		}
		taken[key] = struct{}{}
		out[n] = c
		n++
	}
	for _, t := range s.pool {
		if s.isUsed(t) {
			continue
		}
		take(t)
	}
	if num, err := strconv.Atoi(term); err == nil {
		for _, c := range adjacent(num) {
			take(c)
		}
	}
	for _, p := range placeholders {
		take(p)
	}
	return out
}

// adjacent lists integers around num, nearest first, skipping negatives:
// 42 gives 43, 41, 44, 40.
func adjacent(num int) []string {
	var out []string
	for d := 1; d <= distractors; d++ {
		out = append(out, strconv.Itoa(num+d))
		if num-d >= 0 {
			out = append(out, strconv.Itoa(num-d))
		}
	}
	return out
}

func firstWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}
