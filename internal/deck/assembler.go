package deck

import (
	"strings"

	"github.com/hyperjump/kuizu/internal/models"
	"github.com/hyperjump/kuizu/internal/shuffle"
)

// AssembleOptions controls the final pass over a candidate deck.
type AssembleOptions struct {
	// Shuffle reorders each question's choices when set.
	Shuffle shuffle.Source
}

// Assemble trims every MCQ, drops invalid ones and duplicates (same question and
// answer, ignoring case), optionally shuffles choices and keeps at most target.
func Assemble(mcqs []models.MCQ, target int, opts AssembleOptions) []models.MCQ {
	out := make([]models.MCQ, 0, min(len(mcqs), max(target, 0)))
	seen := make(map[string]struct{}, len(mcqs))
	for _, m := range mcqs {
		if len(out) >= target {
			break
		}
		m = trim(m)
		if m.Validate() != nil {
			continue
		}
		key := dedupeKey(m)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if opts.Shuffle != nil {
			shuffled, ok := shuffle.Choices(opts.Shuffle, m.Question, m.Choices, m.Answer())
			if ok {
				m = shuffled
			}
		}
		out = append(out, m)
	}
	return out
}

func trim(m models.MCQ) models.MCQ {
	m.Question = strings.TrimSpace(m.Question)
	for i := range m.Choices {
		m.Choices[i] = strings.TrimSpace(m.Choices[i])
	}
	return m
}

func dedupeKey(m models.MCQ) string {
	return strings.ToLower(m.Question) + "\x00" + strings.ToLower(m.Answer())
}
