// Package shuffle isolates the randomness used to order answer choices.
package shuffle

import (
	"math/rand/v2"

	"github.com/hyperjump/kuizu/internal/models"
)

// Source permutes n elements through swap. Implementations need not be safe
// for concurrent use; callers create one Source per pipeline run.
type Source interface {
	Shuffle(n int, swap func(i, j int))
}

// Factory creates a fresh Source for each pipeline run.
type Factory func() Source

// New returns a Source seeded from the runtime's random state.
func New() Source {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeeded returns a deterministic Source. Two sources with the same seed
// produce the same permutations.
func NewSeeded(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Seeded returns a Factory whose sources all start from seed.
func Seeded(seed uint64) Factory {
	return func() Source { return NewSeeded(seed) }
}

// Identity is a Source that leaves order unchanged.
type Identity struct{}

// Shuffle does nothing.
func (Identity) Shuffle(int, func(i, j int)) {}

// Choices shuffles choices with src and returns the MCQ whose CorrectIndex
// points at answer after the shuffle. It returns false when answer is not
// among choices.
func Choices(src Source, question string, choices [models.ChoiceCount]string, answer string) (models.MCQ, bool) {
	shuffled := choices
	src.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	return models.NewMCQ(question, shuffled, answer)
}
