package generation

import (
	"context"

	"golang.org/x/sync/semaphore"
)

type limited struct {
	inner Generator
	sem   *semaphore.Weighted
}

// WithLimit allows at most n concurrent calls to g. Waiting callers give up
// when their context ends. n below 1 returns g unchanged.
func WithLimit(g Generator, n int) Generator {
	if n < 1 {
		return g
	}
	return &limited{inner: g, sem: semaphore.NewWeighted(int64(n))}
}

func (l *limited) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer l.sem.Release(1)
	return l.inner.Generate(ctx, prompt, opts)
}

func (l *limited) Name() string { return l.inner.Name() }
