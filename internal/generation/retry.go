package generation

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/hyperjump/kuizu/internal/config"
)

// retrying retries transient failures with exponential backoff and jitter.
type retrying struct {
	inner  Generator
	config config.RetryConfig
}

// WithRetry wraps g with retry logic. MaxAttempts below 2 returns g unchanged.
func WithRetry(g Generator, cfg config.RetryConfig) Generator {
	if cfg.MaxAttempts < 2 {
		return g
	}
	return &retrying{inner: g, config: cfg}
}

func (r *retrying) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	var lastErr error
	for attempt := range r.config.MaxAttempts {
		text, err := r.inner.Generate(ctx, prompt, opts)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !shouldRetry(err) || attempt == r.config.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(r.backoff(attempt)):
		}
	}
	return "", lastErr
}

func (r *retrying) Name() string { return r.inner.Name() }

// shouldRetry rejects context errors, the disabled provider, empty output and
// provider errors that are not transient. Anything else is treated as transient.
func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrDisabled) || errors.Is(err, ErrEmptyOutput) {
		return false
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable()
	}
	return true
}

func (r *retrying) backoff(attempt int) time.Duration {
	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if r.config.MaxWait > 0 && wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}
	// ±20% jitter
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
