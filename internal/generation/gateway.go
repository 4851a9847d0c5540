// Package generation is the gateway to external free-text generators.
//
// A Generator turns a prompt into raw text. Providers wrap the vendor SDKs;
// decorators add retry, logging, caching and concurrency limits. Callers treat
// any error as "nothing generated" and fall back to local synthesis.
package generation

import "context"

// Generator produces free-form text for a prompt.
type Generator interface {
	// Generate blocks until the provider answers, ctx is done, or the call fails.
	Generate(ctx context.Context, prompt string, opts Options) (string, error)

	// Name identifies the provider and model, e.g. "openai/gpt-4o-mini".
	Name() string
}

// Options tune a single generation call. Zero values leave the provider default.
type Options struct {
	MaxTokens   int
	Temperature float64
}
