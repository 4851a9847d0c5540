package generation

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hyperjump/kuizu/internal/config"
	"go.uber.org/zap"
)

// New creates the configured Generator wrapped with its decorators:
// caller → cache → limit → retry → logging → provider.
func New(ctx context.Context, cfg *config.GenerationConfig, logger *zap.Logger) (Generator, error) {
	var (
		base Generator
		err  error
	)
	switch cfg.Provider {
	case "ollama":
		base, err = NewOllamaGenerator(cfg.BaseURL, cfg.Model, &http.Client{Timeout: cfg.Timeout})
	case "openai":
		base, err = NewOpenAIGenerator(cfg.APIKey, cfg.BaseURL, cfg.Model)
	case "anthropic":
		base, err = NewAnthropicGenerator(cfg.APIKey, cfg.BaseURL, cfg.Model)
	case "gemini":
		base, err = NewGeminiGenerator(ctx, cfg.APIKey, cfg.BaseURL, cfg.Model)
	case "mock":
		return NewMockGenerator(), nil
	case "none", "":
		return Disabled{}, nil
	default:
		return nil, fmt.Errorf("unknown generation provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	g := WithLogging(base, logger)
	g = WithRetry(g, cfg.Retry)
	g = WithLimit(g, cfg.MaxConcurrent)
	g = WithCache(g, cfg.CacheSize)
	return g, nil
}

// OptionsFrom returns the per-call options configured in cfg.
func OptionsFrom(cfg *config.GenerationConfig) Options {
	return Options{MaxTokens: cfg.MaxTokens, Temperature: cfg.Temperature}
}
