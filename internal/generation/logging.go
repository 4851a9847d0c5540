package generation

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/kuizu/pkg/utils"
)

// previewRunes caps the response excerpt in debug logs.
const previewRunes = 120

type logged struct {
	inner  Generator
	logger *zap.Logger
}

// WithLogging records provider, latency and sizes of every call.
func WithLogging(g Generator, logger *zap.Logger) Generator {
	if logger == nil {
		return g
	}
	return &logged{inner: g, logger: logger}
}

func (l *logged) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	start := time.Now()
	text, err := l.inner.Generate(ctx, prompt, opts)
	fields := []zap.Field{
		zap.String("provider", l.inner.Name()),
		zap.Duration("latency", time.Since(start)),
		zap.Int("prompt_chars", len(prompt)),
		zap.Int("response_chars", len(text)),
	}
	if err != nil {
		l.logger.Warn("generation failed", append(fields, zap.Error(err))...)
		return text, err
	}
	l.logger.Debug("generation done", append(fields, zap.String("preview", utils.Truncate(text, previewRunes)))...)
	return text, nil
}

func (l *logged) Name() string { return l.inner.Name() }
