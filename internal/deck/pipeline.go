// Package deck turns document text into a deck of multiple-choice questions.
//
// A build first asks the configured generator for questions. When generation
// fails or yields fewer than half of the requested questions, the deck is
// synthesized from facts and terms mined out of the text instead. The two
// sources are never mixed in one deck.
package deck

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/kuizu/internal/config"
	"github.com/hyperjump/kuizu/internal/extract"
	"github.com/hyperjump/kuizu/internal/fallback"
	"github.com/hyperjump/kuizu/internal/generation"
	"github.com/hyperjump/kuizu/internal/mining"
	"github.com/hyperjump/kuizu/internal/models"
	"github.com/hyperjump/kuizu/internal/parser"
	"github.com/hyperjump/kuizu/internal/prompt"
	"github.com/hyperjump/kuizu/internal/shuffle"
)

const (
	// minTerms is the smallest term pool a deck can be built from.
	minTerms = 3
	// DefaultTimeout bounds one generator call when no timeout is configured.
	DefaultTimeout = 60 * time.Second
)

// Pipeline builds decks. It holds only configuration, so one Pipeline can
// serve concurrent builds.
type Pipeline struct {
	gen     generation.Generator
	cfg     *config.DeckConfig
	genOpts generation.Options
	timeout time.Duration
	shuffle shuffle.Factory
	logger  *zap.Logger
	now     func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the pipeline logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithShuffle overrides the source of choice-order randomness.
func WithShuffle(f shuffle.Factory) Option {
	return func(p *Pipeline) { p.shuffle = f }
}

// WithTimeout bounds each generator call.
func WithTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithGenerationOptions sets the sampling options passed to the generator.
func WithGenerationOptions(o generation.Options) Option {
	return func(p *Pipeline) { p.genOpts = o }
}

// NewPipeline returns a Pipeline that asks gen for questions. A nonzero
// cfg.Seed makes choice order reproducible.
func NewPipeline(gen generation.Generator, cfg *config.DeckConfig, opts ...Option) *Pipeline {
	p := &Pipeline{
		gen:     gen,
		cfg:     cfg,
		timeout: DefaultTimeout,
		shuffle: shuffle.New,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	if cfg.Seed != 0 {
		p.shuffle = shuffle.Seeded(cfg.Seed)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Generator returns the generator the pipeline asks for questions.
func (p *Pipeline) Generator() generation.Generator { return p.gen }

// BuildDeck builds a deck of up to target questions from text. It returns
// ErrInvalidCount, ErrInputTooShort or ErrInsufficientTerms for unusable
// requests; generator failures are logged and answered from the fallback.
func (p *Pipeline) BuildDeck(ctx context.Context, text string, target int) (*models.Deck, error) {
	if target < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, target)
	}
	start := time.Now()

	text = extract.Normalize(text, p.cfg.MaxTextChars)
	if n := utf8.RuneCountInString(text); n < p.cfg.MinTextChars {
		return nil, fmt.Errorf("%w: %d characters, need %d", ErrInputTooShort, n, p.cfg.MinTextChars)
	}

	mined := mining.Mine(text)
	p.logger.Debug("text mined",
		zap.Int("chars", utf8.RuneCountInString(text)),
		zap.Int("facts", len(mined.Facts)),
		zap.Int("terms", len(mined.Terms)),
	)
	if len(mined.Terms) < minTerms {
		return nil, fmt.Errorf("%w: found %d, need %d", ErrInsufficientTerms, len(mined.Terms), minTerms)
	}

	src := p.shuffle()
	raw := p.generate(ctx, prompt.Build(text, target))
	parsed := parser.Parse(raw, target)

	deck := &models.Deck{
		ID:        uuid.NewString(),
		Requested: target,
		Generator: p.gen.Name(),
		CreatedAt: p.now().UTC(),
	}
	if threshold := max(1, target/2); len(parsed) >= threshold {
		var opts AssembleOptions
		if p.cfg.ShuffleGeneratedOrDefault() {
			opts.Shuffle = src
		}
		deck.Questions = Assemble(parsed, target, opts)
		deck.Source = models.SourceGenerated
	} else {
		if raw != "" {
			p.logger.Info("generated questions below threshold, using fallback",
				zap.Int("parsed", len(parsed)),
				zap.Int("threshold", threshold),
			)
		}
		deck.Questions = Assemble(fallback.Build(src, mined, target), target, AssembleOptions{})
		deck.Source = models.SourceFallback
	}
	deck.Count = len(deck.Questions)

	p.logger.Info("deck built",
		zap.String("deck_id", deck.ID),
		zap.String("source", string(deck.Source)),
		zap.Int("count", deck.Count),
		zap.Int("requested", target),
		zap.Duration("took", time.Since(start)),
	)
	return deck, nil
}

// generate returns the generator output, or "" when the call failed.
func (p *Pipeline) generate(ctx context.Context, req string) string {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	raw, err := p.gen.Generate(ctx, req, p.genOpts)
	if err != nil {
		p.logger.Warn("generation unavailable, using fallback",
			zap.String("generator", p.gen.Name()),
			zap.Error(err),
		)
		return ""
	}
	return raw
}
