package watcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/hyperjump/kuizu/internal/cli"
	"github.com/hyperjump/kuizu/internal/models"
)

// DeckSuffix ends every deck file name.
const DeckSuffix = ".deck.json"

// digestLen is the number of hex digits of the source path digest in a deck name.
const digestLen = 8

// DeckBuilder builds a deck of up to target questions from text.
type DeckBuilder interface {
	BuildDeck(ctx context.Context, text string, target int) (*models.Deck, error)
}

// FileReader extracts the text of a document file.
type FileReader interface {
	Extract(path string) (string, error)
}

// Inbox builds a deck for every document handed to it and writes the deck as
// JSON into the output directory.
type Inbox struct {
	builder   DeckBuilder
	files     FileReader
	outputDir string
	count     int
	logger    *zap.Logger
}

// NewInbox returns an Inbox writing count-question decks to outputDir.
func NewInbox(builder DeckBuilder, files FileReader, outputDir string, count int, logger *zap.Logger) *Inbox {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inbox{
		builder:   builder,
		files:     files,
		outputDir: outputDir,
		count:     count,
		logger:    logger,
	}
}

// OutputPath returns where the deck for the document at src is written:
// <file name>-<path digest>.deck.json. The file name keeps its extension and
// the digest of the absolute source path tells same-named documents apart.
func (in *Inbox) OutputPath(src string) string {
	abs, err := filepath.Abs(src)
	if err != nil {
		abs = filepath.Clean(src)
	}
	sum := sha256.Sum256([]byte(abs))
	name := filepath.Base(abs) + "-" + hex.EncodeToString(sum[:])[:digestLen] + DeckSuffix
	return filepath.Join(in.outputDir, name)
}

// Owns reports whether path is inside the output directory. Watchers skip
// those paths so written decks never come back in as documents.
func (in *Inbox) Owns(path string) bool {
	out, err := filepath.Abs(in.outputDir)
	if err != nil {
		return false
	}
	p, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return p == out || inDir(out, p)
}

// Process builds the deck for the document at src and writes it.
func (in *Inbox) Process(ctx context.Context, src string) error {
	text, err := in.files.Extract(src)
	if err != nil {
		return fmt.Errorf("extract %s: %w", src, err)
	}
	deck, err := in.builder.BuildDeck(ctx, text, in.count)
	if err != nil {
		return fmt.Errorf("build deck for %s: %w", src, err)
	}
	dst := in.OutputPath(src)
	if err := writeDeck(dst, deck); err != nil {
		return err
	}
	in.logger.Info("deck written",
		zap.String("source", src),
		zap.String("output", dst),
		zap.Int("count", deck.Count),
		zap.String("deck_source", string(deck.Source)),
	)
	return nil
}

// Remove deletes the deck built from src, if any.
func (in *Inbox) Remove(src string) error {
	dst := in.OutputPath(src)
	if err := os.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", dst, err)
	}
	in.logger.Debug("deck removed", zap.String("source", src), zap.String("output", dst))
	return nil
}

// Watch returns a Watcher that feeds roots into the inbox until ctx ends.
// Failures are logged; one bad document never stops the watcher.
func (in *Inbox) Watch(ctx context.Context, roots, extensions []string, recursive bool, opts ...WatcherOption) *Watcher {
	onReady := func(path string) {
		if err := in.Process(ctx, path); err != nil {
			in.logger.Warn("inbox document skipped", zap.String("path", path), zap.Error(err))
		}
	}
	onGone := func(path string) {
		if err := in.Remove(path); err != nil {
			in.logger.Warn("inbox cleanup failed", zap.String("path", path), zap.Error(err))
		}
	}
	opts = append([]WatcherOption{WithLogger(in.logger), WithIgnore(in.Owns)}, opts...)
	return NewWatcher(roots, extensions, recursive, onReady, onGone, opts...)
}

// writeDeck writes deck to dst through a temporary file so readers never see
// a half-written deck.
func writeDeck(dst string, deck *models.Deck) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".deck-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := cli.WriteDeck(tmp, "", deck, cli.OutputJSON); err != nil {
		tmp.Close()
		return fmt.Errorf("write deck: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close deck: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("rename deck: %w", err)
	}
	return nil
}
