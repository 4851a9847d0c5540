// Package extract turns document files into plain text for deck building.
package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ErrUnsupported is returned for extensions outside the configured set.
var ErrUnsupported = errors.New("unsupported document type")

// TextSource turns raw document bytes into text. Unreadable input yields "".
type TextSource interface {
	Text(content []byte, ext string) string
}

// Extractor extracts plain text from document files.
type Extractor struct {
	allowed map[string]bool // nil accepts every extension
	logger  *zap.Logger
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithLogger sets the logger used by Text to report unreadable input.
func WithLogger(l *zap.Logger) ExtractorOption {
	return func(e *Extractor) { e.logger = l }
}

// WithExtensions restricts the accepted extensions (with leading dot, any case).
func WithExtensions(exts []string) ExtractorOption {
	return func(e *Extractor) {
		e.allowed = make(map[string]bool, len(exts))
		for _, ext := range exts {
			e.allowed[strings.ToLower(ext)] = true
		}
	}
}

// NewExtractor returns a new Extractor.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Supported reports whether ext (with leading dot) is accepted.
func (e *Extractor) Supported(ext string) bool {
	return e.allowed == nil || e.allowed[strings.ToLower(ext)]
}

// Extract reads the file at path and returns its text content.
func (e *Extractor) Extract(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !e.Supported(ext) {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return e.ExtractBytes(content, ext)
}

// ExtractBytes extracts text from content based on the given extension.
// ext should include the leading dot (e.g. ".pdf"). Unknown extensions are
// read as plain text when no extension set is configured.
func (e *Extractor) ExtractBytes(content []byte, ext string) (string, error) {
	ext = strings.ToLower(ext)
	if !e.Supported(ext) {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}
	switch ext {
	case ".pdf":
		return extractPDF(content)
	case ".docx":
		return extractDOCX(content)
	case ".pptx":
		return extractPPTX(content)
	case ".xlsx":
		return extractExcel(content)
	case ".odt":
		return extractODF(content, "ODT")
	case ".odp":
		return extractODF(content, "ODP")
	case ".ods":
		return extractODF(content, "ODS")
	default:
		return extractPlain(content)
	}
}

// Text returns the text of content, or "" when it cannot be read. The cause
// is logged instead of returned; callers treat short text as unusable input.
func (e *Extractor) Text(content []byte, ext string) string {
	text, err := e.ExtractBytes(content, ext)
	if err != nil {
		e.logger.Warn("document unreadable",
			zap.String("ext", ext),
			zap.Int("bytes", len(content)),
			zap.Error(err),
		)
		return ""
	}
	return text
}
