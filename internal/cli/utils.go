// Package cli provides output helpers for the kuizu command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/kuizu/internal/models"
	"github.com/hyperjump/kuizu/internal/prompt"
)

// OutputFormat is the format for deck output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat validates a -output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case OutputText, OutputJSON:
		return f, nil
	case "":
		return OutputText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text or json)", s)
	}
}

// WriteDeck writes deck to w in the given format. source names the input
// file in text output and may be empty.
func WriteDeck(w io.Writer, source string, deck *models.Deck, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(deck)
	default:
		return writeDeckText(w, source, deck)
	}
}

func writeDeckText(w io.Writer, source string, deck *models.Deck) error {
	var b strings.Builder
	if source != "" {
		fmt.Fprintf(&b, "== %s ==\n", source)
	}
	fmt.Fprintf(&b, "%d of %d questions (%s", deck.Count, deck.Requested, deck.Source)
	if deck.Generator != "" {
		fmt.Fprintf(&b, ", %s", deck.Generator)
	}
	b.WriteString(")\n\n")
	for i, q := range deck.Questions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q.Question)
		for j, c := range q.Choices {
			mark := " "
			if j == q.CorrectIndex {
				mark = "*"
			}
			fmt.Fprintf(&b, "  %s %s) %s\n", mark, prompt.Labels[j], c)
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
