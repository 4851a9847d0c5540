package models

import "time"

// DeckSource records which pipeline path produced a deck.
type DeckSource string

const (
	// SourceGenerated means questions were parsed from generator output.
	SourceGenerated DeckSource = "generated"
	// SourceFallback means questions were synthesized from mined facts and terms.
	SourceFallback DeckSource = "fallback"
)

// Deck is an ordered set of questions built from one document.
// Count may be lower than Requested when the document ran out of material.
type Deck struct {
	ID        string     `json:"id"`
	Questions []MCQ      `json:"questions"`
	Count     int        `json:"count"`
	Requested int        `json:"requested"`
	Source    DeckSource `json:"source"`
	Generator string     `json:"generator,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Partial reports whether the deck holds fewer questions than requested.
func (d *Deck) Partial() bool {
	return d.Count < d.Requested
}

// DeckInput is the JSON body for building a deck from raw text.
type DeckInput struct {
	Text  string `json:"text"`
	Count int    `json:"count,omitempty"`
}

// Fact pairs a mined term with a short description taken from the text.
type Fact struct {
	Term        string `json:"term"`
	Description string `json:"description"`
}
