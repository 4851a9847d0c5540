// Package models defines core data structures for questions, decks, and mined facts.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// ChoiceCount is the number of choices every MCQ carries: one answer and two distractors.
const ChoiceCount = 3

var (
	// ErrEmptyQuestion is returned by Validate when the question text is blank.
	ErrEmptyQuestion = errors.New("question is empty")
	// ErrEmptyChoice is returned by Validate when a choice is blank.
	ErrEmptyChoice = errors.New("choice is empty")
	// ErrDuplicateChoice is returned by Validate when two choices are equal.
	ErrDuplicateChoice = errors.New("duplicate choice")
	// ErrCorrectIndex is returned by Validate when CorrectIndex is out of range.
	ErrCorrectIndex = errors.New("correct index out of range")
)

// MCQ is a multiple-choice question with exactly three choices.
type MCQ struct {
	Question     string              `json:"question"`
	Choices      [ChoiceCount]string `json:"choices"`
	CorrectIndex int                 `json:"correctIndex"`
}

// Answer returns the choice at CorrectIndex, or "" when the index is out of range.
func (m MCQ) Answer() string {
	if m.CorrectIndex < 0 || m.CorrectIndex >= ChoiceCount {
		return ""
	}
	return m.Choices[m.CorrectIndex]
}

// Validate checks the deck invariant: non-empty question, three non-empty unique
// choices (compared case-insensitively) and a CorrectIndex in [0,2].
func (m MCQ) Validate() error {
	if strings.TrimSpace(m.Question) == "" {
		return ErrEmptyQuestion
	}
	if m.CorrectIndex < 0 || m.CorrectIndex >= ChoiceCount {
		return fmt.Errorf("%w: %d", ErrCorrectIndex, m.CorrectIndex)
	}
	seen := make(map[string]struct{}, ChoiceCount)
	for i, c := range m.Choices {
		key := strings.ToLower(strings.TrimSpace(c))
		if key == "" {
			return fmt.Errorf("%w at %d", ErrEmptyChoice, i)
		}
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateChoice, c)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// NewMCQ builds an MCQ whose correct answer is answer. It returns false when
// answer is not one of choices.
func NewMCQ(question string, choices [ChoiceCount]string, answer string) (MCQ, bool) {
	for i, c := range choices {
		if c == answer {
			return MCQ{Question: question, Choices: choices, CorrectIndex: i}, true
		}
	}
	return MCQ{}, false
}
