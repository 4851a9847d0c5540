// Package parser recovers structured MCQs from free-form generator output.
//
// Output is split into blocks at "Question N:" markers. Each block is read as
// a question line followed by labeled choices and an optional correct-answer
// line. Blocks that do not have that shape are skipped.
package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/hyperjump/kuizu/internal/models"
)

// minBlockLines is one question line plus three content lines.
const minBlockLines = 4

var (
	markerRe  = regexp.MustCompile(`(?i)question\s*\d+\s*[:.)]`)
	correctRe = regexp.MustCompile(`(?i)^[-*_\s]*(?:correct(?:\s+answer)?|answer)[*_\s]*[:\-]?[*_\s]*\(?[*_]*([ABC])\b`)
	choiceRe  = regexp.MustCompile(`^[-*_\s]*\(?([ABC])[*_]*(?:[).:][*_]*\s*|\s+)(.+)$`)
)

// emphasis is the markdown wrapping chat models put around labels and choices.
const emphasis = "*_ \t"

// Parse returns at most target MCQs recovered from raw, in order of appearance.
func Parse(raw string, target int) []models.MCQ {
	if target <= 0 {
		return nil
	}
	locs := markerRe.FindAllStringIndex(raw, -1)
	var out []models.MCQ
	for i, loc := range locs {
		end := len(raw)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		if m, ok := parseBlock(raw[loc[1]:end]); ok {
			out = append(out, m)
			if len(out) >= target {
				break
			}
		}
	}
	return out
}

// parseBlock reads one block. A panic while reading a block discards only that block.
func parseBlock(block string) (m models.MCQ, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			m, ok = models.MCQ{}, false
		}
	}()

	lines := nonEmptyLines(block)
	if len(lines) < minBlockLines {
		return models.MCQ{}, false
	}

	question := strings.TrimFunc(lines[0], func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r)
	})
	if question == "" {
		return models.MCQ{}, false
	}
	question += "?"

	var (
		choices []string
		correct int
	)
	for _, line := range lines[1:] {
		if cm := correctRe.FindStringSubmatch(line); cm != nil {
			correct = labelIndex(cm[1])
			continue
		}
		if cm := choiceRe.FindStringSubmatch(line); cm != nil {
			if choice := strings.Trim(cm[2], emphasis); choice != "" {
				choices = append(choices, choice)
			}
		}
	}
	if len(choices) < models.ChoiceCount {
		return models.MCQ{}, false
	}

	m.Question = question
	copy(m.Choices[:], choices[:models.ChoiceCount])
	m.CorrectIndex = clamp(correct, 0, models.ChoiceCount-1)
	return m, true
}

func nonEmptyLines(s string) []string {
	var lines []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// labelIndex maps A, B and C (any case) to 0, 1 and 2.
func labelIndex(label string) int {
	return int(unicode.ToUpper(rune(label[0])) - 'A')
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
