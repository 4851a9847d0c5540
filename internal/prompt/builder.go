// Package prompt formats generation requests in the block layout the parser reads back.
package prompt

import (
	"fmt"
	"strings"
)

// Delimiter vocabulary shared with the parser.
const (
	QuestionMarker = "Question"
	CorrectMarker  = "Correct:"
)

// Labels are the choice labels in order; a label's index is the choice index.
var Labels = [3]string{"A", "B", "C"}

// Build returns the instruction asking for n multiple-choice questions about text.
// text is embedded verbatim.
func Build(text string, n int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Generate %d multiple choice questions from the text below.\n\n", n))

	sb.WriteString("Requirements:\n")
	sb.WriteString("- Each question must have exactly 3 choices labeled A), B) and C)\n")
	sb.WriteString("- Exactly one choice is correct\n")
	sb.WriteString("- Answers must come from the text\n")
	sb.WriteString(fmt.Sprintf("- Start every question with \"%s N:\" where N is its number\n", QuestionMarker))
	sb.WriteString(fmt.Sprintf("- After the choices write \"%s \" followed by the letter of the correct choice\n\n", CorrectMarker))

	sb.WriteString("Format:\n")
	sb.WriteString(fmt.Sprintf("%s 1: <question>?\n", QuestionMarker))
	for _, l := range Labels {
		sb.WriteString(fmt.Sprintf("%s) <choice>\n", l))
	}
	sb.WriteString(fmt.Sprintf("%s <letter>\n\n", CorrectMarker))

	sb.WriteString("Text:\n")
	sb.WriteString(text)
	sb.WriteString("\n")

	return sb.String()
}
