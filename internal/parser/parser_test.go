package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/hyperjump/kuizu/internal/models"
)

func block(n int, q string, choices [3]string, correct string) string {
	return fmt.Sprintf("Question %d: %s\nA) %s\nB) %s\nC) %s\nCorrect: %s\n\n", n, q, choices[0], choices[1], choices[2], correct)
}

func TestParse_RoundTrip(t *testing.T) {
	want := []models.MCQ{
		{Question: "Which planet is red?", Choices: [3]string{"Mars", "Venus", "Jupiter"}, CorrectIndex: 0},
		{Question: "Which planet is hottest?", Choices: [3]string{"Mercury", "Venus", "Saturn"}, CorrectIndex: 1},
		{Question: "Which planet is largest?", Choices: [3]string{"Earth", "Mars", "Jupiter"}, CorrectIndex: 2},
	}
	var raw strings.Builder
	raw.WriteString("Here are your questions.\n\n")
	for i, m := range want {
		raw.WriteString(block(i+1, m.Question, m.Choices, string(rune('A'+m.CorrectIndex))))
	}

	got := Parse(raw.String(), 5)
	if len(got) != len(want) {
		t.Fatalf("Parse returned %d MCQs, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("MCQ %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParse_TwoChoiceBlockDropped(t *testing.T) {
	raw := "Question 1: Which is red?\nA) Mars\nB) Venus\nCorrect: A\n" +
		block(2, "Which is largest?", [3]string{"Earth", "Mars", "Jupiter"}, "C")

	got := Parse(raw, 5)
	if len(got) != 1 {
		t.Fatalf("Parse returned %d MCQs, want 1: %+v", len(got), got)
	}
	if got[0].Question != "Which is largest?" || got[0].CorrectIndex != 2 {
		t.Errorf("unexpected MCQ %+v", got[0])
	}
}

func TestParse_DefaultsToFirstChoice(t *testing.T) {
	raw := "Question 1: Which is red\nA) Mars\nB) Venus\nC) Jupiter\n"
	got := Parse(raw, 1)
	if len(got) != 1 {
		t.Fatalf("Parse returned %d MCQs, want 1", len(got))
	}
	if got[0].CorrectIndex != 0 {
		t.Errorf("CorrectIndex = %d, want 0", got[0].CorrectIndex)
	}
	if got[0].Question != "Which is red?" {
		t.Errorf("Question = %q, want a trailing question mark", got[0].Question)
	}
}

func TestParse_StopsAtTarget(t *testing.T) {
	var raw strings.Builder
	for i := 1; i <= 6; i++ {
		raw.WriteString(block(i, fmt.Sprintf("Q%d", i), [3]string{"a", "b", "c"}, "B"))
	}
	got := Parse(raw.String(), 4)
	if len(got) != 4 {
		t.Fatalf("Parse returned %d MCQs, want 4", len(got))
	}
	if got[3].Question != "Q4?" {
		t.Errorf("last MCQ = %q, want Q4?", got[3].Question)
	}
	if Parse(raw.String(), 0) != nil {
		t.Error("target 0 should yield nothing")
	}
}

func TestParse_FormatVariants(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    models.MCQ
		wantNum int
	}{
		{
			name: "lowercase marker and answer line",
			raw:  "question 1: Which gas do plants absorb?\nA. Oxygen\nB. Carbon dioxide\nC. Helium\nanswer: b\n",
			want: models.MCQ{Question: "Which gas do plants absorb?", Choices: [3]string{"Oxygen", "Carbon dioxide", "Helium"}, CorrectIndex: 1},
		},
		{
			name: "parenthesized labels and bullets",
			raw:  "QUESTION 3) ...Who wrote Hamlet...\n- (A) Shakespeare\n- (B) Marlowe\n- (C) Jonson\nCorrect answer: (A)\n",
			want: models.MCQ{Question: "Who wrote Hamlet?", Choices: [3]string{"Shakespeare", "Marlowe", "Jonson"}, CorrectIndex: 0},
		},
		{
			name: "colon labels and extra choices",
			raw:  "Question 1 : Largest ocean?\nA: Pacific\nB: Atlantic\nC: Indian\nD: Arctic\nCorrect: C\n",
			want: models.MCQ{Question: "Largest ocean?", Choices: [3]string{"Pacific", "Atlantic", "Indian"}, CorrectIndex: 2},
		},
		{
			name: "noise lines ignored",
			raw:  "Question 1: Capital of Japan?\nChoose wisely.\nA) Tokyo\nB) Kyoto\nC) Osaka\nCorrect: A\n",
			want: models.MCQ{Question: "Capital of Japan?", Choices: [3]string{"Tokyo", "Kyoto", "Osaka"}, CorrectIndex: 0},
		},
		{
			name: "bold labels and bold correct line",
			raw:  "**Question 1:** What is the capital of France?\n**A)** Paris\n**B)** Rome\n**C)** Berlin\n**Correct: A**\n",
			want: models.MCQ{Question: "What is the capital of France?", Choices: [3]string{"Paris", "Rome", "Berlin"}, CorrectIndex: 0},
		},
		{
			name: "bold answer letter after colon",
			raw:  "Question 1: Which planet is red?\nA) Venus\nB) Mars\nC) Jupiter\nCorrect Answer: **B**\n",
			want: models.MCQ{Question: "Which planet is red?", Choices: [3]string{"Venus", "Mars", "Jupiter"}, CorrectIndex: 1},
		},
		{
			name: "emphasized choices and bold answer label",
			raw:  "Question 2: Largest planet?\n- A) *Saturn*\n- B) __Jupiter__\n- C) **Neptune**\n**Answer:** B\n",
			want: models.MCQ{Question: "Largest planet?", Choices: [3]string{"Saturn", "Jupiter", "Neptune"}, CorrectIndex: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.raw, 5)
			if len(got) != 1 {
				t.Fatalf("Parse returned %d MCQs, want 1: %+v", len(got), got)
			}
			if got[0] != tt.want {
				t.Errorf("got %+v, want %+v", got[0], tt.want)
			}
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"no markers", "A) Mars\nB) Venus\nC) Jupiter\nCorrect: A"},
		{"too few lines", "Question 1: What?\nA) x\nB) y"},
		{"empty question", "Question 1: ???\nA) x\nB) y\nC) z\n"},
		{"unlabeled lines", "Question 1: What?\nMars\nVenus\nJupiter\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.raw, 3); len(got) != 0 {
				t.Errorf("expected no MCQs, got %+v", got)
			}
		})
	}
}

func TestLabelIndex(t *testing.T) {
	for label, want := range map[string]int{"A": 0, "b": 1, "C": 2} {
		if got := labelIndex(label); got != want {
			t.Errorf("labelIndex(%q) = %d, want %d", label, got, want)
		}
	}
}
