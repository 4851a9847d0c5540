package deck

import (
	"testing"

	"github.com/hyperjump/kuizu/internal/models"
	"github.com/hyperjump/kuizu/internal/shuffle"
)

func TestAssemble(t *testing.T) {
	red := models.MCQ{Question: "Which is red?", Choices: [3]string{"Mars", "Venus", "Earth"}, CorrectIndex: 0}
	tests := []struct {
		name   string
		in     []models.MCQ
		target int
		want   []models.MCQ
	}{
		{
			name:   "trims whitespace",
			in:     []models.MCQ{{Question: "  Which is red? ", Choices: [3]string{" Mars", "Venus ", "Earth"}}},
			target: 5,
			want:   []models.MCQ{red},
		},
		{
			name: "drops invalid",
			in: []models.MCQ{
				{Question: "", Choices: [3]string{"a", "b", "c"}},
				{Question: "Dup?", Choices: [3]string{"Mars", "mars", "Earth"}},
				{Question: "Range?", Choices: [3]string{"a", "b", "c"}, CorrectIndex: 3},
				{Question: "Blank?", Choices: [3]string{"a", " ", "c"}},
				red,
			},
			target: 5,
			want:   []models.MCQ{red},
		},
		{
			name: "drops duplicates ignoring case",
			in: []models.MCQ{
				red,
				{Question: "WHICH IS RED?", Choices: [3]string{"Earth", "MARS", "Venus"}, CorrectIndex: 1},
				{Question: "Which is red?", Choices: [3]string{"Mars", "Venus", "Earth"}, CorrectIndex: 1},
			},
			target: 5,
			want: []models.MCQ{
				red,
				{Question: "Which is red?", Choices: [3]string{"Mars", "Venus", "Earth"}, CorrectIndex: 1},
			},
		},
		{
			name:   "truncates to target",
			in:     []models.MCQ{red, {Question: "Which is hot?", Choices: [3]string{"Mars", "Venus", "Earth"}, CorrectIndex: 1}},
			target: 1,
			want:   []models.MCQ{red},
		},
		{
			name:   "empty",
			in:     nil,
			target: 3,
			want:   []models.MCQ{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Assemble(tt.in, tt.target, AssembleOptions{})
			if len(got) != len(tt.want) {
				t.Fatalf("got %d MCQs, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("MCQ %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAssemble_ShuffleTracksAnswer(t *testing.T) {
	in := []models.MCQ{
		{Question: "Which is red?", Choices: [3]string{"Mars", "Venus", "Earth"}, CorrectIndex: 0},
		{Question: "Which is hot?", Choices: [3]string{"Mars", "Venus", "Earth"}, CorrectIndex: 1},
		{Question: "Which is home?", Choices: [3]string{"Mars", "Venus", "Earth"}, CorrectIndex: 2},
	}
	for seed := uint64(1); seed <= 20; seed++ {
		got := Assemble(in, 3, AssembleOptions{Shuffle: shuffle.NewSeeded(seed)})
		for i, m := range got {
			if m.Answer() != in[i].Answer() {
				t.Fatalf("seed %d: MCQ %d answer = %q, want %q", seed, i, m.Answer(), in[i].Answer())
			}
		}
	}
}
