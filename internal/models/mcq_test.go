package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestMCQ_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mcq     MCQ
		wantErr error
	}{
		{"valid", MCQ{Question: "Which is the red planet?", Choices: [3]string{"Mars", "Venus", "Jupiter"}, CorrectIndex: 0}, nil},
		{"empty question", MCQ{Question: "  ", Choices: [3]string{"a", "b", "c"}}, ErrEmptyQuestion},
		{"empty choice", MCQ{Question: "q?", Choices: [3]string{"a", "", "c"}}, ErrEmptyChoice},
		{"duplicate choice", MCQ{Question: "q?", Choices: [3]string{"Mars", "mars", "c"}}, ErrDuplicateChoice},
		{"negative index", MCQ{Question: "q?", Choices: [3]string{"a", "b", "c"}, CorrectIndex: -1}, ErrCorrectIndex},
		{"index too large", MCQ{Question: "q?", Choices: [3]string{"a", "b", "c"}, CorrectIndex: 3}, ErrCorrectIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mcq.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMCQ_Answer(t *testing.T) {
	m := MCQ{Question: "q?", Choices: [3]string{"a", "b", "c"}, CorrectIndex: 2}
	if got := m.Answer(); got != "c" {
		t.Errorf("Answer() = %q, want c", got)
	}
	m.CorrectIndex = 7
	if got := m.Answer(); got != "" {
		t.Errorf("Answer() out of range = %q, want empty", got)
	}
}

func TestNewMCQ(t *testing.T) {
	m, ok := NewMCQ("q?", [3]string{"x", "y", "z"}, "y")
	if !ok || m.CorrectIndex != 1 {
		t.Errorf("NewMCQ = %+v, %v", m, ok)
	}
	if _, ok := NewMCQ("q?", [3]string{"x", "y", "z"}, "w"); ok {
		t.Error("expected false for missing answer")
	}
}

func TestMCQ_JSONShape(t *testing.T) {
	m := MCQ{Question: "q?", Choices: [3]string{"a", "b", "c"}, CorrectIndex: 1}
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"question":"q?","choices":["a","b","c"],"correctIndex":1}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}

func TestDeck_Partial(t *testing.T) {
	d := &Deck{Count: 2, Requested: 5}
	if !d.Partial() {
		t.Error("expected partial deck")
	}
	d.Count = 5
	if d.Partial() {
		t.Error("expected full deck")
	}
}
