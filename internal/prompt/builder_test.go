package prompt

import (
	"strings"
	"testing"
)

func TestBuild(t *testing.T) {
	text := "Mars is the red planet.\n  Venus  is hot."
	got := Build(text, 7)

	for _, want := range []string{
		"Generate 7 multiple choice questions",
		"Question 1:",
		"A) <choice>",
		"B) <choice>",
		"C) <choice>",
		"Correct: <letter>",
		text,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q:\n%s", want, got)
		}
	}
	if !strings.HasSuffix(got, text+"\n") {
		t.Error("text should close the prompt")
	}
}

func TestBuild_Pure(t *testing.T) {
	if Build("same", 3) != Build("same", 3) {
		t.Error("Build should be deterministic")
	}
}
