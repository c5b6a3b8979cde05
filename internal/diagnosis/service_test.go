package diagnosis

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/morepeace/manyora/internal/llm"
	"github.com/morepeace/manyora/internal/quizgen"
	"github.com/morepeace/manyora/internal/subjects"
)

func sampleResults() []QuestionResult {
	q := func(concept string, correct int) quizgen.Question {
		return quizgen.Question{
			Question:     "What is X?",
			Options:      []string{"A", "B", "C", "D"},
			CorrectIndex: correct,
			Tier:         2,
			Concept:      concept,
		}
	}
	return []QuestionResult{
		{Question: q("Fractions", 0), Selected: 0, Correct: true},
		{Question: q("Ratios", 1), Selected: 3, Correct: false},
		{Question: q("Ratios", 2), Selected: -1, Correct: false},
		{Question: q("Percentages", 1), Selected: 0, Correct: false},
	}
}

func TestDiagnose(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"notes": [
			"Revisit how to simplify ratios before comparing them.",
			"You skipped a question; attempt every question even when unsure.",
			"Practice converting between fractions and percentages."
		]}`),
	})
	svc := NewService(mock, DefaultConfig())

	notes, err := svc.Diagnose(t.Context(), DiagnoseInput{
		Subject: subjects.Maths,
		Results: sampleResults(),
	})
	if err != nil {
		t.Fatalf("diagnose: %v", err)
	}
	if len(notes) != NoteCount {
		t.Fatalf("got %d notes, want %d", len(notes), NoteCount)
	}

	// The prompt must show the full correctness matrix, including the
	// unanswered question.
	prompt := mock.Calls[0].Messages[0].Content
	if !strings.Contains(prompt, "(no answer)") {
		t.Error("unanswered question not surfaced in prompt")
	}
	if !strings.Contains(prompt, "WRONG") {
		t.Error("incorrect answers not flagged in prompt")
	}
}

func TestDiagnoseRejectsWrongNoteCount(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"notes": ["only one note"]}`),
	})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Diagnose(t.Context(), DiagnoseInput{
		Subject: subjects.Maths,
		Results: sampleResults(),
	})
	var invalid *llm.ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want ErrInvalidResponse", err)
	}
}

func TestDiagnoseDropsBlankNotes(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"notes": ["a", "  ", "b", "c"]}`),
	})
	svc := NewService(mock, DefaultConfig())

	notes, err := svc.Diagnose(t.Context(), DiagnoseInput{
		Subject: subjects.English,
		Results: sampleResults(),
	})
	if err != nil {
		t.Fatalf("diagnose: %v", err)
	}
	if len(notes) != 3 || notes[1] != "b" {
		t.Errorf("notes = %v", notes)
	}
}

func TestMissedConcepts(t *testing.T) {
	// Two missed questions share the Ratios tag; both count, so the
	// profile merge records two failures for that concept.
	got := MissedConcepts(sampleResults())
	want := []string{"Ratios", "Ratios", "Percentages"}

	if len(got) != len(want) {
		t.Fatalf("missed = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("missed[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMissedConceptsAllCorrect(t *testing.T) {
	results := sampleResults()
	for i := range results {
		results[i].Correct = true
	}
	if got := MissedConcepts(results); len(got) != 0 {
		t.Errorf("missed = %v, want none", got)
	}
}
