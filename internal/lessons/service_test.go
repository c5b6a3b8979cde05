package lessons

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/morepeace/manyora/internal/llm"
	"github.com/morepeace/manyora/internal/subjects"
)

func validSummaryJSON() json.RawMessage {
	return json.RawMessage(`{
		"title": "Simultaneous Equations",
		"summary": "Simultaneous equations are pairs of equations solved together. Elimination removes one variable by adding or subtracting the equations. Substitution rewrites one variable in terms of the other. Always check the solution in both original equations. Graphically, the solution is the intersection point of the two lines.",
		"difficulty": "Intermediate",
		"key_terms": ["elimination", "substitution", "intersection"],
		"prerequisites": ["Linear equations", "Rearranging formulas"],
		"next_topic": "Quadratic simultaneous equations",
		"real_world_use": "Pricing problems where two unknowns must balance, like tickets and totals.",
		"examiner_notes": "Show the elimination step explicitly; most marks are for method."
	}`)
}

func TestSummarize(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validSummaryJSON()})
	svc := NewService(mock, DefaultConfig())

	sum, err := svc.Summarize(t.Context(), SummaryInput{
		Subject: subjects.Maths,
		Text:    "Chapter 4: solving simultaneous equations by elimination...",
	})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	if sum.Subject != subjects.Maths {
		t.Errorf("subject = %q", sum.Subject)
	}
	if sum.Title != "Simultaneous Equations" {
		t.Errorf("title = %q", sum.Title)
	}
	if sum.Difficulty != "Intermediate" {
		t.Errorf("difficulty = %q", sum.Difficulty)
	}
	if len(sum.KeyTerms) != 3 {
		t.Errorf("key terms = %v", sum.KeyTerms)
	}
	if sum.NextTopic == "" || sum.RealWorldUse == "" || sum.ExaminerNotes == "" {
		t.Error("expected all guidance fields populated")
	}
}

func TestSummarizeTruncatesInput(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validSummaryJSON()})
	svc := NewService(mock, DefaultConfig())

	longText := strings.Repeat("revision material ", 2000) // ~36k chars

	if _, err := svc.Summarize(t.Context(), SummaryInput{
		Subject: subjects.Science,
		Text:    longText,
	}); err != nil {
		t.Fatalf("summarize: %v", err)
	}

	sent := mock.Calls[0].Messages[0].Content
	if len(sent) > MaxInputChars+500 { // prompt scaffolding on top of the material
		t.Errorf("prompt length %d suggests material was not truncated", len(sent))
	}
}

func TestSummarizeRejectsIncompleteResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"title": "", "summary": "", "difficulty": "", "key_terms": [], "prerequisites": [], "next_topic": "", "real_world_use": "", "examiner_notes": ""}`),
	})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Summarize(t.Context(), SummaryInput{Subject: subjects.English, Text: "notes"})
	var invalid *llm.ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want ErrInvalidResponse", err)
	}
}

func TestSummarizePropagatesProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{},
	})
	svc := NewService(mock, DefaultConfig())

	if _, err := svc.Summarize(t.Context(), SummaryInput{Subject: subjects.Maths, Text: "notes"}); err == nil {
		t.Fatal("expected error from provider")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 3, "hel"},
		{"héllo", 2, "h"}, // é is 2 bytes; don't split it
		{"", 5, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
