package evaluate

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/morepeace/manyora/internal/llm"
	"github.com/morepeace/manyora/internal/quizgen"
)

var refQuestion = quizgen.Question{
	Question:     "What is 3/4 as a percentage?",
	Options:      []string{"34%", "43%", "75%", "80%"},
	CorrectIndex: 2,
	Tier:         1,
	Concept:      "Percentages",
}

func TestEvaluate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"quality": 80, "feedback": "Good reasoning; mention dividing by the denominator explicitly."}`),
	})
	svc := NewService(mock, DefaultConfig())

	ev, err := svc.Evaluate(t.Context(), refQuestion, "I multiplied 3/4 by 100 to get 75.")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if ev.Quality != 80 {
		t.Errorf("quality = %d, want 80", ev.Quality)
	}
	if ev.Feedback == "" {
		t.Error("expected non-empty feedback")
	}
}

func TestEvaluateRejectsOutOfRangeQuality(t *testing.T) {
	for _, quality := range []int{-1, 101, 500} {
		mock := llm.NewMockProvider(llm.MockResponse{
			Content: json.RawMessage(`{"quality": ` + jsonInt(quality) + `, "feedback": "x"}`),
		})
		svc := NewService(mock, DefaultConfig())

		_, err := svc.Evaluate(t.Context(), refQuestion, "because")
		var invalid *llm.ErrInvalidResponse
		if !errors.As(err, &invalid) {
			t.Errorf("quality %d: err = %v, want ErrInvalidResponse", quality, err)
		}
	}
}

func TestEvaluatePropagatesProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{}})
	svc := NewService(mock, DefaultConfig())

	if _, err := svc.Evaluate(t.Context(), refQuestion, "because"); err == nil {
		t.Fatal("expected provider error")
	}
}

func jsonInt(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}
