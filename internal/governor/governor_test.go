package governor

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/morepeace/manyora/internal/llm"
)

func TestAdvise(t *testing.T) {
	tests := []struct {
		action string
		want   Action
	}{
		{"continue", ActionContinue},
		{"slow", ActionSlow},
		{"stop", ActionStop},
	}

	for _, tt := range tests {
		mock := llm.NewMockProvider(llm.MockResponse{
			Content: json.RawMessage(`{"action": "` + tt.action + `", "message": "advice"}`),
		})
		svc := NewService(mock, DefaultConfig())

		adv, err := svc.Advise(t.Context(), Input{ErrorCount: 3, ElapsedMinutes: 12.5})
		if err != nil {
			t.Fatalf("advise(%s): %v", tt.action, err)
		}
		if adv.Action != tt.want {
			t.Errorf("action = %q, want %q", adv.Action, tt.want)
		}
		if adv.Message == "" {
			t.Error("expected non-empty message")
		}
	}
}

func TestAdvisePromptCarriesSessionState(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"action": "slow", "message": "take it easy"}`),
	})
	svc := NewService(mock, DefaultConfig())

	if _, err := svc.Advise(t.Context(), Input{ErrorCount: 7, ElapsedMinutes: 42}); err != nil {
		t.Fatalf("advise: %v", err)
	}

	prompt := mock.Calls[0].Messages[0].Content
	if !strings.Contains(prompt, "7") || !strings.Contains(prompt, "42") {
		t.Errorf("session state missing from prompt: %q", prompt)
	}
}

func TestAdviseRejectsUnknownAction(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"action": "panic", "message": "??"}`),
	})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Advise(t.Context(), Input{ErrorCount: 1, ElapsedMinutes: 1})
	var invalid *llm.ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want ErrInvalidResponse", err)
	}
}
