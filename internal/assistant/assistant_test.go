package assistant

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/morepeace/manyora/internal/llm"
)

func TestAsk(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("Photosynthesis happens in the chloroplasts."),
	})
	svc := NewService(mock, DefaultConfig())

	reply, err := svc.Ask(t.Context(), "Where does photosynthesis happen?")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if !strings.Contains(reply, "chloroplasts") {
		t.Errorf("reply = %q", reply)
	}

	if len(svc.History()) != 2 {
		t.Fatalf("history = %d turns, want 2", len(svc.History()))
	}
	if svc.History()[0].Role != llm.RoleUser || svc.History()[1].Role != llm.RoleAssistant {
		t.Error("history roles wrong")
	}
}

func TestAskAttachesPersona(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage("hi")})
	svc := NewService(mock, DefaultConfig())

	if _, err := svc.Ask(t.Context(), "hello"); err != nil {
		t.Fatalf("ask: %v", err)
	}

	if !strings.Contains(mock.Calls[0].System, "Morepeace Manyora") {
		t.Error("persona system prompt not attached")
	}
}

func TestAskBlankInputIsNoOp(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := NewService(mock, DefaultConfig())

	reply, err := svc.Ask(t.Context(), "   ")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if reply != "" {
		t.Errorf("reply = %q, want empty", reply)
	}
	if mock.CallCount() != 0 {
		t.Error("blank input should not reach the provider")
	}
}

func TestAskFallbackOnProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	svc := NewService(mock, DefaultConfig())

	reply, err := svc.Ask(t.Context(), "help me revise")
	if err != nil {
		t.Fatalf("ask should swallow provider errors, got %v", err)
	}
	if reply != FallbackMessage {
		t.Errorf("reply = %q, want fallback", reply)
	}
	turns := svc.History()
	if len(turns) != 2 {
		t.Fatalf("history = %d turns, want 2", len(turns))
	}
	if turns[0].Content != "help me revise" {
		t.Errorf("user turn = %q", turns[0].Content)
	}
	if turns[1].Content != FallbackMessage {
		t.Errorf("assistant turn = %q, want fallback", turns[1].Content)
	}
}

func TestAskTrimsHistory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxHistory = 2

	mock := llm.NewMockProvider()
	for i := 0; i < 4; i++ {
		mock.AddResponse(llm.MockResponse{Content: json.RawMessage("ok")})
	}
	svc := NewService(mock, cfg)

	for _, msg := range []string{"one", "two", "three", "four"} {
		if _, err := svc.Ask(t.Context(), msg); err != nil {
			t.Fatalf("ask %q: %v", msg, err)
		}
	}

	// Last request: 2 history turns + the new message.
	last := mock.Calls[len(mock.Calls)-1]
	if len(last.Messages) != 3 {
		t.Errorf("sent %d messages, want 3", len(last.Messages))
	}
}
