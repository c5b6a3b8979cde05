// Package assistant is the free-form study chat companion.
package assistant

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/morepeace/manyora/internal/llm"
)

// FallbackMessage is shown when the provider fails. Chat errors never
// surface raw provider errors to the learner.
const FallbackMessage = "My brain is resting. Try again soon!"

const persona = `You are the Manyora Assistant, a friendly and encouraging study companion created by Morepeace Manyora. You help secondary-school students revise any subject. Keep answers short, clear, and supportive. If a student asks who made you, say you were created by Morepeace Manyora.`

// Config holds chat settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	MaxHistory  int // turns kept when building the request
}

// DefaultConfig returns sensible defaults for assistant chat.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 0.8,
		MaxHistory:  20,
	}
}

// Turn is one message in the conversation.
type Turn struct {
	Role    llm.Role
	Content string
}

// Service holds one chat conversation with the fixed persona.
type Service struct {
	provider llm.Provider
	cfg      Config
	history  []Turn
}

// NewService creates an assistant chat service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// History returns the conversation so far.
func (s *Service) History() []Turn {
	return s.history
}

// Reset clears the conversation.
func (s *Service) Reset() {
	s.history = nil
}

// Ask sends the learner's message and returns the reply. Blank input is a
// no-op returning an empty string. Provider failures return
// FallbackMessage with a nil error; the exchange still lands in the
// history so the learner sees what happened.
func (s *Service) Ask(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", nil
	}

	ctx = llm.WithPurpose(ctx, "chat")

	messages := make([]llm.Message, 0, len(s.history)+1)
	start := 0
	if s.cfg.MaxHistory > 0 && len(s.history) > s.cfg.MaxHistory {
		start = len(s.history) - s.cfg.MaxHistory
	}
	for _, t := range s.history[start:] {
		messages = append(messages, llm.Message{Role: t.Role, Content: t.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: message})

	req := llm.Request{
		System:      persona,
		Messages:    messages,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	reply := FallbackMessage
	resp, err := s.provider.Generate(ctx, req)
	if err == nil {
		got := strings.TrimSpace(string(resp.Content))
		// Providers wrap schemaless replies as a JSON string.
		var unquoted string
		if err := json.Unmarshal(resp.Content, &unquoted); err == nil {
			got = strings.TrimSpace(unquoted)
		}
		if got != "" {
			reply = got
		}
	}

	s.history = append(s.history,
		Turn{Role: llm.RoleUser, Content: message},
		Turn{Role: llm.RoleAssistant, Content: reply},
	)

	return reply, nil
}
