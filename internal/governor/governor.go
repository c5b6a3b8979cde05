// Package governor obtains a pacing advisory for the current study session.
//
// The advisory is exactly that: it never blocks or ends a session. The
// decision is fully delegated to the LLM; no local thresholds are applied.
package governor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/morepeace/manyora/internal/llm"
)

// Action is the advised pacing for the session.
type Action string

const (
	ActionContinue Action = "continue"
	ActionSlow     Action = "slow"
	ActionStop     Action = "stop"
)

// Advisory is the governor's verdict after a scored quiz.
type Advisory struct {
	Action  Action
	Message string
}

// Input summarizes the session so far.
type Input struct {
	ErrorCount     int
	ElapsedMinutes float64
}

// Config holds advisory settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for pacing advisories.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   128,
		Temperature: 0.2,
	}
}

// Service queries the pacing advisor.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a governor service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// AdvisorySchema defines the JSON schema for pacing advisories.
var AdvisorySchema = &llm.Schema{
	Name:        "pacing-advisory",
	Description: "Whether the learner should continue, slow down, or take a break",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"action": map[string]any{
				"type": "string",
				"enum": []any{"continue", "slow", "stop"},
			},
			"message": map[string]any{
				"type":        "string",
				"description": "One supportive sentence explaining the advice",
			},
		},
		"required":             []any{"action", "message"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You are a study coach watching for cognitive overload. Given a student's error count and time on task, advise whether to continue, slow down, or take a break.`

type advisoryOutput struct {
	Action  string `json:"action"`
	Message string `json:"message"`
}

// Advise returns a pacing advisory for the session.
func (s *Service) Advise(ctx context.Context, input Input) (*Advisory, error) {
	ctx = llm.WithPurpose(ctx, "cognitive_load")

	userMsg := fmt.Sprintf(
		"Errors this session: %d\nMinutes elapsed: %.1f\n\nAdvise: continue, slow, or stop.",
		input.ErrorCount, input.ElapsedMinutes,
	)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      AdvisorySchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("pacing advisory: %w", err)
	}

	var out advisoryOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse advisory response: %w", err)
	}

	action := Action(out.Action)
	switch action {
	case ActionContinue, ActionSlow, ActionStop:
	default:
		return nil, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("unknown advisory action %q", out.Action),
		}
	}

	return &Advisory{Action: action, Message: out.Message}, nil
}
