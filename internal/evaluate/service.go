// Package evaluate scores a learner's free-text self-explanation.
package evaluate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/morepeace/manyora/internal/llm"
	"github.com/morepeace/manyora/internal/quizgen"
)

// Evaluation is the scored result of a self-explanation.
type Evaluation struct {
	// Quality is 0-100; the profile's mastery score grows by Quality/10.
	Quality int

	// Feedback is a one-line comment for the learner.
	Feedback string
}

// Config holds evaluation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for explanation evaluation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   256,
		Temperature: 0.3,
	}
}

// Service scores self-explanations against a reference question.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates an evaluation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// EvaluationSchema defines the JSON schema for explanation scoring.
var EvaluationSchema = &llm.Schema{
	Name:        "explanation-evaluation",
	Description: "Quality score and feedback for a learner's self-explanation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"quality": map[string]any{
				"type":        "integer",
				"description": "How sound the reasoning is, 0 (none) to 100 (rigorous)",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "One encouraging sentence on how to improve the reasoning",
			},
		},
		"required":             []any{"quality", "feedback"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You are a tutor assessing how well a student can justify their answer. Score the reasoning, not the answer itself.`

type evaluationOutput struct {
	Quality  int    `json:"quality"`
	Feedback string `json:"feedback"`
}

// Evaluate scores the learner's explanation of their reasoning for the
// given question.
func (s *Service) Evaluate(ctx context.Context, question quizgen.Question, explanation string) (*Evaluation, error) {
	ctx = llm.WithPurpose(ctx, "explanation_evaluation")

	userMsg := fmt.Sprintf(
		"Question: %s\nCorrect answer: %s\n\nStudent's explanation of their reasoning:\n%s\n\nScore the explanation from 0 to 100 and give one line of feedback.",
		question.Question,
		question.Options[question.CorrectIndex],
		explanation,
	)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      EvaluationSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("explanation evaluation: %w", err)
	}

	var out evaluationOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse evaluation response: %w", err)
	}

	if out.Quality < 0 || out.Quality > 100 {
		return nil, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("quality %d out of range 0-100", out.Quality),
		}
	}

	return &Evaluation{Quality: out.Quality, Feedback: out.Feedback}, nil
}
