package lessons

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/morepeace/manyora/internal/llm"
)

// Service turns uploaded material into structured study summaries.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a summary generation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

type summaryOutput struct {
	Title         string   `json:"title"`
	Summary       string   `json:"summary"`
	Difficulty    string   `json:"difficulty"`
	KeyTerms      []string `json:"key_terms"`
	Prerequisites []string `json:"prerequisites"`
	NextTopic     string   `json:"next_topic"`
	RealWorldUse  string   `json:"real_world_use"`
	ExaminerNotes string   `json:"examiner_notes"`
}

// Summarize produces a Summary from material text. Input beyond
// MaxInputChars is dropped before the request is built.
func (s *Service) Summarize(ctx context.Context, input SummaryInput) (*Summary, error) {
	ctx = llm.WithPurpose(ctx, "summary")

	req := llm.Request{
		System: summarySystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildSummaryUserMessage(input)},
		},
		Schema:      SummarySchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("summary generation: %w", err)
	}

	var out summaryOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse summary response: %w", err)
	}

	sum := &Summary{
		Subject:       input.Subject,
		Title:         out.Title,
		Summary:       out.Summary,
		Difficulty:    out.Difficulty,
		KeyTerms:      out.KeyTerms,
		Prerequisites: out.Prerequisites,
		NextTopic:     out.NextTopic,
		RealWorldUse:  out.RealWorldUse,
		ExaminerNotes: out.ExaminerNotes,
	}

	if sum.Title == "" || sum.Summary == "" || sum.Difficulty == "" {
		return nil, &llm.ErrInvalidResponse{
			Err: fmt.Errorf("summary response missing required fields"),
		}
	}

	return sum, nil
}
