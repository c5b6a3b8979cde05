package diagnosis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/morepeace/manyora/internal/llm"
)

// Config holds diagnosis settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for diagnosis.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 0.4,
	}
}

// Service turns a scored quiz into remediation notes.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a diagnosis service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

type notesOutput struct {
	Notes []string `json:"notes"`
}

// Diagnose returns exactly NoteCount remediation notes for the given
// correctness matrix.
func (s *Service) Diagnose(ctx context.Context, input DiagnoseInput) ([]string, error) {
	ctx = llm.WithPurpose(ctx, "diagnosis")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input)},
		},
		Schema:      NotesSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("diagnosis: %w", err)
	}

	var out notesOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse diagnosis response: %w", err)
	}

	notes := make([]string, 0, NoteCount)
	for _, n := range out.Notes {
		if strings.TrimSpace(n) == "" {
			continue
		}
		notes = append(notes, n)
	}

	if len(notes) != NoteCount {
		return nil, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("got %d diagnostic notes, want %d", len(notes), NoteCount),
		}
	}

	return notes, nil
}

// MissedConcepts extracts the concept tags of incorrectly answered
// questions, one per missed question. Repeats are deliberate: the
// profile ledger merges them, so missing two questions on the same
// concept bumps its failure count twice.
func MissedConcepts(results []QuestionResult) []string {
	var out []string
	for _, r := range results {
		if r.Correct || r.Question.Concept == "" {
			continue
		}
		out = append(out, r.Question.Concept)
	}
	return out
}
