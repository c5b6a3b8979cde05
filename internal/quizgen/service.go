package quizgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/morepeace/manyora/internal/llm"
)

// Config holds quiz generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for quiz generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.7,
	}
}

// Service generates quizzes from study summaries.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a quiz generation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

type quizOutput struct {
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Tier         int      `json:"tier"`
	Concept      string   `json:"concept"`
	ExaminerTip  string   `json:"examiner_tip"`
}

// Generate produces exactly QuestionCount questions covering the summary,
// biased toward the learner's prior failures when any exist.
func (s *Service) Generate(ctx context.Context, input GenerateInput) ([]Question, error) {
	ctx = llm.WithPurpose(ctx, "quiz_generation")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input)},
		},
		Schema:      QuizSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("quiz generation: %w", err)
	}

	var out quizOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse quiz response: %w", err)
	}

	questions := make([]Question, 0, len(out.Questions))
	for _, q := range out.Questions {
		questions = append(questions, Question{
			ID:           uuid.NewString(),
			Question:     q.Question,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Tier:         q.Tier,
			Concept:      q.Concept,
			ExaminerTip:  q.ExaminerTip,
		})
	}

	if err := validateQuiz(questions); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}

	return questions, nil
}

// validateQuiz enforces the structural contract on generated quizzes.
func validateQuiz(questions []Question) error {
	if len(questions) != QuestionCount {
		return fmt.Errorf("got %d questions, want %d", len(questions), QuestionCount)
	}
	for i, q := range questions {
		if q.Question == "" {
			return fmt.Errorf("question %d: empty prompt", i)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("question %d: %d options, want at least 2", i, len(q.Options))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return fmt.Errorf("question %d: correct index %d out of range", i, q.CorrectIndex)
		}
		if q.Tier < 1 || q.Tier > 3 {
			return fmt.Errorf("question %d: tier %d out of range 1-3", i, q.Tier)
		}
		if q.Concept == "" {
			return fmt.Errorf("question %d: empty concept tag", i)
		}
	}
	return nil
}
