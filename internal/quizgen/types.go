package quizgen

import "github.com/morepeace/manyora/internal/subjects"

// QuestionCount is the fixed size of every generated quiz.
const QuestionCount = 4

// Question is one multiple-choice quiz question. Immutable once produced
// for a session.
type Question struct {
	// ID identifies the question within its session.
	ID string

	// Question is the prompt displayed to the learner.
	Question string

	// Options holds the answer choices in display order.
	Options []string

	// CorrectIndex is the position of the right option.
	CorrectIndex int

	// Tier is the difficulty tier, 1 (easiest) to 3 (hardest).
	Tier int

	// Concept is the short tag linking this question to a knowledge unit.
	// Wrong answers are recorded against it for later remediation.
	Concept string

	// ExaminerTip is shown after scoring.
	ExaminerTip string
}

// GenerateInput holds everything needed to produce a quiz.
type GenerateInput struct {
	Subject subjects.Subject

	// SummaryText is the study summary the quiz must cover.
	SummaryText string

	// PriorFailures lists concept tags the learner previously missed.
	// When non-empty, at least one question must target one of them.
	PriorFailures []string
}
