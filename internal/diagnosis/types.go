package diagnosis

import (
	"github.com/morepeace/manyora/internal/quizgen"
	"github.com/morepeace/manyora/internal/subjects"
)

// NoteCount is the fixed number of remediation notes per diagnosis.
const NoteCount = 3

// QuestionResult pairs a quiz question with what the learner actually did.
type QuestionResult struct {
	Question quizgen.Question

	// Selected is the learner's chosen option index, or -1 if unanswered.
	Selected int

	Correct bool
}

// DiagnoseInput is the per-question correctness matrix for one scored quiz.
type DiagnoseInput struct {
	Subject subjects.Subject
	Results []QuestionResult
}
