package session

// State is the phase of one study session.
type State int

const (
	// StateIdle means no material has been supplied yet.
	StateIdle State = iota

	// StateMaterialUploaded means a document is staged for analysis.
	StateMaterialUploaded

	// StateSummarizing means the summarizer and quiz generator are in flight.
	StateSummarizing

	// StateQuizReady means a summary and quiz exist but answering has not begun.
	StateQuizReady

	// StateAnswering means the learner is working through the quiz.
	StateAnswering

	// StateScored means the quiz has been scored and the ledger updated.
	StateScored

	// StateExplanationPending means a self-explanation is being evaluated.
	StateExplanationPending

	// StateComplete means the session is finished.
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMaterialUploaded:
		return "material_uploaded"
	case StateSummarizing:
		return "summarizing"
	case StateQuizReady:
		return "quiz_ready"
	case StateAnswering:
		return "answering"
	case StateScored:
		return "scored"
	case StateExplanationPending:
		return "explanation_pending"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}
