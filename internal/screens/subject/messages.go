package subject

import (
	"github.com/morepeace/manyora/internal/extract"
	sess "github.com/morepeace/manyora/internal/session"
)

// materialReadyMsg is sent when document extraction finishes.
type materialReadyMsg struct {
	Material *extract.Material
	Err      error
}

// analysisDoneMsg carries the summarize + quiz-generate result.
type analysisDoneMsg struct {
	Res sess.AnalysisResult
}

// scoringDoneMsg carries the diagnostics + advisory result.
type scoringDoneMsg struct {
	Req sess.ScoreRequest
	Res sess.ScoringResult
}

// explanationDoneMsg carries the self-explanation evaluation.
type explanationDoneMsg struct {
	Res sess.ExplanationResult
}

// narrationMsg reports the narration toggle outcome.
type narrationMsg struct {
	Playing bool
	Err     error
}
