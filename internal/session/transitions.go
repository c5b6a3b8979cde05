package session

import (
	"context"
	"fmt"
	"time"

	"github.com/morepeace/manyora/internal/diagnosis"
	"github.com/morepeace/manyora/internal/evaluate"
	"github.com/morepeace/manyora/internal/governor"
	"github.com/morepeace/manyora/internal/lessons"
	"github.com/morepeace/manyora/internal/profile"
	"github.com/morepeace/manyora/internal/quizgen"
)

// AnalysisResult carries the outcome of the summarize + quiz-generate pair.
type AnalysisResult struct {
	Gen       uint64
	Summary   *lessons.Summary
	Questions []quizgen.Question
	Err       error
}

// Analyze runs the summarizer and quiz generator for the staged material.
// It must be called after BeginAnalysis, off the owning goroutine, and its
// result handed to ApplyAnalysis.
func (s *Session) Analyze(ctx context.Context, gen uint64, text string, priorFailures []string) AnalysisResult {
	summary, err := s.svc.Summarizer.Summarize(ctx, lessons.SummaryInput{
		Subject: s.subject,
		Text:    text,
	})
	if err != nil {
		return AnalysisResult{Gen: gen, Err: err}
	}

	questions, err := s.svc.Quizzes.Generate(ctx, quizgen.GenerateInput{
		Subject:       s.subject,
		SummaryText:   summary.Summary,
		PriorFailures: priorFailures,
	})
	if err != nil {
		return AnalysisResult{Gen: gen, Err: err}
	}

	return AnalysisResult{Gen: gen, Summary: summary, Questions: questions}
}

// BeginAnalysis transitions MaterialUploaded → Summarizing and returns what
// Analyze needs. ok is false when no material is staged or a call is
// already in flight.
func (s *Session) BeginAnalysis() (gen uint64, text string, priorFailures []string, ok bool) {
	if s.state != StateMaterialUploaded || s.processing || s.material == nil {
		return 0, "", nil, false
	}

	s.processing = true
	s.state = StateSummarizing

	if sp := s.profile.SubjectProgress(s.subject); sp != nil {
		priorFailures = sp.FailureConcepts()
	}
	return s.gen, s.material.Text, priorFailures, true
}

// ApplyAnalysis re-enters the machine with an analysis result. Stale
// results (from a superseded upload or retake) are dropped. On failure the
// machine reverts to MaterialUploaded with a user-visible notice; no
// partial state is kept.
func (s *Session) ApplyAnalysis(res AnalysisResult) {
	if res.Gen != s.gen {
		return
	}
	s.processing = false

	if res.Err != nil {
		s.state = StateMaterialUploaded
		s.summary = nil
		s.questions = nil
		s.notice = fmt.Sprintf("Analysis failed: %v", res.Err)
		return
	}

	s.summary = res.Summary
	s.questions = res.Questions
	s.answers = make(map[int]int)
	s.state = StateQuizReady
}

// StartQuiz transitions QuizReady → Answering.
func (s *Session) StartQuiz() bool {
	if s.state != StateQuizReady {
		return false
	}
	s.state = StateAnswering
	return true
}

// SelectAnswer buffers the learner's choice for a question. Out-of-range
// indices are ignored.
func (s *Session) SelectAnswer(question, option int) bool {
	if s.state != StateAnswering {
		return false
	}
	if question < 0 || question >= len(s.questions) {
		return false
	}
	if option < 0 || option >= len(s.questions[question].Options) {
		return false
	}
	s.answers[question] = option
	return true
}

// ScoreRequest is what the remediation calls need after scoring.
type ScoreRequest struct {
	Gen     uint64
	Results []diagnosis.QuestionResult
	Input   governor.Input
}

// ScoringResult carries the outcome of the diagnostics + advisory pair.
type ScoringResult struct {
	Gen      uint64
	Notes    []string
	Advisory *governor.Advisory
	Err      error
}

// SubmitQuiz scores the answer buffer and transitions Answering → Scored.
// Questions with no buffered answer count as incorrect. The returned
// request feeds Remediate; ok is false outside Answering.
func (s *Session) SubmitQuiz() (ScoreRequest, bool) {
	if s.state != StateAnswering || s.processing {
		return ScoreRequest{}, false
	}

	results := make([]diagnosis.QuestionResult, len(s.questions))
	score := 0
	for i, q := range s.questions {
		selected := -1
		if a, ok := s.answers[i]; ok && a >= 0 && a < len(q.Options) {
			selected = a
		}
		correct := selected == q.CorrectIndex
		if correct {
			score++
		}
		results[i] = diagnosis.QuestionResult{
			Question: q,
			Selected: selected,
			Correct:  correct,
		}
	}

	s.score = score
	s.errorCount += len(s.questions) - score
	s.state = StateScored
	s.processing = true

	return ScoreRequest{
		Gen:     s.gen,
		Results: results,
		Input: governor.Input{
			ErrorCount:     s.errorCount,
			ElapsedMinutes: time.Since(s.startedAt).Minutes(),
		},
	}, true
}

// Remediate runs the diagnostics and pacing-advisory calls for a scored
// quiz. An advisory failure is non-fatal; a diagnostics failure is reported
// through ScoringResult.Err.
func (s *Session) Remediate(ctx context.Context, req ScoreRequest) ScoringResult {
	res := ScoringResult{Gen: req.Gen}

	notes, err := s.svc.Diagnoser.Diagnose(ctx, diagnosis.DiagnoseInput{
		Subject: s.subject,
		Results: req.Results,
	})
	if err != nil {
		res.Err = err
	} else {
		res.Notes = notes
	}

	if s.svc.Advisor != nil {
		if adv, err := s.svc.Advisor.Advise(ctx, req.Input); err == nil {
			res.Advisory = adv
		}
	}

	return res
}

// ApplyScoring folds remediation results into the profile ledger and
// persists it. The score always counts, even when diagnostics failed; in
// that case a notice is set and no new notes are recorded.
func (s *Session) ApplyScoring(ctx context.Context, req ScoreRequest, res ScoringResult) error {
	if res.Gen != s.gen {
		return nil
	}
	s.processing = false

	if res.Err != nil {
		s.notice = "Analysis error"
	}
	s.notes = res.Notes
	s.advisory = res.Advisory

	s.profile.ApplyQuizResult(s.subject, profile.QuizResult{
		Score:           s.score,
		MissedConcepts:  diagnosis.MissedConcepts(req.Results),
		DiagnosticNotes: res.Notes,
	}, time.Now())

	return s.saveProfile(ctx)
}

// BeginExplanation transitions Scored → ExplanationPending for the
// learner's free-text reasoning about the first question. Blank text is a
// silent no-op.
func (s *Session) BeginExplanation(text string) (quizgen.Question, uint64, bool) {
	if s.state != StateScored || s.processing || text == "" || len(s.questions) == 0 {
		return quizgen.Question{}, 0, false
	}
	s.processing = true
	s.state = StateExplanationPending
	return s.questions[0], s.gen, true
}

// ExplanationResult carries the outcome of the evaluation call.
type ExplanationResult struct {
	Gen        uint64
	Evaluation *evaluate.Evaluation
	Err        error
}

// Evaluate runs the explanation evaluator.
func (s *Session) Evaluate(ctx context.Context, gen uint64, question quizgen.Question, text string) ExplanationResult {
	ev, err := s.svc.Evaluator.Evaluate(ctx, question, text)
	if err != nil {
		return ExplanationResult{Gen: gen, Err: err}
	}
	return ExplanationResult{Gen: gen, Evaluation: ev}
}

// ApplyExplanation rewards mastery by quality/10 and completes the
// session. On failure the machine reverts to Scored.
func (s *Session) ApplyExplanation(ctx context.Context, res ExplanationResult) error {
	if res.Gen != s.gen {
		return nil
	}
	s.processing = false

	if res.Err != nil {
		s.state = StateScored
		s.notice = "Evaluation failed; you can try again."
		return nil
	}

	s.evaluation = res.Evaluation
	s.profile.AddMastery(float64(res.Evaluation.Quality) / 10)
	s.state = StateComplete

	return s.saveProfile(ctx)
}

// Skip completes the session without a self-explanation.
func (s *Session) Skip() bool {
	if s.state != StateScored || s.processing {
		return false
	}
	s.state = StateComplete
	return true
}

// Retake returns to QuizReady for another attempt at the same quiz. The
// answer buffer, score, and explanation feedback are cleared; the summary
// and questions are preserved.
func (s *Session) Retake() bool {
	if s.processing {
		return false
	}
	if s.state != StateScored && s.state != StateComplete {
		return false
	}

	s.gen++
	s.answers = make(map[int]int)
	s.score = 0
	s.notes = nil
	s.advisory = nil
	s.evaluation = nil
	s.state = StateQuizReady
	return true
}

func (s *Session) saveProfile(ctx context.Context) error {
	if s.profiles == nil {
		return nil
	}
	if err := s.profiles.Save(ctx, s.profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
