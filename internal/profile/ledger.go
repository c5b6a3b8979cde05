// Package profile holds the learner profile and the progress ledger: the
// rules by which quiz results, explanation evaluations, and disengagement
// events mutate persisted learner state.
package profile

import (
	"time"

	"github.com/morepeace/manyora/internal/subjects"
)

// masteryPerCorrect is the mastery reward per correct quiz answer.
const masteryPerCorrect = 2

// progressPerCorrect is the subject progress gain per correct quiz answer.
const progressPerCorrect = 5

// QuizResult is the outcome of one scored quiz for a subject.
type QuizResult struct {
	Score           int      // number of correct answers
	MissedConcepts  []string // concept tags of questions answered wrong
	DiagnosticNotes []string
}

// ApplyQuizResult folds a scored quiz into the subject's progress record:
//
//   - progress increases by 5 per correct answer, clamped to 100
//   - each missed concept either increments an existing failure signature
//     or appends a new one; the list keeps only the 10 most recent
//   - diagnostic notes are appended, keeping only the 5 most recent
//   - the profile mastery score increases by 2 per correct answer
//
// An unknown subject is a no-op: subjects are a closed set, so there is
// nothing sensible to create and nothing to report.
func (p *Profile) ApplyQuizResult(s subjects.Subject, r QuizResult, now time.Time) {
	sp := p.SubjectProgress(s)
	if sp == nil {
		return
	}

	sp.Progress = min(100, sp.Progress+r.Score*progressPerCorrect)

	for _, concept := range r.MissedConcepts {
		merged := false
		for i := range sp.FailureSignatures {
			if sp.FailureSignatures[i].Concept == concept {
				sp.FailureSignatures[i].TimesFailed++
				sp.FailureSignatures[i].LastFailed = now
				merged = true
				break
			}
		}
		if !merged {
			sp.FailureSignatures = append(sp.FailureSignatures, FailureSignature{
				Concept:     concept,
				TimesFailed: 1,
				LastFailed:  now,
				TrapType:    DefaultTrapType,
			})
		}
	}
	if n := len(sp.FailureSignatures); n > MaxFailureSignatures {
		sp.FailureSignatures = sp.FailureSignatures[n-MaxFailureSignatures:]
	}

	sp.DiagnosticNotes = append(sp.DiagnosticNotes, r.DiagnosticNotes...)
	if n := len(sp.DiagnosticNotes); n > MaxDiagnosticNotes {
		sp.DiagnosticNotes = sp.DiagnosticNotes[n-MaxDiagnosticNotes:]
	}

	sp.CompletedQuizzes++
	sp.LastActivity = now.Format(time.RFC3339)

	p.MasteryScore += float64(r.Score * masteryPerCorrect)
}

// AddMastery adds a mastery reward, e.g. quality/10 from a scored
// self-explanation.
func (p *Profile) AddMastery(delta float64) {
	p.MasteryScore += delta
}

// RecordDisengagement applies the focus-mode penalty: NoExcusesMetric drops
// by 5, floored at 0.
func (p *Profile) RecordDisengagement() {
	p.NoExcusesMetric -= disengagementPenalty
	if p.NoExcusesMetric < 0 {
		p.NoExcusesMetric = 0
	}
}
