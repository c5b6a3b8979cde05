package profile

import (
	"time"

	"github.com/morepeace/manyora/internal/subjects"
)

// Limits on the bounded per-subject history lists. When a list grows past
// its cap, the oldest entries are dropped (FIFO).
const (
	MaxFailureSignatures = 10
	MaxDiagnosticNotes   = 5
)

// DefaultTrapType labels failure signatures recorded at quiz-merge time.
// Finer-grained trap classification comes out of the diagnostics step but is
// not merged back into signatures (kept as-is from the reference behavior).
const DefaultTrapType = "Logical Gap"

// disengagementPenalty is subtracted from NoExcusesMetric each time the
// learner loses focus while focus mode is on.
const disengagementPenalty = 5

// FailureSignature records a recurring conceptual weakness. Identity within
// a subject is the concept tag: repeated failures on the same concept
// increment TimesFailed in place.
type FailureSignature struct {
	Concept     string    `json:"concept"`
	TimesFailed int       `json:"timesFailed"`
	LastFailed  time.Time `json:"lastFailed"`
	TrapType    string    `json:"trapType"`
}

// SubjectProgress is the per-subject slice of a learner profile. One record
// exists per subject from profile creation; records are never added or
// removed afterwards.
type SubjectProgress struct {
	Subject                 subjects.Subject   `json:"subject"`
	Progress                int                `json:"progress"` // 0-100
	LastActivity            string             `json:"lastActivity"`
	CompletedQuizzes        int                `json:"completedQuizzes"`
	TimeToMasteryWeeks      int                `json:"timeToMasteryWeeks"`
	DiagnosticNotes         []string           `json:"diagnosticNotes"`
	FailureSignatures       []FailureSignature `json:"failureSignatures"`
	MasteryPrerequisitesMet bool               `json:"masteryPrerequisitesMet"`
}

// FailureConcepts returns the concept tags of all recorded failure
// signatures, oldest first. Used to bias quiz generation toward
// previously failed concepts.
func (sp *SubjectProgress) FailureConcepts() []string {
	out := make([]string, 0, len(sp.FailureSignatures))
	for _, f := range sp.FailureSignatures {
		out = append(out, f.Concept)
	}
	return out
}

// Profile is the persisted record for one named learner.
type Profile struct {
	Name              string            `json:"name"`
	Progress          []SubjectProgress `json:"progress"`
	Theme             string            `json:"theme"`
	MasteryScore      float64           `json:"masteryScore"`
	NoExcusesMetric   int               `json:"noExcusesMetric"` // 0-100
	LearningStyle     string            `json:"learningStyle"`
	StreakImprovement int               `json:"streakImprovement"`
}

// New creates a fresh profile with default values: zero progress in every
// subject, mastery 0, full discipline metric.
func New(name string) *Profile {
	prog := make([]SubjectProgress, 0, len(subjects.All()))
	for _, s := range subjects.All() {
		prog = append(prog, SubjectProgress{
			Subject:            s,
			LastActivity:       "None",
			TimeToMasteryWeeks: 4,
		})
	}
	return &Profile{
		Name:            name,
		Progress:        prog,
		Theme:           "light",
		NoExcusesMetric: 100,
		LearningStyle:   "Practical",
	}
}

// SubjectProgress returns the progress record for the given subject, or nil
// if the subject is not in the profile. Subjects are a closed set, so nil
// only happens for values that were never valid.
func (p *Profile) SubjectProgress(s subjects.Subject) *SubjectProgress {
	for i := range p.Progress {
		if p.Progress[i].Subject == s {
			return &p.Progress[i]
		}
	}
	return nil
}
