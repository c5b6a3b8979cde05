// Package session drives the upload → summarize → quiz → score → remediate
// flow for one subject.
//
// The Session is owned by a single goroutine (the UI event loop). External
// calls happen between paired Begin*/Apply* methods: Begin* gates the
// transition and hands back a request carrying a generation token, the
// caller performs the slow work off-loop, and Apply* re-enters the machine
// with the result. Results carrying a stale generation token are dropped,
// so an abandoned analysis can never overwrite a newer session.
package session

import (
	"context"
	"time"

	"github.com/morepeace/manyora/internal/diagnosis"
	"github.com/morepeace/manyora/internal/evaluate"
	"github.com/morepeace/manyora/internal/extract"
	"github.com/morepeace/manyora/internal/governor"
	"github.com/morepeace/manyora/internal/lessons"
	"github.com/morepeace/manyora/internal/profile"
	"github.com/morepeace/manyora/internal/quizgen"
	"github.com/morepeace/manyora/internal/subjects"
)

// Summarizer produces a study summary from material text.
type Summarizer interface {
	Summarize(ctx context.Context, input lessons.SummaryInput) (*lessons.Summary, error)
}

// QuizGenerator produces a fixed-size quiz from a summary.
type QuizGenerator interface {
	Generate(ctx context.Context, input quizgen.GenerateInput) ([]quizgen.Question, error)
}

// Diagnoser produces remediation notes from a correctness matrix.
type Diagnoser interface {
	Diagnose(ctx context.Context, input diagnosis.DiagnoseInput) ([]string, error)
}

// Evaluator scores a self-explanation.
type Evaluator interface {
	Evaluate(ctx context.Context, question quizgen.Question, explanation string) (*evaluate.Evaluation, error)
}

// Advisor produces a pacing advisory.
type Advisor interface {
	Advise(ctx context.Context, input governor.Input) (*governor.Advisory, error)
}

// ProfileSaver persists the mutated profile after scoring.
type ProfileSaver interface {
	Save(ctx context.Context, p *profile.Profile) error
}

// Services bundles the external collaborators a session needs.
type Services struct {
	Summarizer Summarizer
	Quizzes    QuizGenerator
	Diagnoser  Diagnoser
	Evaluator  Evaluator
	Advisor    Advisor
}

// Session is the state machine for one subject's study flow.
type Session struct {
	subject  subjects.Subject
	profile  *profile.Profile
	profiles ProfileSaver
	svc      Services

	state      State
	processing bool
	gen        uint64

	material  *extract.Material
	summary   *lessons.Summary
	questions []quizgen.Question
	answers   map[int]int

	score      int
	errorCount int
	startedAt  time.Time

	notes      []string
	advisory   *governor.Advisory
	evaluation *evaluate.Evaluation
	notice     string
}

// New creates a session for the given subject. The profile must already
// have a progress record for the subject. profiles may be nil in tests.
func New(subject subjects.Subject, p *profile.Profile, profiles ProfileSaver, svc Services) *Session {
	return &Session{
		subject:  subject,
		profile:  p,
		profiles: profiles,
		svc:      svc,
		state:    StateIdle,
		answers:  make(map[int]int),
	}
}

// Accessors. The UI reads these every frame.

func (s *Session) State() State                     { return s.state }
func (s *Session) Subject() subjects.Subject        { return s.subject }
func (s *Session) Processing() bool                 { return s.processing }
func (s *Session) Material() *extract.Material      { return s.material }
func (s *Session) Summary() *lessons.Summary        { return s.summary }
func (s *Session) Questions() []quizgen.Question    { return s.questions }
func (s *Session) Score() int                       { return s.score }
func (s *Session) Notes() []string                  { return s.notes }
func (s *Session) Advisory() *governor.Advisory     { return s.advisory }
func (s *Session) Evaluation() *evaluate.Evaluation { return s.evaluation }
func (s *Session) Profile() *profile.Profile        { return s.profile }

// Answer returns the buffered answer for a question index, or -1.
func (s *Session) Answer(question int) int {
	if a, ok := s.answers[question]; ok {
		return a
	}
	return -1
}

// Notice returns and clears the pending user-visible notice.
func (s *Session) Notice() string {
	n := s.notice
	s.notice = ""
	return n
}

// UploadMaterial stages a document for the session. It clears any prior
// summary, quiz, score, and error counters and resets the session clock.
// Rejected while an external call is in flight. A nil material is a no-op.
func (s *Session) UploadMaterial(m *extract.Material) bool {
	if m == nil || s.processing {
		return false
	}

	s.gen++
	s.material = m
	s.summary = nil
	s.questions = nil
	s.answers = make(map[int]int)
	s.score = 0
	s.errorCount = 0
	s.notes = nil
	s.advisory = nil
	s.evaluation = nil
	s.startedAt = time.Now()
	s.state = StateMaterialUploaded
	return true
}
