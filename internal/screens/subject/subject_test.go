package subject

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/morepeace/manyora/internal/audio"
	"github.com/morepeace/manyora/internal/diagnosis"
	"github.com/morepeace/manyora/internal/evaluate"
	"github.com/morepeace/manyora/internal/extract"
	"github.com/morepeace/manyora/internal/governor"
	"github.com/morepeace/manyora/internal/lessons"
	"github.com/morepeace/manyora/internal/profile"
	"github.com/morepeace/manyora/internal/quizgen"
	sess "github.com/morepeace/manyora/internal/session"
	"github.com/morepeace/manyora/internal/store"
	"github.com/morepeace/manyora/internal/subjects"
)

type stubServices struct{}

func (stubServices) Summarize(context.Context, lessons.SummaryInput) (*lessons.Summary, error) {
	return &lessons.Summary{
		Subject:    subjects.Maths,
		Title:      "Fractions",
		Summary:    "Parts of a whole.",
		Difficulty: "Foundation",
	}, nil
}

func (stubServices) Generate(context.Context, quizgen.GenerateInput) ([]quizgen.Question, error) {
	qs := make([]quizgen.Question, 4)
	for i := range qs {
		qs[i] = quizgen.Question{
			ID:           fmt.Sprintf("q%d", i),
			Question:     fmt.Sprintf("Q%d?", i),
			Options:      []string{"A", "B", "C", "D"},
			CorrectIndex: 0,
			ExaminerTip:  fmt.Sprintf("tip%d", i),
			Tier:         1,
			Concept:      fmt.Sprintf("c%d", i),
		}
	}
	return qs, nil
}

func (stubServices) Diagnose(context.Context, diagnosis.DiagnoseInput) ([]string, error) {
	return []string{"n1", "n2", "n3"}, nil
}

func (stubServices) Advise(context.Context, governor.Input) (*governor.Advisory, error) {
	return &governor.Advisory{Action: governor.ActionContinue, Message: "steady"}, nil
}

func (stubServices) Evaluate(context.Context, quizgen.Question, string) (*evaluate.Evaluation, error) {
	return &evaluate.Evaluation{Quality: 80, Feedback: "solid"}, nil
}

func newTestScreen(t *testing.T) (*SubjectScreen, *profile.Profile) {
	t.Helper()
	st, err := store.OpenInMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	p := profile.New("Tari")
	svc := stubServices{}
	session := sess.New(subjects.Maths, p, st.ProfileRepo(), sess.Services{
		Summarizer: svc,
		Quizzes:    svc,
		Diagnoser:  svc,
		Evaluator:  svc,
		Advisor:    svc,
	})
	return New(session, nil, st.EventRepo()), p
}

// drive feeds a message through Update, running any resulting command
// chains to completion.
func drive(t *testing.T, s *SubjectScreen, msg tea.Msg) {
	t.Helper()
	_, cmd := s.Update(msg)
	runCmd(t, s, cmd)
}

func runCmd(t *testing.T, s *SubjectScreen, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, c := range msg {
			runCmd(t, s, c)
		}
	case materialReadyMsg, analysisDoneMsg, scoringDoneMsg, explanationDoneMsg, narrationMsg:
		_, next := s.Update(msg)
		runCmd(t, s, next)
	}
	// Other messages (cursor blinks and the like) are dropped: following
	// them would spin the real-time tick loop.
}

func uploadAndAnalyze(t *testing.T, s *SubjectScreen) {
	t.Helper()
	drive(t, s, materialReadyMsg{Material: &extract.Material{
		FileName: "notes.txt", Pages: 1, Text: "fractions",
	}})
	if s.session.State() != sess.StateQuizReady {
		t.Fatalf("state = %v, want quiz_ready", s.session.State())
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestUploadRunsAnalysis(t *testing.T) {
	s, _ := newTestScreen(t)
	uploadAndAnalyze(t, s)

	if s.session.Summary() == nil || len(s.session.Questions()) != 4 {
		t.Fatal("analysis did not populate the session")
	}
}

func TestAnswerFlowScoresAndRemediates(t *testing.T) {
	s, p := newTestScreen(t)
	uploadAndAnalyze(t, s)

	drive(t, s, keyPress('s'))
	if s.session.State() != sess.StateAnswering {
		t.Fatalf("state = %v, want answering", s.session.State())
	}

	// Lock in option A (correct) for all four questions; the last enter
	// submits and the scoring chain runs synchronously through drive.
	for i := 0; i < 4; i++ {
		drive(t, s, tea.KeyPressMsg{Code: tea.KeyEnter})
	}

	if s.session.State() != sess.StateScored {
		t.Fatalf("state = %v, want scored", s.session.State())
	}
	if s.session.Score() != 4 {
		t.Errorf("score = %d, want 4", s.session.Score())
	}
	if len(s.session.Notes()) != 3 {
		t.Errorf("notes = %v", s.session.Notes())
	}
	sp := p.SubjectProgress(subjects.Maths)
	if sp.Progress != 20 {
		t.Errorf("progress = %d, want 20", sp.Progress)
	}
}

func TestExaminerTipsToggle(t *testing.T) {
	s, _ := newTestScreen(t)
	uploadAndAnalyze(t, s)
	drive(t, s, keyPress('s'))
	for i := 0; i < 4; i++ {
		drive(t, s, tea.KeyPressMsg{Code: tea.KeyEnter})
	}

	if view := s.View(100, 40); strings.Contains(view, "tip0") {
		t.Fatal("tips shown before toggle")
	}
	drive(t, s, keyPress('t'))
	if view := s.View(100, 40); !strings.Contains(view, "tip0") {
		t.Error("tips missing after toggle")
	}
	drive(t, s, keyPress('t'))
	if view := s.View(100, 40); strings.Contains(view, "tip3") {
		t.Error("tips shown after toggling off")
	}
}

func TestExplanationCompletesSession(t *testing.T) {
	s, p := newTestScreen(t)
	uploadAndAnalyze(t, s)
	drive(t, s, keyPress('s'))
	for i := 0; i < 4; i++ {
		drive(t, s, tea.KeyPressMsg{Code: tea.KeyEnter})
	}

	drive(t, s, keyPress('e'))
	if !s.explaining {
		t.Fatal("expected explanation input")
	}
	for _, r := range "because" {
		drive(t, s, keyPress(r))
	}
	drive(t, s, tea.KeyPressMsg{Code: tea.KeyEnter})

	if s.session.State() != sess.StateComplete {
		t.Fatalf("state = %v, want complete", s.session.State())
	}
	// 4 correct * 2 mastery + 80/10 from the explanation.
	if p.MasteryScore != 16 {
		t.Errorf("mastery = %v, want 16", p.MasteryScore)
	}
}

func TestRetakeFromScored(t *testing.T) {
	s, _ := newTestScreen(t)
	uploadAndAnalyze(t, s)
	drive(t, s, keyPress('s'))
	for i := 0; i < 4; i++ {
		drive(t, s, tea.KeyPressMsg{Code: tea.KeyEnter})
	}

	summary := s.session.Summary()
	drive(t, s, keyPress('r'))

	if s.session.State() != sess.StateQuizReady {
		t.Fatalf("state = %v, want quiz_ready", s.session.State())
	}
	if s.session.Summary() != summary {
		t.Error("retake must keep the summary")
	}
	if s.questionIdx != 0 || s.optionIdx != 0 {
		t.Error("quiz cursor not reset")
	}
}

func TestBlurWithFocusModeRecordsDisengagement(t *testing.T) {
	s, p := newTestScreen(t)
	uploadAndAnalyze(t, s)

	// Blur without focus mode is a no-op.
	drive(t, s, tea.BlurMsg{})
	if p.NoExcusesMetric != 100 {
		t.Fatalf("metric = %d, want 100", p.NoExcusesMetric)
	}

	drive(t, s, keyPress('f'))
	if !s.focusMode {
		t.Fatal("focus mode not armed")
	}
	drive(t, s, tea.BlurMsg{})
	if p.NoExcusesMetric != 95 {
		t.Errorf("metric = %d, want 95", p.NoExcusesMetric)
	}
}

func TestNarrationWithoutNarratorIsNoOp(t *testing.T) {
	s, _ := newTestScreen(t)
	uploadAndAnalyze(t, s)

	_, cmd := s.Update(keyPress('n'))
	if cmd != nil {
		t.Fatal("expected no narration command without a narrator")
	}
}

// fixedSynth returns a one-sample PCM clip for any text.
type fixedSynth struct{}

func (fixedSynth) Synthesize(context.Context, string) (string, error) {
	return base64.StdEncoding.EncodeToString([]byte{0, 0, 100, 0}), nil
}

// manualOutput lets the test end playback explicitly.
type manualOutput struct {
	mu   sync.Mutex
	done func()
}

func (o *manualOutput) Start(_ *audio.Buffer, onDone func()) (func(), error) {
	o.mu.Lock()
	o.done = onDone
	o.mu.Unlock()
	return func() {}, nil
}

func (o *manualOutput) finish() {
	o.mu.Lock()
	done := o.done
	o.mu.Unlock()
	done()
}

func TestNarrationBannerClearsWhenPlaybackEnds(t *testing.T) {
	s, _ := newTestScreen(t)
	out := &manualOutput{}
	s.narrator = audio.NewPlayer(fixedSynth{}, out)
	uploadAndAnalyze(t, s)

	_, cmd := s.Update(keyPress('n'))
	if cmd == nil {
		t.Fatal("expected narration command")
	}
	updated, watch := s.Update(cmd())
	s = updated.(*SubjectScreen)
	if !s.narrating {
		t.Fatal("expected narrating after toggle")
	}
	if watch == nil {
		t.Fatal("expected a playback watch command")
	}

	out.finish()
	updated, _ = s.Update(watch())
	s = updated.(*SubjectScreen)
	if s.narrating {
		t.Error("banner still up after playback reached its end")
	}
}
