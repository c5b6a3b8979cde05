// Package subject drives one subject's study flow: upload material, read
// the summary, take the quiz, review remediation, and explain reasoning.
// All slow work runs in commands; the session machine itself is only
// touched on the update loop.
package subject

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/morepeace/manyora/internal/audio"
	"github.com/morepeace/manyora/internal/extract"
	"github.com/morepeace/manyora/internal/screen"
	sess "github.com/morepeace/manyora/internal/session"
	"github.com/morepeace/manyora/internal/store"
	"github.com/morepeace/manyora/internal/ui/components"
	"github.com/morepeace/manyora/internal/ui/layout"
)

// SubjectScreen implements screen.Screen for the study flow.
type SubjectScreen struct {
	session  *sess.Session
	narrator *audio.Player
	events   store.EventRepo

	input       components.TextInput
	questionIdx int
	optionIdx   int
	explaining  bool
	showTips    bool
	focusMode   bool
	narrating   bool
	notice      string
	errMsg      string
}

var _ screen.Screen = (*SubjectScreen)(nil)
var _ screen.KeyHintProvider = (*SubjectScreen)(nil)
var _ screen.EscCapturer = (*SubjectScreen)(nil)

// New creates the study screen. narrator may be nil when the configured
// provider has no speech endpoint; events may be nil in tests.
func New(session *sess.Session, narrator *audio.Player, events store.EventRepo) *SubjectScreen {
	return &SubjectScreen{
		session:  session,
		narrator: narrator,
		events:   events,
		input:    components.NewTextInput("Path to notes (.pdf or .txt)...", false, 120),
	}
}

func (s *SubjectScreen) Title() string {
	return string(s.session.Subject())
}

func (s *SubjectScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *SubjectScreen) KeyHints() []layout.KeyHint {
	switch s.session.State() {
	case sess.StateIdle, sess.StateMaterialUploaded:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Upload"},
			{Key: "F", Description: s.focusLabel()},
			{Key: "Esc", Description: "Back"},
		}
	case sess.StateQuizReady:
		hints := []layout.KeyHint{{Key: "S", Description: "Start quiz"}}
		if s.narrator != nil {
			hints = append(hints, layout.KeyHint{Key: "N", Description: "Narrate"})
		}
		return append(hints, layout.KeyHint{Key: "F", Description: s.focusLabel()})
	case sess.StateAnswering:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Lock in"},
			{Key: "←→", Description: "Question"},
		}
	case sess.StateScored:
		if s.explaining {
			return []layout.KeyHint{
				{Key: "Enter", Description: "Submit"},
				{Key: "Esc", Description: "Cancel"},
			}
		}
		return []layout.KeyHint{
			{Key: "E", Description: "Explain your answer"},
			{Key: "T", Description: "Examiner tips"},
			{Key: "R", Description: "Retake"},
			{Key: "S", Description: "Skip"},
		}
	case sess.StateComplete:
		return []layout.KeyHint{
			{Key: "R", Description: "Retake"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return nil
}

// CapturesEsc keeps Esc on this screen while typing an explanation, so
// cancelling the text box does not also leave the subject.
func (s *SubjectScreen) CapturesEsc() bool {
	return s.explaining
}

func (s *SubjectScreen) focusLabel() string {
	if s.focusMode {
		return "Focus mode off"
	}
	return "Focus mode on"
}

func (s *SubjectScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case materialReadyMsg:
		return s.handleMaterial(msg)

	case analysisDoneMsg:
		s.session.ApplyAnalysis(msg.Res)
		s.notice = s.session.Notice()
		if s.session.State() == sess.StateQuizReady {
			return s, s.appendEvent(store.ActionSummarized, 0, s.session.Summary().Title)
		}
		return s, nil

	case scoringDoneMsg:
		if err := s.session.ApplyScoring(context.Background(), msg.Req, msg.Res); err != nil {
			s.errMsg = err.Error()
		}
		s.notice = s.session.Notice()
		return s, s.appendEvent(store.ActionQuizSubmitted, s.session.Score(), "")

	case explanationDoneMsg:
		if err := s.session.ApplyExplanation(context.Background(), msg.Res); err != nil {
			s.errMsg = err.Error()
		}
		s.notice = s.session.Notice()
		if s.session.State() == sess.StateComplete {
			return s, s.appendEvent(store.ActionExplanation, 0, "")
		}
		return s, nil

	case narrationMsg:
		s.narrating = msg.Playing
		if msg.Err != nil {
			s.notice = fmt.Sprintf("Narration unavailable: %v", msg.Err)
		}
		if s.narrating {
			return s, s.watchNarration()
		}
		return s, nil

	case tea.BlurMsg:
		return s.handleBlur()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.inputActive() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// inputActive reports whether the text input owns non-key messages.
func (s *SubjectScreen) inputActive() bool {
	st := s.session.State()
	return st == sess.StateIdle || st == sess.StateMaterialUploaded ||
		(st == sess.StateScored && s.explaining)
}

func (s *SubjectScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	// Focus mode toggles everywhere except while typing.
	if msg.String() == "f" && !s.inputActive() {
		s.focusMode = !s.focusMode
		return s, nil
	}

	switch s.session.State() {
	case sess.StateIdle, sess.StateMaterialUploaded:
		return s.handleUploadKey(msg)
	case sess.StateQuizReady:
		return s.handleReadyKey(msg)
	case sess.StateAnswering:
		return s.handleAnswerKey(msg)
	case sess.StateScored:
		return s.handleScoredKey(msg)
	case sess.StateComplete:
		if msg.String() == "r" && s.session.Retake() {
			s.resetQuizCursor()
			return s, s.appendEvent(store.ActionRetake, 0, "")
		}
	}
	return s, nil
}

func (s *SubjectScreen) handleUploadKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "enter" {
		path := strings.TrimSpace(s.input.Value())
		if path == "" {
			if s.session.State() == sess.StateMaterialUploaded {
				return s, s.startAnalysis()
			}
			return s, nil
		}
		return s, s.loadMaterial(path)
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SubjectScreen) handleReadyKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "s":
		if s.session.StartQuiz() {
			s.resetQuizCursor()
			return s, s.appendEvent(store.ActionQuizStarted, 0, "")
		}
	case "n":
		return s, s.toggleNarration()
	}
	return s, nil
}

func (s *SubjectScreen) handleAnswerKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	questions := s.session.Questions()
	if len(questions) == 0 {
		return s, nil
	}
	q := questions[s.questionIdx]

	switch msg.String() {
	case "up", "k":
		if s.optionIdx > 0 {
			s.optionIdx--
		}
	case "down", "j":
		if s.optionIdx < len(q.Options)-1 {
			s.optionIdx++
		}
	case "left", "h":
		if s.questionIdx > 0 {
			s.questionIdx--
			s.syncOptionCursor()
		}
	case "right", "l":
		if s.questionIdx < len(questions)-1 {
			s.questionIdx++
			s.syncOptionCursor()
		}
	case "enter":
		s.session.SelectAnswer(s.questionIdx, s.optionIdx)
		if s.questionIdx < len(questions)-1 {
			s.questionIdx++
			s.syncOptionCursor()
			return s, nil
		}
		return s, s.submitQuiz()
	}
	return s, nil
}

func (s *SubjectScreen) handleScoredKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.explaining {
		switch msg.String() {
		case "enter":
			text := strings.TrimSpace(s.input.Value())
			return s, s.submitExplanation(text)
		case "esc":
			s.explaining = false
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	switch msg.String() {
	case "e":
		s.explaining = true
		s.input = components.NewTextInput("Why was your answer right (or wrong)?", false, 240)
		return s, s.input.Init()
	case "t":
		s.showTips = !s.showTips
	case "r":
		if s.session.Retake() {
			s.resetQuizCursor()
			return s, s.appendEvent(store.ActionRetake, 0, "")
		}
	case "s":
		s.session.Skip()
	}
	return s, nil
}

// handleBlur records a disengagement when focus mode is armed: the
// discipline metric drops and the event is journaled.
func (s *SubjectScreen) handleBlur() (screen.Screen, tea.Cmd) {
	if !s.focusMode {
		return s, nil
	}
	s.session.Profile().RecordDisengagement()
	s.notice = "Focus lost. Discipline slipped."
	return s, s.appendEvent(store.ActionDisengagement, 0, "")
}

func (s *SubjectScreen) handleMaterial(msg materialReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.notice = fmt.Sprintf("Could not read that file: %v", msg.Err)
		return s, nil
	}
	if !s.session.UploadMaterial(msg.Material) {
		return s, nil
	}
	s.notice = ""
	if msg.Material.Truncated {
		s.notice = fmt.Sprintf("Only the first %d pages were read.", extract.MaxPages)
	}
	return s, tea.Batch(
		s.appendEvent(store.ActionMaterialUploaded, 0, msg.Material.FileName),
		s.startAnalysis(),
	)
}

func (s *SubjectScreen) resetQuizCursor() {
	s.questionIdx = 0
	s.optionIdx = 0
	s.explaining = false
	s.showTips = false
}

// syncOptionCursor moves the option cursor onto the buffered answer for
// the current question, if any.
func (s *SubjectScreen) syncOptionCursor() {
	if a := s.session.Answer(s.questionIdx); a >= 0 {
		s.optionIdx = a
	} else {
		s.optionIdx = 0
	}
}

func (s *SubjectScreen) loadMaterial(path string) tea.Cmd {
	return func() tea.Msg {
		m, err := extract.FromFile(path)
		return materialReadyMsg{Material: m, Err: err}
	}
}

func (s *SubjectScreen) startAnalysis() tea.Cmd {
	gen, text, priorFailures, ok := s.session.BeginAnalysis()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		return analysisDoneMsg{Res: s.session.Analyze(context.Background(), gen, text, priorFailures)}
	}
}

func (s *SubjectScreen) submitQuiz() tea.Cmd {
	req, ok := s.session.SubmitQuiz()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		return scoringDoneMsg{Req: req, Res: s.session.Remediate(context.Background(), req)}
	}
}

func (s *SubjectScreen) submitExplanation(text string) tea.Cmd {
	q, gen, ok := s.session.BeginExplanation(text)
	if !ok {
		return nil
	}
	s.explaining = false
	return func() tea.Msg {
		return explanationDoneMsg{Res: s.session.Evaluate(context.Background(), gen, q, text)}
	}
}

func (s *SubjectScreen) toggleNarration() tea.Cmd {
	if s.narrator == nil {
		return nil
	}
	summary := s.session.Summary()
	if summary == nil {
		return nil
	}
	text := summary.Summary
	return func() tea.Msg {
		playing, err := s.narrator.Toggle(context.Background(), text)
		return narrationMsg{Playing: playing, Err: err}
	}
}

// narrationPollInterval paces the check that clears the narration banner
// once playback reaches its natural end.
const narrationPollInterval = 500 * time.Millisecond

// watchNarration polls the player so the banner follows actual playback
// state; the poll stops on the first tick that finds playback over.
func (s *SubjectScreen) watchNarration() tea.Cmd {
	return tea.Tick(narrationPollInterval, func(time.Time) tea.Msg {
		return narrationMsg{Playing: s.narrator.IsPlaying()}
	})
}

func (s *SubjectScreen) appendEvent(action string, score int, detail string) tea.Cmd {
	if s.events == nil {
		return nil
	}
	data := store.SessionEventData{
		Profile: s.session.Profile().Name,
		Subject: string(s.session.Subject()),
		Action:  action,
		Score:   score,
		Detail:  detail,
	}
	return func() tea.Msg {
		_ = s.events.AppendSessionEvent(context.Background(), data)
		return nil
	}
}
