// Package app wires the screens, session services, and narration into the
// root Bubble Tea model.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/morepeace/manyora/internal/assistant"
	"github.com/morepeace/manyora/internal/audio"
	"github.com/morepeace/manyora/internal/llm"
	"github.com/morepeace/manyora/internal/profile"
	"github.com/morepeace/manyora/internal/router"
	"github.com/morepeace/manyora/internal/screen"
	assistantscreen "github.com/morepeace/manyora/internal/screens/assistant"
	"github.com/morepeace/manyora/internal/screens/dashboard"
	"github.com/morepeace/manyora/internal/screens/subject"
	"github.com/morepeace/manyora/internal/screens/welcome"
	"github.com/morepeace/manyora/internal/session"
	"github.com/morepeace/manyora/internal/store"
	"github.com/morepeace/manyora/internal/subjects"
	"github.com/morepeace/manyora/internal/ui/layout"
)

// Options carries the application dependencies. Store is required; the
// LLM-backed fields may be zero when no provider is configured, which
// disables study flows and chat but still lets profiles be browsed.
type Options struct {
	Store     *store.Store
	Provider  llm.Provider
	Services  session.Services
	Assistant *assistant.Service
	Narrator  *audio.Player
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts    Options
	router  *router.Router
	profile *profile.Profile
	width   int
	height  int
}

func newAppModel(opts Options) *AppModel {
	m := &AppModel{opts: opts}
	welcomeScreen := welcome.New(opts.Store.ProfileRepo(), m.dashboard)
	m.router = router.New(welcomeScreen)
	return m
}

// dashboard builds the post-login screen and remembers the active profile
// for the header.
func (m *AppModel) dashboard(p *profile.Profile) screen.Screen {
	m.profile = p

	var subjectFactory dashboard.SubjectFactory
	if m.opts.Provider != nil {
		subjectFactory = func(s subjects.Subject) screen.Screen {
			sess := session.New(s, p, m.opts.Store.ProfileRepo(), m.opts.Services)
			return subject.New(sess, m.opts.Narrator, m.opts.Store.EventRepo())
		}
	}

	var assistantFactory dashboard.AssistantFactory
	if m.opts.Assistant != nil {
		assistantFactory = func() screen.Screen {
			return assistantscreen.New(m.opts.Assistant)
		}
	}

	return dashboard.New(p, subjectFactory, assistantFactory)
}

func (m *AppModel) Init() tea.Cmd {
	return nil
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.stopNarration()
			return m, tea.Quit
		case "esc":
			if capt, ok := m.router.Active().(screen.EscCapturer); ok && capt.CapturesEsc() {
				break
			}
			if m.router.Depth() > 1 {
				m.stopNarration()
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// stopNarration halts any narration when leaving a screen, so audio never
// outlives the view that started it.
func (m *AppModel) stopNarration() {
	if m.opts.Narrator != nil {
		m.opts.Narrator.Stop()
	}
}

func (m *AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	var mastery float64
	var discipline int
	if m.profile != nil {
		mastery = m.profile.MasteryScore
		discipline = m.profile.NoExcusesMetric
	}
	header := layout.RenderHeader(title, mastery, discipline, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// speechAdapter narrows the provider's speech API to what the audio
// player needs.
type speechAdapter struct {
	synth llm.SpeechSynthesizer
}

func (a speechAdapter) Synthesize(ctx context.Context, text string) (string, error) {
	resp, err := a.synth.Synthesize(ctx, llm.SpeechRequest{Text: text})
	if err != nil {
		return "", err
	}
	return resp.AudioBase64, nil
}

// NewNarrator builds an audio player over the provider's speech endpoint.
// Returns nil when the provider has no speech support or no local playback
// command is available.
func NewNarrator(provider llm.Provider) *audio.Player {
	synth, ok := provider.(llm.SpeechSynthesizer)
	if !ok {
		return nil
	}
	out, err := audio.NewExecOutput()
	if err != nil {
		return nil
	}
	return audio.NewPlayer(speechAdapter{synth: synth}, out)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
