// Package welcome is the first screen: pick an existing learner profile or
// create a new one. The chosen profile is loaded (or created and saved) and
// the screen replaces itself with the dashboard.
package welcome

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/morepeace/manyora/internal/profile"
	"github.com/morepeace/manyora/internal/router"
	"github.com/morepeace/manyora/internal/screen"
	"github.com/morepeace/manyora/internal/store"
	"github.com/morepeace/manyora/internal/ui/components"
	"github.com/morepeace/manyora/internal/ui/layout"
	"github.com/morepeace/manyora/internal/ui/theme"
)

// NextFactory builds the screen shown once a profile is chosen.
type NextFactory func(p *profile.Profile) screen.Screen

// profilesLoadedMsg carries the stored profile names.
type profilesLoadedMsg struct {
	Names []string
	Err   error
}

// profileReadyMsg carries the loaded or freshly created profile.
type profileReadyMsg struct {
	Profile *profile.Profile
	Err     error
}

// WelcomeScreen lets the learner pick or create a profile.
type WelcomeScreen struct {
	profiles store.ProfileRepo
	next     NextFactory

	names    []string
	selected int
	creating bool
	input    components.TextInput
	errMsg   string
	loaded   bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates the welcome screen.
func New(profiles store.ProfileRepo, next NextFactory) *WelcomeScreen {
	return &WelcomeScreen{
		profiles: profiles,
		next:     next,
		input:    components.NewTextInput("Your name...", false, 24),
	}
}

func (w *WelcomeScreen) Title() string { return "Welcome" }

func (w *WelcomeScreen) Init() tea.Cmd {
	return func() tea.Msg {
		names, err := w.profiles.List(context.Background())
		return profilesLoadedMsg{Names: names, Err: err}
	}
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	if w.creating {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Create"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case profilesLoadedMsg:
		if msg.Err != nil {
			w.errMsg = msg.Err.Error()
			return w, nil
		}
		w.names = msg.Names
		w.loaded = true
		if len(w.names) == 0 {
			w.creating = true
			return w, w.input.Init()
		}
		return w, nil

	case profileReadyMsg:
		if msg.Err != nil {
			w.errMsg = msg.Err.Error()
			return w, nil
		}
		next := w.next(msg.Profile)
		return w, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: next}
		}

	case tea.KeyMsg:
		return w.handleKey(msg)
	}

	if w.creating {
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(msg)
		return w, cmd
	}
	return w, nil
}

func (w *WelcomeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if w.creating {
		switch msg.String() {
		case "enter":
			name := strings.TrimSpace(w.input.Value())
			if name == "" {
				return w, nil
			}
			return w, w.createProfile(name)
		case "esc":
			if len(w.names) > 0 {
				w.creating = false
			}
			return w, nil
		}
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(msg)
		return w, cmd
	}

	// Option list: stored names plus a trailing "New profile" entry.
	total := len(w.names) + 1
	switch msg.String() {
	case "up", "k":
		if w.selected > 0 {
			w.selected--
		}
	case "down", "j":
		if w.selected < total-1 {
			w.selected++
		}
	case "enter":
		if w.selected == len(w.names) {
			w.creating = true
			return w, w.input.Init()
		}
		return w, w.loadProfile(w.names[w.selected])
	}
	return w, nil
}

func (w *WelcomeScreen) loadProfile(name string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		p, err := w.profiles.Load(ctx, name)
		if err != nil {
			return profileReadyMsg{Err: err}
		}
		// Picking a learner makes them the active one, so stats and the
		// next launch follow the selection even before any quiz is saved.
		if err := w.profiles.SetActive(ctx, name); err != nil {
			return profileReadyMsg{Err: err}
		}
		return profileReadyMsg{Profile: p}
	}
}

func (w *WelcomeScreen) createProfile(name string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		p := profile.New(name)
		if err := w.profiles.Save(ctx, p); err != nil {
			return profileReadyMsg{Err: err}
		}
		return profileReadyMsg{Profile: p}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(renderBanner(width))
	b.WriteString("\n\n")

	if w.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("Error: " + w.errMsg))
		return b.String()
	}

	if !w.loaded {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Loading profiles..."))
		return b.String()
	}

	if w.creating {
		prompt := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
			Render("What should we call you?")
		box := lipgloss.JoinVertical(lipgloss.Left, prompt, "", w.input.View())
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render(theme.Card.Render(box)))
		return b.String()
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).
		Render("Who is studying today?"), "")
	for i, name := range w.names {
		lines = append(lines, renderOption(name, i == w.selected))
	}
	lines = append(lines, renderOption("+ New profile", w.selected == len(w.names)))

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n")))
	return b.String()
}

func renderOption(label string, selected bool) string {
	if selected {
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
			Render("▸ " + label)
	}
	return lipgloss.NewStyle().Foreground(theme.Text).Render("  " + label)
}

func renderBanner(width int) string {
	banner := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render(bannerArt)
	tagline := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render("Your no-excuses study companion")
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(banner + "\n" + tagline)
}

const bannerArt = `
┏┳┓┏━┓┏┓╻╻ ╻┏━┓┏━┓┏━┓
┃┃┃┣━┫┃┗┫┗┳┛┃ ┃┣┳┛┣━┫
╹ ╹╹ ╹╹ ╹ ╹ ┗━┛╹┗╸╹ ╹`
