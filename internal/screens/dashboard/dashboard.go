// Package dashboard is the home screen once a profile is loaded: a subject
// menu with per-subject progress, plus entry points for the chat assistant.
package dashboard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/morepeace/manyora/internal/profile"
	"github.com/morepeace/manyora/internal/router"
	"github.com/morepeace/manyora/internal/screen"
	"github.com/morepeace/manyora/internal/subjects"
	"github.com/morepeace/manyora/internal/ui/components"
	"github.com/morepeace/manyora/internal/ui/theme"
)

// SubjectFactory builds the study screen for one subject.
type SubjectFactory func(s subjects.Subject) screen.Screen

// AssistantFactory builds the chat screen.
type AssistantFactory func() screen.Screen

// DashboardScreen shows the learner's standing and routes into study flows.
type DashboardScreen struct {
	profile *profile.Profile
	menu    components.Menu
	hasLLM  bool
}

var _ screen.Screen = (*DashboardScreen)(nil)

// New creates the dashboard for a loaded profile. subjectScreen and
// assistantScreen may be nil when no LLM provider is configured; study
// entries are then disabled.
func New(p *profile.Profile, subjectScreen SubjectFactory, assistantScreen AssistantFactory) *DashboardScreen {
	hasLLM := subjectScreen != nil

	items := make([]components.MenuItem, 0, len(subjects.All())+2)
	for _, s := range subjects.All() {
		subj := s
		items = append(items, components.MenuItem{
			Label:    string(subj),
			Disabled: !hasLLM,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: subjectScreen(subj)}
				}
			},
		})
	}
	items = append(items, components.MenuItem{
		Label:    "Ask Manyora",
		Disabled: assistantScreen == nil,
		Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: assistantScreen()}
			}
		},
	})
	items = append(items, components.MenuItem{
		Label: "Quit",
		Action: func() tea.Cmd {
			return tea.Quit
		},
	})

	return &DashboardScreen{
		profile: p,
		menu:    components.NewMenu(items),
		hasLLM:  hasLLM,
	}
}

func (d *DashboardScreen) Title() string { return "Dashboard" }

func (d *DashboardScreen) Init() tea.Cmd { return nil }

// Profile exposes the loaded profile so the app header can render its
// mastery and discipline numbers.
func (d *DashboardScreen) Profile() *profile.Profile { return d.profile }

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	d.menu, cmd = d.menu.Update(msg)
	return d, cmd
}

func (d *DashboardScreen) View(width, height int) string {
	var b strings.Builder

	greeting := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("Hello, %s", d.profile.Name))
	standing := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Mastery %.1f   Discipline %d%%",
			d.profile.MasteryScore, d.profile.NoExcusesMetric))

	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
		Render(greeting + "\n" + standing))
	b.WriteString("\n\n")

	barWidth := width / 2
	if barWidth > 48 {
		barWidth = 48
	}
	if barWidth < 24 {
		barWidth = 24
	}

	// Menu with a progress bar beside each subject entry.
	var lines []string
	for i, item := range d.menu.Items {
		line := renderMenuLabel(item.Label, i == d.menu.Selected, item.Disabled)
		if sp := d.progressFor(item.Label); sp != nil {
			bar := components.NewProgressBar("", float64(sp.Progress)/100, true, barWidth-24)
			line = fmt.Sprintf("%-38s %s", line, bar.View())
		}
		lines = append(lines, line)
	}

	if !d.hasLLM {
		lines = append(lines, "",
			lipgloss.NewStyle().Foreground(theme.Error).
				Render("Set an LLM API key to start studying (see manyora --help)"))
	}

	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
		Render(strings.Join(lines, "\n")))
	return b.String()
}

func (d *DashboardScreen) progressFor(label string) *profile.SubjectProgress {
	s, err := subjects.Parse(label)
	if err != nil {
		return nil
	}
	return d.profile.SubjectProgress(s)
}

func renderMenuLabel(label string, selected, disabled bool) string {
	switch {
	case disabled:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("    " + label)
	case selected:
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  ▸ " + label)
	default:
		return lipgloss.NewStyle().Foreground(theme.Text).Render("    " + label)
	}
}
