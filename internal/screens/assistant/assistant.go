// Package assistant is the chat screen: a scrollback of turns with the
// study companion persona and a single-line prompt.
package assistant

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/morepeace/manyora/internal/assistant"
	"github.com/morepeace/manyora/internal/llm"
	"github.com/morepeace/manyora/internal/screen"
	"github.com/morepeace/manyora/internal/ui/components"
	"github.com/morepeace/manyora/internal/ui/layout"
	"github.com/morepeace/manyora/internal/ui/theme"
)

// replyMsg carries the assistant's answer.
type replyMsg struct {
	Answer string
}

// AssistantScreen implements screen.Screen for the chat.
type AssistantScreen struct {
	svc     *assistant.Service
	input   components.TextInput
	waiting bool
}

var _ screen.Screen = (*AssistantScreen)(nil)
var _ screen.KeyHintProvider = (*AssistantScreen)(nil)

// New creates the chat screen over a shared assistant service, so the
// conversation survives leaving and re-entering the screen.
func New(svc *assistant.Service) *AssistantScreen {
	return &AssistantScreen{
		svc:   svc,
		input: components.NewTextInput("Ask anything...", false, 240),
	}
}

func (a *AssistantScreen) Title() string { return "Ask Manyora" }

func (a *AssistantScreen) Init() tea.Cmd { return a.input.Init() }

func (a *AssistantScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Ctrl+R", Description: "New conversation"},
		{Key: "Esc", Description: "Back"},
	}
}

func (a *AssistantScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		a.waiting = false
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if a.waiting {
				return a, nil
			}
			text := strings.TrimSpace(a.input.Value())
			if text == "" {
				return a, nil
			}
			a.input = components.NewTextInput("Ask anything...", false, 240)
			a.waiting = true
			return a, tea.Batch(a.input.Init(), a.ask(text))
		case "ctrl+r":
			a.svc.Reset()
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// ask runs the chat call. The service swallows provider failures and
// returns its fallback line, so the reply is always renderable.
func (a *AssistantScreen) ask(text string) tea.Cmd {
	return func() tea.Msg {
		answer, _ := a.svc.Ask(context.Background(), text)
		return replyMsg{Answer: answer}
	}
}

func (a *AssistantScreen) View(width, height int) string {
	cw := width - 8
	if cw > 80 {
		cw = 80
	}
	if cw < 24 {
		cw = 24
	}

	userStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	botStyle := lipgloss.NewStyle().Foreground(theme.Text)

	var lines []string
	for _, turn := range a.svc.History() {
		switch turn.Role {
		case llm.RoleUser:
			lines = append(lines, userStyle.Render("You: ")+turn.Content)
		case llm.RoleAssistant:
			lines = append(lines, botStyle.Render("Manyora: "+turn.Content))
		}
		lines = append(lines, "")
	}

	if len(lines) == 0 {
		lines = append(lines,
			lipgloss.NewStyle().Foreground(theme.TextDim).
				Render("Stuck on something? Ask away."), "")
	}
	if a.waiting {
		lines = append(lines,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Manyora is thinking..."), "")
	}

	// Keep the tail of the conversation in view.
	maxLines := height - 6
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}

	body := strings.Join(lines, "\n") + "\n" + a.input.View()
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Width(cw).Render(body))
}
