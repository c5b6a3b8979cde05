package dashboard

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morepeace/manyora/internal/profile"
	"github.com/morepeace/manyora/internal/router"
	"github.com/morepeace/manyora/internal/screen"
	"github.com/morepeace/manyora/internal/subjects"
)

type stubScreen struct{ title string }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(width, height int) string           { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestSelectSubjectPushesStudyScreen(t *testing.T) {
	var opened subjects.Subject
	d := New(profile.New("Tari"),
		func(s subjects.Subject) screen.Screen {
			opened = s
			return &stubScreen{title: string(s)}
		},
		func() screen.Screen { return &stubScreen{title: "chat"} },
	)

	// First item is Maths; enter should push its study screen.
	_, cmd := d.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	push, ok := msg.(router.PushScreenMsg)
	require.True(t, ok, "expected PushScreenMsg, got %T", msg)
	assert.Equal(t, subjects.Maths, opened)
	assert.Equal(t, "Maths", push.Screen.Title())
}

func TestSelectAssistant(t *testing.T) {
	d := New(profile.New("Tari"),
		func(s subjects.Subject) screen.Screen { return &stubScreen{title: string(s)} },
		func() screen.Screen { return &stubScreen{title: "chat"} },
	)

	// Ask Manyora sits directly below the five subjects.
	for i := 0; i < len(subjects.All()); i++ {
		d.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	_, cmd := d.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)

	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "chat", push.Screen.Title())
}

func TestNoProviderDisablesStudy(t *testing.T) {
	d := New(profile.New("Tari"), nil, nil)

	// Only Quit is selectable, so enter quits immediately.
	_, cmd := d.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	view := d.View(80, 24)
	assert.Contains(t, view, "Set an LLM API key")
}

func TestViewShowsStandingAndProgress(t *testing.T) {
	p := profile.New("Tari")
	p.SubjectProgress(subjects.Maths).Progress = 40

	d := New(p,
		func(s subjects.Subject) screen.Screen { return &stubScreen{title: string(s)} },
		func() screen.Screen { return &stubScreen{title: "chat"} },
	)

	view := d.View(100, 30)
	assert.Contains(t, view, "Hello, Tari")
	assert.Contains(t, view, "Discipline 100%")
	for _, s := range subjects.All() {
		assert.True(t, strings.Contains(view, string(s)), "missing subject %s", s)
	}
}
