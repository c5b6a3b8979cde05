package subject

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/morepeace/manyora/internal/governor"
	sess "github.com/morepeace/manyora/internal/session"
	"github.com/morepeace/manyora/internal/ui/components"
	"github.com/morepeace/manyora/internal/ui/theme"
)

func (s *SubjectScreen) View(width, height int) string {
	var body string
	switch s.session.State() {
	case sess.StateIdle, sess.StateMaterialUploaded:
		body = s.renderUpload(width)
	case sess.StateSummarizing:
		body = renderWaiting(width, "Reading your notes and building a quiz...")
	case sess.StateQuizReady:
		body = s.renderSummary(width)
	case sess.StateAnswering:
		body = s.renderQuestion(width)
	case sess.StateScored:
		body = s.renderScore(width)
	case sess.StateExplanationPending:
		body = renderWaiting(width, "Weighing your reasoning...")
	case sess.StateComplete:
		body = s.renderComplete(width)
	}

	var banners []string
	if s.errMsg != "" {
		banners = append(banners, lipgloss.NewStyle().Foreground(theme.Error).
			Render("  "+s.errMsg))
	}
	if s.notice != "" {
		banners = append(banners, lipgloss.NewStyle().Foreground(theme.Accent).
			Render("  "+s.notice))
	}
	if s.focusMode {
		banners = append(banners, lipgloss.NewStyle().Foreground(theme.Secondary).
			Render("  ● focus mode"))
	}
	if s.narrating {
		banners = append(banners, lipgloss.NewStyle().Foreground(theme.Secondary).
			Render("  ♪ narrating"))
	}

	if len(banners) == 0 {
		return body
	}
	return strings.Join(banners, "\n") + "\n\n" + body
}

func (s *SubjectScreen) renderUpload(width int) string {
	var lines []string

	lines = append(lines,
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
			Render("Upload your study material"),
		lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("PDF or plain text. Long documents are trimmed to the first pages."),
		"",
		s.input.View(),
	)

	if m := s.session.Material(); m != nil {
		lines = append(lines, "",
			lipgloss.NewStyle().Foreground(theme.Success).
				Render(fmt.Sprintf("Loaded %s (%d pages)", m.FileName, m.Pages)),
			lipgloss.NewStyle().Foreground(theme.TextDim).
				Render("Press Enter with an empty path to analyze again."))
	}

	return centered(width, theme.Card.Render(strings.Join(lines, "\n")))
}

func (s *SubjectScreen) renderSummary(width int) string {
	summary := s.session.Summary()
	if summary == nil {
		return renderWaiting(width, "No summary yet.")
	}

	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render(summary.Title)
	meta := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s · %s", summary.Subject, summary.Difficulty))

	var parts []string
	parts = append(parts, title, meta, "", wrap(summary.Summary, contentWidth(width)))

	if len(summary.KeyTerms) > 0 {
		parts = append(parts, "", section("Key terms"), "  "+strings.Join(summary.KeyTerms, ", "))
	}
	if len(summary.Prerequisites) > 0 {
		parts = append(parts, "", section("Before this, know"), "  "+strings.Join(summary.Prerequisites, ", "))
	}
	if summary.RealWorldUse != "" {
		parts = append(parts, "", section("Why it matters"), wrap(summary.RealWorldUse, contentWidth(width)))
	}
	if summary.ExaminerNotes != "" {
		parts = append(parts, "", section("Examiner notes"), wrap(summary.ExaminerNotes, contentWidth(width)))
	}
	if summary.NextTopic != "" {
		parts = append(parts, "", lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("Up next: "+summary.NextTopic))
	}

	if sp := s.session.Profile().SubjectProgress(s.session.Subject()); sp != nil && len(sp.FailureSignatures) > 0 {
		parts = append(parts, "", section("Your weak spots"))
		for _, sig := range sp.FailureSignatures {
			parts = append(parts, fmt.Sprintf("  %s (missed %d×)", sig.Concept, sig.TimesFailed))
		}
	}

	return centered(width, theme.Card.Render(strings.Join(parts, "\n")))
}

func (s *SubjectScreen) renderQuestion(width int) string {
	questions := s.session.Questions()
	if s.questionIdx >= len(questions) {
		return ""
	}
	q := questions[s.questionIdx]

	header := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Question %d of %d · tier %d",
			s.questionIdx+1, len(questions), q.Tier))

	mc := components.MultiChoice{
		Question:     q.Question,
		Options:      q.Options,
		CorrectIndex: q.CorrectIndex,
		Selected:     s.optionIdx,
		ChosenIndex:  -1,
	}

	answered := 0
	for i := range questions {
		if s.session.Answer(i) >= 0 {
			answered++
		}
	}
	progress := components.NewProgressBar("", float64(answered)/float64(len(questions)), false, 24)

	body := strings.Join([]string{header, "", mc.View(), progress.View()}, "\n")
	return centered(width, theme.Card.Render(body))
}

func (s *SubjectScreen) renderScore(width int) string {
	questions := s.session.Questions()
	score := s.session.Score()

	verdict := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	if score < len(questions)/2+1 {
		verdict = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	}

	var parts []string
	parts = append(parts,
		verdict.Render(fmt.Sprintf("You scored %d out of %d", score, len(questions))))

	if notes := s.session.Notes(); len(notes) > 0 {
		parts = append(parts, "", section("Where you went wrong"))
		for _, n := range notes {
			parts = append(parts, "  • "+wrap(n, contentWidth(width)-4))
		}
	}

	if s.showTips {
		parts = append(parts, "", section("Through the examiner's eyes"))
		for i, q := range questions {
			mark := lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
			if s.session.Answer(i) != q.CorrectIndex {
				mark = lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
			}
			parts = append(parts,
				fmt.Sprintf("  %s %s", mark, wrap(q.Question, contentWidth(width)-4)),
				lipgloss.NewStyle().Foreground(theme.TextDim).
					Render("    "+wrap(q.ExaminerTip, contentWidth(width)-6)))
		}
	}

	if adv := s.session.Advisory(); adv != nil {
		parts = append(parts, "", renderAdvisory(adv))
	}

	if s.explaining {
		parts = append(parts, "", section("In your own words"), "", s.input.View())
	}

	return centered(width, theme.Card.Render(strings.Join(parts, "\n")))
}

func (s *SubjectScreen) renderComplete(width int) string {
	var parts []string
	parts = append(parts,
		lipgloss.NewStyle().Foreground(theme.Success).Bold(true).
			Render("Session complete"))

	if ev := s.session.Evaluation(); ev != nil {
		parts = append(parts, "",
			section(fmt.Sprintf("Explanation quality: %d/100", ev.Quality)),
			wrap(ev.Feedback, contentWidth(width)))
	}

	p := s.session.Profile()
	if sp := p.SubjectProgress(s.session.Subject()); sp != nil {
		parts = append(parts, "",
			components.NewProgressBar(string(s.session.Subject()),
				float64(sp.Progress)/100, true, contentWidth(width)).View())
	}

	return centered(width, theme.Card.Render(strings.Join(parts, "\n")))
}

// renderAdvisory shows the pacing advisory. Stop advisories get the error
// color; the advice itself always comes from the model, never from local
// thresholds.
func renderAdvisory(adv *governor.Advisory) string {
	style := lipgloss.NewStyle().Foreground(theme.Secondary)
	switch adv.Action {
	case governor.ActionSlow:
		style = lipgloss.NewStyle().Foreground(theme.Accent)
	case governor.ActionStop:
		style = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	}
	return style.Render("Coach: " + adv.Message)
}

func renderWaiting(width int, msg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  " + msg)
}

func section(title string) string {
	return lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(title)
}

func centered(width int, content string) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(content)
}

func contentWidth(width int) int {
	w := width - 12
	if w > 72 {
		w = 72
	}
	if w < 24 {
		w = 24
	}
	return w
}

// wrap breaks text into lines no longer than limit, on word boundaries.
func wrap(text string, limit int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	lineLen := 0
	for i, w := range words {
		if i > 0 {
			if lineLen+1+len(w) > limit {
				b.WriteByte('\n')
				lineLen = 0
			} else {
				b.WriteByte(' ')
				lineLen++
			}
		}
		b.WriteString(w)
		lineLen += len(w)
	}
	return b.String()
}
