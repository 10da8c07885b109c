package app

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashmath/internal/difficulty"
	"github.com/abhisek/flashmath/internal/ui/theme"
)

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	var content string
	switch m.phase {
	case phaseLoading:
		content = theme.Hint.Render("Loading...")
	case phaseMenu:
		content = m.viewMenu()
	case phaseQuestion:
		content = m.viewQuestion()
	case phaseFeedback:
		content = m.viewFeedback()
	case phaseSummary:
		content = m.viewSummary()
	case phaseError:
		content = theme.Incorrect.Render("Error: "+m.err.Error()) + "\n\n" +
			theme.Hint.Render("Press any key to exit")
	}

	v.SetContent(lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content))
	return v
}

func (m Model) viewMenu() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("FlashMath"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%s — %d solved, best streak %d",
		m.profile.Name, m.profile.TotalCorrect, m.profile.BestStreak)))
	b.WriteString("\n\n")

	recommended := m.profile.RecommendedLevel()
	for i, level := range m.menu {
		line := level.DisplayName()
		switch {
		case level == difficulty.LevelCustom && !m.profile.CanUseCustom():
			line = theme.Locked.Render(line + "  (locked)")
		case i == m.cursor:
			line = theme.Selected.Render("> " + line)
		default:
			line = theme.Unselected.Render("  " + line)
		}
		if level == recommended {
			line += theme.Hint.Render("  ★")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("↑↓ navigate · enter start · q quit"))
	return theme.Card.Render(b.String())
}

func (m Model) viewQuestion() string {
	q := m.sess.CurrentQuestion
	if q == nil {
		return theme.Hint.Render("Loading...")
	}

	snap := m.sess.Analytics.Snapshot()
	header := theme.LevelStyle(m.sess.Level).Render(m.sess.Level.DisplayName()) +
		theme.Subtitle.Render(fmt.Sprintf("  ·  question %d  ·  streak %d",
			snap.QuestionsAsked+1, snap.CurrentStreak))

	prompt := theme.Question.Render(q.Prompt() + " = ")

	body := lipgloss.JoinVertical(lipgloss.Center,
		header,
		"",
		prompt+m.input.View(),
		"",
		theme.Hint.Render("enter submit · esc end session"),
	)
	return theme.Card.Render(body)
}

func (m Model) viewFeedback() string {
	var verdict string
	if m.sess.LastAnswerCorrect {
		verdict = theme.Correct.Render("Correct!")
	} else {
		verdict = theme.Incorrect.Render("Not quite.")
		if q := m.sess.LastQuestion; q != nil {
			verdict += "\n" + theme.Body.Render(fmt.Sprintf("%s = %d", q.Prompt(), q.Answer))
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		verdict,
		"",
		theme.Hint.Render("press any key for the next question"),
	)
	return theme.Card.Render(body)
}

func (m Model) viewSummary() string {
	s := m.summary
	var b strings.Builder
	b.WriteString(theme.Title.Render("Session Summary"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("%s · %s", s.Level, s.Duration.Round(time.Second))))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("%d of %d correct (%.0f%%), best streak %d",
		s.TotalCorrect, s.TotalQuestions, s.Accuracy*100, s.BestStreak)))
	b.WriteString("\n")

	for _, r := range s.PerOperator {
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%s  %d/%d (%.0f%%)",
			r.Operator.Symbol(), r.Correct, r.Attempted, r.Accuracy*100)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("press any key to return to the menu"))
	return theme.Card.Render(b.String())
}
