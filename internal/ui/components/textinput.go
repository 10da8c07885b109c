package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// AnswerInput wraps bubbles/textinput for numeric answer entry. It accepts
// digits plus a leading minus sign, since subtraction facts can have
// negative answers.
type AnswerInput struct {
	Model textinput.Model
}

// NewAnswerInput creates a focused answer input.
func NewAnswerInput() AnswerInput {
	ti := textinput.New()
	ti.Placeholder = "?"
	ti.CharLimit = 7
	ti.Focus()
	return AnswerInput{Model: ti}
}

// Init returns the initial command.
func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

// Update handles messages, dropping non-numeric key presses.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		if len(key) == 1 && !allowedRune(key[0], a.Model.Value()) {
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

// View renders the input.
func (a AnswerInput) View() string {
	return a.Model.View()
}

// Value returns the trimmed current input.
func (a AnswerInput) Value() string {
	return strings.TrimSpace(a.Model.Value())
}

// Reset clears the input for the next question.
func (a *AnswerInput) Reset() {
	a.Model.SetValue("")
}

func allowedRune(c byte, current string) bool {
	if c >= '0' && c <= '9' {
		return true
	}
	return c == '-' && current == ""
}
