// Package app is the Bubble Tea front end: a menu for picking a difficulty
// level, the question loop, and the end-of-session summary. Learner state is
// loaded from the latest snapshot at startup and written back when a session
// ends.
package app

import (
	"math/rand"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flashmath/internal/difficulty"
	"github.com/abhisek/flashmath/internal/mastery"
	"github.com/abhisek/flashmath/internal/player"
	"github.com/abhisek/flashmath/internal/session"
	"github.com/abhisek/flashmath/internal/store"
	"github.com/abhisek/flashmath/internal/ui/components"
)

// Options carries the app's injected dependencies.
type Options struct {
	SnapshotRepo store.SnapshotRepo
	EventRepo    store.EventRepo

	// PlayerName names a fresh profile when no snapshot exists.
	PlayerName string
}

type phase int

const (
	phaseLoading phase = iota
	phaseMenu
	phaseQuestion
	phaseFeedback
	phaseSummary
	phaseError
)

// Model is the root Bubble Tea model.
type Model struct {
	opts   Options
	width  int
	height int
	phase  phase

	tracker *mastery.Tracker
	profile *player.Profile

	menu   []difficulty.Level
	cursor int

	sess    *session.State
	input   components.AnswerInput
	summary *session.Summary

	err error
}

func newModel(opts Options) Model {
	menu := append([]difficulty.Level{}, difficulty.FixedLevels()...)
	menu = append(menu, difficulty.LevelCustom)
	return Model{
		opts:  opts,
		phase: phaseLoading,
		menu:  menu,
		input: components.NewAnswerInput(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(loadState(m.opts), m.input.Init())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case stateLoadedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			m.phase = phaseError
			return m, nil
		}
		m.tracker = msg.Tracker
		m.profile = msg.Profile
		m.phase = phaseMenu
		m.cursor = m.menuIndex(m.profile.RecommendedLevel())
		return m, nil

	case snapshotSavedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			m.phase = phaseError
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.phase == phaseQuestion {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		if m.sess != nil && m.phase != phaseSummary {
			m.endSession()
			return m, tea.Sequence(saveState(m.opts, m.tracker, m.profile), tea.Quit)
		}
		return m, tea.Quit
	}

	switch m.phase {
	case phaseMenu:
		return m.handleMenuKey(msg)
	case phaseQuestion:
		return m.handleQuestionKey(msg)
	case phaseFeedback:
		return m.advanceQuestion()
	case phaseSummary:
		m.phase = phaseMenu
		m.sess = nil
		m.summary = nil
		return m, nil
	case phaseError:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.menu)-1 {
			m.cursor++
		}
	case "enter":
		level := m.menu[m.cursor]
		if level == difficulty.LevelCustom && !m.profile.CanUseCustom() {
			return m, nil
		}
		return m.startSession(level)
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleQuestionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.input.Value() == "" {
			return m, nil
		}
		session.HandleAnswer(m.sess, m.input.Value(), time.Now())
		m.phase = phaseFeedback
		return m, nil
	case "esc":
		m.endSession()
		return m, saveState(m.opts, m.tracker, m.profile)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) startSession(level difficulty.Level) (tea.Model, tea.Cmd) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	m.sess = session.NewState(level, m.tracker, m.profile, m.opts.EventRepo, rng, time.Now())
	return m.advanceQuestion()
}

func (m Model) advanceQuestion() (tea.Model, tea.Cmd) {
	if err := session.NextQuestion(m.sess, time.Now()); err != nil {
		// An empty fact domain ends the session rather than crashing it.
		m.endSession()
		return m, saveState(m.opts, m.tracker, m.profile)
	}
	m.input.Reset()
	m.phase = phaseQuestion
	return m, nil
}

func (m *Model) endSession() {
	session.EndSession(m.sess)
	m.summary = session.BuildSummary(m.sess)
	m.phase = phaseSummary
}

func (m Model) menuIndex(level difficulty.Level) int {
	for i, l := range m.menu {
		if l == level {
			return i
		}
	}
	return 0
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newModel(opts))
	_, err := p.Run()
	return err
}
