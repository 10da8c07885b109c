// Package session runs a single practice session: it wires the question
// generator, mastery tracker, session analytics, and player profile
// together, grades answers, and recomputes the custom difficulty profile as
// the learner plays.
package session

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/flashmath/internal/analytics"
	"github.com/abhisek/flashmath/internal/difficulty"
	"github.com/abhisek/flashmath/internal/generator"
	"github.com/abhisek/flashmath/internal/mastery"
	"github.com/abhisek/flashmath/internal/player"
	"github.com/abhisek/flashmath/internal/store"
)

// Phase represents the current phase of the session.
type Phase int

const (
	PhaseActive   Phase = iota // Serving questions
	PhaseFeedback              // Showing answer feedback
	PhaseSummary               // Showing the summary screen
)

// State tracks the runtime state of an active session. It is owned by a
// single game loop and is not safe for concurrent use.
type State struct {
	// SessionID is the UUID for this session.
	SessionID string

	// Level is the selected difficulty level.
	Level difficulty.Level

	// Profile is the difficulty profile questions are generated from. For
	// fixed levels it never changes; for the custom level the analyzer
	// recomputes it after every graded answer.
	Profile difficulty.Profile

	// Analyzer is set only for the custom level.
	Analyzer *difficulty.Analyzer

	Tracker   *mastery.Tracker
	Player    *player.Profile
	Analytics *analytics.Aggregator
	Generator *generator.Generator

	// EventRepo receives one answer event per graded answer. May be nil.
	EventRepo store.EventRepo

	// CurrentQuestion is the active question (nil between questions).
	CurrentQuestion *generator.Question

	// QuestionStartTime is when the current question was first displayed.
	QuestionStartTime time.Time

	// LastAnswerCorrect records whether the most recent answer was correct.
	LastAnswerCorrect bool

	// LastAnswer is the learner's most recent raw input, kept for feedback.
	LastAnswer string

	// LastQuestion is the most recently graded question, kept for feedback.
	LastQuestion *generator.Question

	// StartTime is when the session began.
	StartTime time.Time

	Phase Phase
}

// NewState starts a session at the given level. For the custom level the
// analyzer bootstraps its profile from the tracker's history; fixed levels
// use their static profile.
func NewState(level difficulty.Level, tr *mastery.Tracker, prof *player.Profile, events store.EventRepo, rng *rand.Rand, now time.Time) *State {
	s := &State{
		SessionID: uuid.New().String(),
		Level:     level,
		Tracker:   tr,
		Player:    prof,
		Analytics: analytics.New(analytics.DefaultWindowSize),
		Generator: generator.New(generator.DefaultConfig(), rng),
		EventRepo: events,
		StartTime: now,
		Phase:     PhaseActive,
	}
	if level == difficulty.LevelCustom {
		s.Analyzer = difficulty.NewAnalyzer(difficulty.DefaultConfig())
		s.Profile = s.Analyzer.Bootstrap(tr)
	} else {
		s.Profile = difficulty.ForLevel(level)
	}
	return s
}
