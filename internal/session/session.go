package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NextQuestion draws the next question from the current profile and marks it
// as displayed at now. Fails if the profile's fact domain is empty, which
// for fixed levels indicates a configuration bug and for the custom level
// means the caller should fall back to a fixed level.
func NextQuestion(state *State, now time.Time) error {
	q, err := state.Generator.Next(state.Profile, state.Tracker)
	if err != nil {
		return fmt.Errorf("next question: %w", err)
	}
	state.CurrentQuestion = &q
	state.QuestionStartTime = now
	state.Phase = PhaseActive
	return nil
}

// HandleAnswer grades the learner's raw input against the current question
// and folds the outcome into the tracker, analytics, player profile, and
// event log. Non-numeric input grades as incorrect. For the custom level the
// difficulty profile is recomputed afterward.
func HandleAnswer(state *State, learnerAnswer string, now time.Time) {
	q := state.CurrentQuestion
	if q == nil {
		return
	}

	responseTime := now.Sub(state.QuestionStartTime)
	if responseTime < 0 {
		responseTime = 0
	}

	correct := false
	if n, err := strconv.Atoi(strings.TrimSpace(learnerAnswer)); err == nil {
		correct = q.Check(n)
	}
	state.LastAnswerCorrect = correct
	state.LastAnswer = learnerAnswer

	state.Tracker.RecordOutcome(q.Fact, correct, responseTime.Seconds())
	state.Analytics.Record(q.Fact.Op, correct)
	state.Player.RecordAttempt(state.Level, correct, responseTime, now)

	if state.EventRepo != nil {
		// A failed append does not interrupt play; the snapshot at session
		// end still captures the outcome.
		_ = state.EventRepo.AppendAnswer(context.Background(), answerEvent(state, learnerAnswer, correct, responseTime))
	}

	if state.Analyzer != nil {
		state.Profile = state.Analyzer.Recompute(state.Analytics.Snapshot())
	}

	state.LastQuestion = q
	state.CurrentQuestion = nil
	state.Phase = PhaseFeedback
}

// EndSession closes out the session: the player profile is credited with the
// session-level achievements and the state moves to the summary phase.
func EndSession(state *State) {
	snap := state.Analytics.Snapshot()
	state.Player.RecordSessionEnd(snap.QuestionsAsked, snap.CorrectTotal)
	state.Phase = PhaseSummary
}
