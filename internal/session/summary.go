package session

import (
	"time"

	"github.com/abhisek/flashmath/internal/facts"
	"github.com/abhisek/flashmath/internal/store"
)

// Summary holds the data displayed on the summary screen.
type Summary struct {
	Level          string
	Duration       time.Duration
	TotalQuestions int
	TotalCorrect   int
	Accuracy       float64
	BestStreak     int
	PerOperator    []OperatorResult
}

// OperatorResult is one operator's line on the summary screen, in tier
// order.
type OperatorResult struct {
	Operator  facts.Operator
	Attempted int
	Correct   int
	Accuracy  float64
}

// BuildSummary creates a Summary from the current session state.
func BuildSummary(state *State) *Summary {
	snap := state.Analytics.Snapshot()

	var results []OperatorResult
	for _, op := range facts.AllOperators() {
		st, ok := snap.PerOperator[op]
		if !ok || st.Attempted == 0 {
			continue
		}
		results = append(results, OperatorResult{
			Operator:  op,
			Attempted: st.Attempted,
			Correct:   st.Correct,
			Accuracy:  st.Accuracy(),
		})
	}

	return &Summary{
		Level:          state.Level.DisplayName(),
		Duration:       time.Since(state.StartTime),
		TotalQuestions: snap.QuestionsAsked,
		TotalCorrect:   snap.CorrectTotal,
		Accuracy:       snap.Accuracy,
		BestStreak:     snap.BestStreak,
		PerOperator:    results,
	}
}

// answerEvent builds the persisted record of one graded answer.
func answerEvent(state *State, learnerAnswer string, correct bool, responseTime time.Duration) store.AnswerEventData {
	q := state.CurrentQuestion
	return store.AnswerEventData{
		SessionID:     state.SessionID,
		FactKey:       q.Fact.Key(),
		Operator:      q.Fact.Op.String(),
		Level:         string(state.Level),
		Question:      q.Prompt(),
		LearnerAnswer: learnerAnswer,
		Correct:       correct,
		TimeMs:        int(responseTime.Milliseconds()),
	}
}
