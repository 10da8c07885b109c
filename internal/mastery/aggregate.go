package mastery

import "github.com/abhisek/flashmath/internal/facts"

// OperatorTotals aggregates attempts across every fact of one operator.
type OperatorTotals struct {
	Attempts int
	Correct  int
}

// Accuracy returns the correct ratio, or 0 with no attempts.
func (t OperatorTotals) Accuracy() float64 {
	if t.Attempts == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Attempts)
}

// OperatorTotals sums the tracked records per operator. The custom
// difficulty analyzer uses this to judge which operators the learner has
// already proven viable.
func (t *Tracker) OperatorTotals() map[facts.Operator]OperatorTotals {
	totals := make(map[facts.Operator]OperatorTotals)
	for f, rec := range t.records {
		agg := totals[f.Op]
		agg.Attempts += rec.Attempts
		agg.Correct += rec.Correct
		totals[f.Op] = agg
	}
	return totals
}
