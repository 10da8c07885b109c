// Package analytics accumulates per-session counters: totals, streaks,
// per-operator accuracy, and a bounded window of recent outcomes consumed by
// the custom difficulty analyzer. Pure bookkeeping; the aggregator performs
// no I/O and is owned by a single session.
package analytics

import (
	"time"

	"github.com/abhisek/flashmath/internal/facts"
)

// DefaultWindowSize is the number of recent outcomes kept for the
// recent-accuracy computation.
const DefaultWindowSize = 20

// OperatorStats holds per-operator attempt counters.
type OperatorStats struct {
	Attempted int
	Correct   int
}

// Accuracy returns the correct ratio, or 0 with no attempts.
func (s OperatorStats) Accuracy() float64 {
	if s.Attempted == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempted)
}

// Aggregator accumulates one session's counters.
type Aggregator struct {
	started    time.Time
	questions  int
	correct    int
	streak     int
	bestStreak int
	perOp      map[facts.Operator]*OperatorStats

	// window is a fixed-capacity queue of recent outcomes: push on each
	// answer, evict the oldest past capacity.
	window     []bool
	windowSize int
}

// New creates an aggregator for a fresh session.
func New(windowSize int) *Aggregator {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	return &Aggregator{
		started:    time.Now(),
		perOp:      make(map[facts.Operator]*OperatorStats),
		windowSize: windowSize,
	}
}

// Record folds one answer outcome into the session counters.
func (a *Aggregator) Record(op facts.Operator, correct bool) {
	a.questions++
	if correct {
		a.correct++
		a.streak++
		if a.streak > a.bestStreak {
			a.bestStreak = a.streak
		}
	} else {
		a.streak = 0
	}

	stats := a.perOp[op]
	if stats == nil {
		stats = &OperatorStats{}
		a.perOp[op] = stats
	}
	stats.Attempted++
	if correct {
		stats.Correct++
	}

	a.window = append(a.window, correct)
	if len(a.window) > a.windowSize {
		a.window = a.window[1:]
	}
}

// RecentAccuracy returns the accuracy over the sliding window and the number
// of outcomes in it. With no outcomes both values are zero; callers decide
// what an empty sample means.
func (a *Aggregator) RecentAccuracy() (float64, int) {
	if len(a.window) == 0 {
		return 0, 0
	}
	correct := 0
	for _, c := range a.window {
		if c {
			correct++
		}
	}
	return float64(correct) / float64(len(a.window)), len(a.window)
}

// CurrentStreak returns the live consecutive-correct counter.
func (a *Aggregator) CurrentStreak() int {
	return a.streak
}

// Snapshot is an immutable copy of the session counters, safe to hand to
// other goroutines or the UI layer.
type Snapshot struct {
	QuestionsAsked int
	CorrectTotal   int
	Accuracy       float64
	CurrentStreak  int
	BestStreak     int
	RecentAccuracy float64
	RecentSample   int
	PerOperator    map[facts.Operator]OperatorStats
	Elapsed        time.Duration
}

// Snapshot returns a read-only copy of the current counters.
func (a *Aggregator) Snapshot() Snapshot {
	perOp := make(map[facts.Operator]OperatorStats, len(a.perOp))
	for op, stats := range a.perOp {
		perOp[op] = *stats
	}

	var accuracy float64
	if a.questions > 0 {
		accuracy = float64(a.correct) / float64(a.questions)
	}
	recent, sample := a.RecentAccuracy()

	return Snapshot{
		QuestionsAsked: a.questions,
		CorrectTotal:   a.correct,
		Accuracy:       accuracy,
		CurrentStreak:  a.streak,
		BestStreak:     a.bestStreak,
		RecentAccuracy: recent,
		RecentSample:   sample,
		PerOperator:    perOp,
		Elapsed:        time.Since(a.started),
	}
}
