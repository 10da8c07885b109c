package mastery

import (
	"sort"

	"github.com/abhisek/flashmath/internal/facts"
)

// NeutralScore is the mastery score assigned to facts that have never been
// attempted.
const NeutralScore = 0.5

const (
	// DefaultStreakCap is the streak length at which the streak bonus maxes out.
	DefaultStreakCap = 5
	// DefaultRetireMinAttempts is the minimum attempts before a fact can retire.
	DefaultRetireMinAttempts = 5
	// DefaultRetireScore is the mastery score above which a fact retires.
	DefaultRetireScore = 0.9
)

// Config holds the tunable scoring and retirement policy.
type Config struct {
	// AccuracyWeight and StreakWeight blend accuracy with the streak bonus.
	// They should sum to 1.
	AccuracyWeight float64
	StreakWeight   float64
	// StreakCap bounds the streak bonus.
	StreakCap int
	// RetireMinAttempts and RetireScore gate fact retirement.
	RetireMinAttempts int
	RetireScore       float64
}

// DefaultConfig returns the standard scoring policy.
func DefaultConfig() Config {
	return Config{
		AccuracyWeight:    0.7,
		StreakWeight:      0.3,
		StreakCap:         DefaultStreakCap,
		RetireMinAttempts: DefaultRetireMinAttempts,
		RetireScore:       DefaultRetireScore,
	}
}

// Tracker maps facts to their performance records and answers how well the
// learner knows each fact. One tracker is owned by the active session and
// accessed from a single goroutine; background persistence must work from
// Snapshot copies, never from the live tracker.
type Tracker struct {
	cfg     Config
	records map[facts.Fact]*Record
	seq     int64
	created int64
}

// NewTracker creates an empty tracker.
func NewTracker(cfg Config) *Tracker {
	if cfg.StreakCap <= 0 {
		cfg.StreakCap = DefaultStreakCap
	}
	return &Tracker{
		cfg:     cfg,
		records: make(map[facts.Fact]*Record),
	}
}

// RecordOutcome updates the fact's record with an answer outcome, creating
// the record on first sight. A negative response time is a measurement
// artifact and clamps to zero.
func (t *Tracker) RecordOutcome(f facts.Fact, correct bool, responseSec float64) {
	if responseSec < 0 {
		responseSec = 0
	}

	rec := t.records[f]
	if rec == nil {
		t.created++
		rec = &Record{Created: t.created}
		t.records[f] = rec
	}

	rec.Attempts++
	if correct {
		rec.Correct++
		rec.Streak++
	} else {
		rec.Streak = 0
	}

	// Incremental mean keeps the update O(1) and drift-free.
	rec.AvgResponseSec += (responseSec - rec.AvgResponseSec) / float64(rec.Attempts)

	t.seq++
	rec.LastSeen = t.seq
}

// Score returns the mastery score in [0,1] for the fact. Unseen facts score
// the neutral 0.5.
func (t *Tracker) Score(f facts.Fact) float64 {
	rec := t.records[f]
	if rec == nil {
		return NeutralScore
	}
	return rec.score(t.cfg)
}

// Lookup returns the record for a fact, or nil if it has never been seen.
// The returned record is live; callers must not mutate it.
func (t *Tracker) Lookup(f facts.Fact) *Record {
	return t.records[f]
}

// Len returns the number of tracked facts.
func (t *Tracker) Len() int {
	return len(t.records)
}

// WeakestFacts returns the n candidates with the lowest mastery score.
// Ties break by lowest attempt count, then earliest creation order, so
// repeated calls over identical state return identical results. Candidates
// that have never been seen keep their relative input order last in the
// tie-break chain.
func (t *Tracker) WeakestFacts(candidates []facts.Fact, n int) []facts.Fact {
	if n <= 0 || len(candidates) == 0 {
		return nil
	}

	ranked := make([]facts.Fact, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := t.Score(ranked[i]), t.Score(ranked[j])
		if si != sj {
			return si < sj
		}
		ai, aj := t.attempts(ranked[i]), t.attempts(ranked[j])
		if ai != aj {
			return ai < aj
		}
		return t.createdOrder(ranked[i]) < t.createdOrder(ranked[j])
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// ReadyForRetirement reports whether the fact is mastered well enough to
// appear less often: enough attempts and a score above the retirement
// threshold.
func (t *Tracker) ReadyForRetirement(f facts.Fact) bool {
	rec := t.records[f]
	if rec == nil {
		return false
	}
	return rec.Attempts >= t.cfg.RetireMinAttempts && rec.score(t.cfg) > t.cfg.RetireScore
}

func (t *Tracker) attempts(f facts.Fact) int {
	if rec := t.records[f]; rec != nil {
		return rec.Attempts
	}
	return 0
}

// createdOrder ranks unseen facts after every tracked record; the stable
// sort preserves their input order among themselves.
func (t *Tracker) createdOrder(f facts.Fact) int64 {
	if rec := t.records[f]; rec != nil {
		return rec.Created
	}
	return int64(^uint64(0) >> 1)
}
