package mastery

// Record holds the rolling performance statistics for a single fact.
// Records are owned exclusively by the Tracker.
type Record struct {
	// Attempts is the total number of times the fact was asked.
	Attempts int
	// Correct is the number of correct answers. Always <= Attempts.
	Correct int
	// Streak is the current consecutive-correct counter. Resets on a miss.
	Streak int
	// AvgResponseSec is the running mean response time in seconds.
	AvgResponseSec float64
	// LastSeen is the tracker-issued sequence number of the most recent
	// attempt. Sequence numbers, not wall-clock time, keep recency ordering
	// deterministic.
	LastSeen int64
	// Created is the tracker-issued creation counter, used as the final
	// tie-break when selecting weakest facts.
	Created int64
}

// Accuracy returns the correct ratio, or the neutral score for an
// unattempted record.
func (r *Record) Accuracy() float64 {
	if r.Attempts == 0 {
		return NeutralScore
	}
	return float64(r.Correct) / float64(r.Attempts)
}

// score computes the mastery score for the record: accuracy blended with a
// capped streak bonus. More recent correct answers never decrease the score;
// more recent incorrect answers never increase it.
func (r *Record) score(cfg Config) float64 {
	if r.Attempts == 0 {
		return NeutralScore
	}
	streak := r.Streak
	if streak > cfg.StreakCap {
		streak = cfg.StreakCap
	}
	bonus := float64(streak) / float64(cfg.StreakCap)
	return clamp(cfg.AccuracyWeight*r.Accuracy()+cfg.StreakWeight*bonus, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
