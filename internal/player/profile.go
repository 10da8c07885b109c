// Package player holds the long-term learner profile: lifetime totals,
// per-difficulty aggregates, and achievement counters that outlive any single
// practice session.
package player

import (
	"time"

	"github.com/abhisek/flashmath/internal/difficulty"
)

// Config holds the profile policy thresholds.
type Config struct {
	// FastSolve is the response-time bound for the speed achievement.
	FastSolve time.Duration
	// CustomUnlockAttempts is the lifetime attempts required before the
	// custom difficulty mode becomes available.
	CustomUnlockAttempts int
	// PerfectSessionMin is the minimum session length that can count as a
	// perfect session.
	PerfectSessionMin int
	// RecommendMinAttempts gates the accuracy-based level recommendation;
	// below it the recommendation is always Intro.
	RecommendMinAttempts int
}

// DefaultConfig returns the standard profile policy.
func DefaultConfig() Config {
	return Config{
		FastSolve:            3 * time.Second,
		CustomUnlockAttempts: 20,
		PerfectSessionMin:    10,
		RecommendMinAttempts: 10,
	}
}

// LevelStats aggregates performance at one difficulty level.
type LevelStats struct {
	Attempted      int
	Correct        int
	AvgResponseSec float64
}

// Accuracy returns the level's fraction correct, 0 when unplayed.
func (s LevelStats) Accuracy() float64 {
	if s.Attempted == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempted)
}

// Profile is a learner's long-term record. It is not safe for concurrent
// use.
type Profile struct {
	cfg Config

	Name       string
	CreatedAt  time.Time
	LastActive time.Time

	TotalAttempted int
	TotalCorrect   int
	CurrentStreak  int
	BestStreak     int
	TimeSpentMins  float64

	levels map[difficulty.Level]*LevelStats

	FastSolves      int
	PerfectSessions int
	PracticeDays    int
	DayStreak       int
	LastPracticeDay string
}

// New creates an empty profile.
func New(name string, cfg Config, now time.Time) *Profile {
	return &Profile{
		cfg:       cfg,
		Name:      name,
		CreatedAt: now,
		levels:    make(map[difficulty.Level]*LevelStats),
	}
}

const dayLayout = "2006-01-02"

// RecordAttempt folds one graded answer into the lifetime record.
func (p *Profile) RecordAttempt(level difficulty.Level, correct bool, responseTime time.Duration, now time.Time) {
	p.TotalAttempted++
	if correct {
		p.TotalCorrect++
		p.CurrentStreak++
		if p.CurrentStreak > p.BestStreak {
			p.BestStreak = p.CurrentStreak
		}
	} else {
		p.CurrentStreak = 0
	}
	p.TimeSpentMins += responseTime.Minutes()

	ls := p.levels[level]
	if ls == nil {
		ls = &LevelStats{}
		p.levels[level] = ls
	}
	ls.Attempted++
	if correct {
		ls.Correct++
	}
	ls.AvgResponseSec += (responseTime.Seconds() - ls.AvgResponseSec) / float64(ls.Attempted)

	if responseTime < p.cfg.FastSolve {
		p.FastSolves++
	}
	p.touchPracticeDay(now)
	p.LastActive = now
}

// touchPracticeDay maintains the calendar achievements: total distinct
// practice days and the consecutive-day streak.
func (p *Profile) touchPracticeDay(now time.Time) {
	today := now.Format(dayLayout)
	if p.LastPracticeDay == today {
		return
	}
	yesterday := now.AddDate(0, 0, -1).Format(dayLayout)
	if p.LastPracticeDay == yesterday {
		p.DayStreak++
	} else {
		p.DayStreak = 1
	}
	p.PracticeDays++
	p.LastPracticeDay = today
}

// RecordSessionEnd credits a perfect session when a long enough session had
// no misses.
func (p *Profile) RecordSessionEnd(asked, correct int) {
	if asked >= p.cfg.PerfectSessionMin && correct == asked {
		p.PerfectSessions++
	}
}

// Accuracy returns the lifetime fraction correct, 0 before any attempts.
func (p *Profile) Accuracy() float64 {
	if p.TotalAttempted == 0 {
		return 0
	}
	return float64(p.TotalCorrect) / float64(p.TotalAttempted)
}

// LevelStats returns the aggregate for one level. Unplayed levels return a
// zero value.
func (p *Profile) LevelStats(level difficulty.Level) LevelStats {
	if ls := p.levels[level]; ls != nil {
		return *ls
	}
	return LevelStats{}
}

// CanUseCustom reports whether the learner has enough history for the
// custom adaptive mode.
func (p *Profile) CanUseCustom() bool {
	return p.TotalAttempted >= p.cfg.CustomUnlockAttempts
}

// RecommendedLevel suggests a fixed level from accuracy averaged over the
// levels the learner has actually played.
func (p *Profile) RecommendedLevel() difficulty.Level {
	if p.TotalAttempted < p.cfg.RecommendMinAttempts {
		return difficulty.LevelIntro
	}

	sum, played := 0.0, 0
	for _, ls := range p.levels {
		if ls.Attempted > 0 {
			sum += ls.Accuracy()
			played++
		}
	}
	if played == 0 {
		return difficulty.LevelIntro
	}

	switch avg := sum / float64(played); {
	case avg < 0.60:
		return difficulty.LevelIntro
	case avg < 0.75:
		return difficulty.LevelBasic
	case avg < 0.85:
		return difficulty.LevelMedium
	default:
		return difficulty.LevelHard
	}
}
