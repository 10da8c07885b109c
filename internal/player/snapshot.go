package player

import (
	"fmt"
	"time"

	"github.com/abhisek/flashmath/internal/difficulty"
	"github.com/abhisek/flashmath/internal/store"
)

// SnapshotData exports the profile for persistence. The current streak is
// session-scoped and deliberately not persisted; the best streak is.
func (p *Profile) SnapshotData() *store.PlayerSnapshotData {
	data := &store.PlayerSnapshotData{
		Name:            p.Name,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
		TotalAttempted:  p.TotalAttempted,
		TotalCorrect:    p.TotalCorrect,
		BestStreak:      p.BestStreak,
		TimeSpentMins:   p.TimeSpentMins,
		FastSolves:      p.FastSolves,
		PerfectSessions: p.PerfectSessions,
		PracticeDays:    p.PracticeDays,
		DayStreak:       p.DayStreak,
	}
	if !p.LastActive.IsZero() {
		s := p.LastActive.Format(time.RFC3339)
		data.LastActive = &s
	}
	if p.LastPracticeDay != "" {
		s := p.LastPracticeDay
		data.LastPracticeDay = &s
	}
	if len(p.levels) > 0 {
		data.LevelStats = make(map[string]*store.LevelStatsData, len(p.levels))
		for level, ls := range p.levels {
			data.LevelStats[string(level)] = &store.LevelStatsData{
				Attempted:      ls.Attempted,
				Correct:        ls.Correct,
				AvgResponseSec: ls.AvgResponseSec,
			}
		}
	}
	return data
}

// LoadProfile restores a profile from persisted data.
func LoadProfile(cfg Config, data *store.PlayerSnapshotData) (*Profile, error) {
	created, err := time.Parse(time.RFC3339, data.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("player snapshot: parse created_at: %w", err)
	}

	p := New(data.Name, cfg, created)
	p.TotalAttempted = data.TotalAttempted
	p.TotalCorrect = data.TotalCorrect
	p.BestStreak = data.BestStreak
	p.TimeSpentMins = data.TimeSpentMins
	p.FastSolves = data.FastSolves
	p.PerfectSessions = data.PerfectSessions
	p.PracticeDays = data.PracticeDays
	p.DayStreak = data.DayStreak

	if data.LastActive != nil {
		t, err := time.Parse(time.RFC3339, *data.LastActive)
		if err != nil {
			return nil, fmt.Errorf("player snapshot: parse last_active: %w", err)
		}
		p.LastActive = t
	}
	if data.LastPracticeDay != nil {
		p.LastPracticeDay = *data.LastPracticeDay
	}
	for name, ls := range data.LevelStats {
		p.levels[difficulty.Level(name)] = &LevelStats{
			Attempted:      ls.Attempted,
			Correct:        ls.Correct,
			AvgResponseSec: ls.AvgResponseSec,
		}
	}
	return p, nil
}
