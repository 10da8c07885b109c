package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SnapshotVersion is the current snapshot data format version.
const SnapshotVersion = 1

// SnapshotKeep is how many snapshots Prune retains by default.
const SnapshotKeep = 10

// SnapshotData captures the full learner state at a point in time.
type SnapshotData struct {
	Version int                  `json:"version"`
	Tracker *TrackerSnapshotData `json:"tracker,omitempty"`
	Player  *PlayerSnapshotData  `json:"player,omitempty"`
}

// TrackerSnapshotData is the persisted form of the mastery tracker.
type TrackerSnapshotData struct {
	// Seq is the tracker's last-issued last-seen sequence number.
	Seq int64 `json:"seq"`
	// Created is the tracker's last-issued creation counter.
	Created int64 `json:"created"`
	// Facts maps canonical fact keys to their records.
	Facts map[string]*FactRecordData `json:"facts"`
}

// FactRecordData is the persisted form of a single fact record.
type FactRecordData struct {
	Attempts       int     `json:"attempts"`
	Correct        int     `json:"correct"`
	Streak         int     `json:"streak"`
	AvgResponseSec float64 `json:"avg_response_sec"`
	LastSeen       int64   `json:"last_seen"`
	Created        int64   `json:"created"`
}

// PlayerSnapshotData is the persisted form of the long-term player profile.
type PlayerSnapshotData struct {
	Name            string                     `json:"name"`
	CreatedAt       string                     `json:"created_at"`
	LastActive      *string                    `json:"last_active,omitempty"`
	TotalAttempted  int                        `json:"total_attempted"`
	TotalCorrect    int                        `json:"total_correct"`
	BestStreak      int                        `json:"best_streak"`
	TimeSpentMins   float64                    `json:"time_spent_mins"`
	LevelStats      map[string]*LevelStatsData `json:"level_stats,omitempty"`
	FastSolves      int                        `json:"fast_solves"`
	PerfectSessions int                        `json:"perfect_sessions"`
	PracticeDays    int                        `json:"practice_days"`
	DayStreak       int                        `json:"day_streak"`
	LastPracticeDay *string                    `json:"last_practice_day,omitempty"`
}

// LevelStatsData is the persisted per-difficulty-level aggregate.
type LevelStatsData struct {
	Attempted      int     `json:"attempted"`
	Correct        int     `json:"correct"`
	AvgResponseSec float64 `json:"avg_response_sec"`
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

type snapshotRepo struct {
	db *sql.DB
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO snapshots (sequence, timestamp, data) VALUES (?, ?, ?)`,
		snap.Sequence, snap.Timestamp, string(data),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, sequence, timestamp, data FROM snapshots ORDER BY timestamp DESC, id DESC LIMIT 1`,
	)

	var (
		snap Snapshot
		raw  string
	)
	err := row.Scan(&snap.ID, &snap.Sequence, &snap.Timestamp, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	if err := json.Unmarshal([]byte(raw), &snap.Data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot data: %w", err)
	}
	return &snap, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE id NOT IN (
			SELECT id FROM snapshots ORDER BY timestamp DESC, id DESC LIMIT ?
		)`, keep,
	)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
