package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"
)

// sequenceCounter manages the global monotonic sequence number shared across
// all event types. Per-table auto-increment IDs can't establish cross-type
// ordering, so a single counter assigns an increasing sequence to every
// event, enabling:
//
//   - Cross-type ordering when new event tables are added
//   - Snapshot consistency (query events with sequence > snapshot.sequence)
//   - Append-only guarantees (events are never reordered)
//
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// AnswerEventData captures a single answered question.
type AnswerEventData struct {
	SessionID     string
	FactKey       string
	Operator      string
	Level         string
	Question      string
	LearnerAnswer string
	Correct       bool
	TimeMs        int
}

// OperatorAccuracyRow is one row of the per-operator accuracy report.
type OperatorAccuracyRow struct {
	Operator string
	Attempts int
	Correct  int
}

// Accuracy returns the correct ratio, or 0 for an empty row.
func (r OperatorAccuracyRow) Accuracy() float64 {
	if r.Attempts == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Attempts)
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendAnswer records an answered question.
	AppendAnswer(ctx context.Context, data AnswerEventData) error

	// RecentAccuracy returns the accuracy over the last N answer events
	// and the number of events found (which may be less than N).
	RecentAccuracy(ctx context.Context, lastN int) (float64, int, error)

	// OperatorAccuracy returns lifetime attempts and correct counts per operator.
	OperatorAccuracy(ctx context.Context) ([]OperatorAccuracyRow, error)

	// LatestAnswerTime returns the timestamp of the most recent answer event,
	// or the zero time if none exist.
	LatestAnswerTime(ctx context.Context) (time.Time, error)
}

type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendAnswer(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO answer_events
			(sequence, timestamp, session_id, fact_key, operator, level, question, learner_answer, correct, time_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UTC(), data.SessionID, data.FactKey, data.Operator,
		data.Level, data.Question, data.LearnerAnswer, data.Correct, data.TimeMs,
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentAccuracy(ctx context.Context, lastN int) (float64, int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT correct FROM answer_events ORDER BY sequence DESC LIMIT ?`, lastN,
	)
	if err != nil {
		return 0, 0, fmt.Errorf("query recent answers: %w", err)
	}
	defer rows.Close()

	count, correct := 0, 0
	for rows.Next() {
		var c bool
		if err := rows.Scan(&c); err != nil {
			return 0, 0, fmt.Errorf("scan answer row: %w", err)
		}
		count++
		if c {
			correct++
		}
	}
	if err := rows.Err(); err != nil {
		return 0, 0, fmt.Errorf("iterate answer rows: %w", err)
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(correct) / float64(count), count, nil
}

func (r *eventRepo) OperatorAccuracy(ctx context.Context) ([]OperatorAccuracyRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT operator, COUNT(*), SUM(correct) FROM answer_events GROUP BY operator ORDER BY operator`,
	)
	if err != nil {
		return nil, fmt.Errorf("query operator accuracy: %w", err)
	}
	defer rows.Close()

	var result []OperatorAccuracyRow
	for rows.Next() {
		var row OperatorAccuracyRow
		if err := rows.Scan(&row.Operator, &row.Attempts, &row.Correct); err != nil {
			return nil, fmt.Errorf("scan operator row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate operator rows: %w", err)
	}
	return result, nil
}

func (r *eventRepo) LatestAnswerTime(ctx context.Context) (time.Time, error) {
	var ts time.Time
	err := r.db.QueryRowContext(ctx,
		`SELECT timestamp FROM answer_events ORDER BY sequence DESC LIMIT 1`,
	).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("query latest answer time: %w", err)
	}
	return ts, nil
}
