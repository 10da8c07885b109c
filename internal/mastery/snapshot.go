package mastery

import (
	"fmt"

	"github.com/abhisek/flashmath/internal/facts"
	"github.com/abhisek/flashmath/internal/store"
)

// SnapshotData exports the tracker state for persistence. The export is a
// deep copy; the persistence layer may hand it to a background worker
// without tearing the live tracker.
func (t *Tracker) SnapshotData() *store.TrackerSnapshotData {
	data := &store.TrackerSnapshotData{
		Seq:     t.seq,
		Created: t.created,
		Facts:   make(map[string]*store.FactRecordData, len(t.records)),
	}
	for f, rec := range t.records {
		data.Facts[f.Key()] = &store.FactRecordData{
			Attempts:       rec.Attempts,
			Correct:        rec.Correct,
			Streak:         rec.Streak,
			AvgResponseSec: rec.AvgResponseSec,
			LastSeen:       rec.LastSeen,
			Created:        rec.Created,
		}
	}
	return data
}

// LoadTracker restores a tracker from persisted snapshot data. A nil or
// empty snapshot yields an empty tracker.
func LoadTracker(cfg Config, data *store.TrackerSnapshotData) (*Tracker, error) {
	t := NewTracker(cfg)
	if data == nil {
		return t, nil
	}

	t.seq = data.Seq
	t.created = data.Created
	for key, rd := range data.Facts {
		f, err := facts.ParseKey(key)
		if err != nil {
			return nil, fmt.Errorf("load tracker: %w", err)
		}
		t.records[f] = &Record{
			Attempts:       rd.Attempts,
			Correct:        rd.Correct,
			Streak:         rd.Streak,
			AvgResponseSec: rd.AvgResponseSec,
			LastSeen:       rd.LastSeen,
			Created:        rd.Created,
		}
		// Keep the counters ahead of any restored record even if the
		// snapshot's counters are stale.
		if rd.LastSeen > t.seq {
			t.seq = rd.LastSeen
		}
		if rd.Created > t.created {
			t.created = rd.Created
		}
	}
	return t, nil
}
