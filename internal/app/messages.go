package app

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flashmath/internal/mastery"
	"github.com/abhisek/flashmath/internal/player"
	"github.com/abhisek/flashmath/internal/store"
)

// stateLoadedMsg carries the learner state restored from the latest snapshot.
type stateLoadedMsg struct {
	Tracker *mastery.Tracker
	Profile *player.Profile
	Err     error
}

// snapshotSavedMsg reports the result of a snapshot write.
type snapshotSavedMsg struct {
	Err error
}

// loadState restores the tracker and player profile from the latest
// snapshot, or creates fresh state when none exists.
func loadState(opts Options) tea.Cmd {
	return func() tea.Msg {
		name := opts.PlayerName
		if name == "" {
			name = "learner"
		}

		snap, err := opts.SnapshotRepo.Latest(context.Background())
		if err != nil {
			return stateLoadedMsg{Err: fmt.Errorf("load snapshot: %w", err)}
		}

		tracker := mastery.NewTracker(mastery.DefaultConfig())
		profile := player.New(name, player.DefaultConfig(), time.Now())
		if snap != nil {
			if snap.Data.Tracker != nil {
				tracker, err = mastery.LoadTracker(mastery.DefaultConfig(), snap.Data.Tracker)
				if err != nil {
					return stateLoadedMsg{Err: fmt.Errorf("restore tracker: %w", err)}
				}
			}
			if snap.Data.Player != nil {
				profile, err = player.LoadProfile(player.DefaultConfig(), snap.Data.Player)
				if err != nil {
					return stateLoadedMsg{Err: fmt.Errorf("restore player: %w", err)}
				}
			}
		}
		return stateLoadedMsg{Tracker: tracker, Profile: profile}
	}
}

// saveState builds a snapshot of the tracker and player profile and
// returns a command that writes it. The snapshot data is copied here,
// on the update goroutine, so later mutations of the live state cannot
// race with the write running in the background.
func saveState(opts Options, tracker *mastery.Tracker, profile *player.Profile) tea.Cmd {
	trackerData := tracker.SnapshotData()
	snap := &store.Snapshot{
		Sequence:  trackerData.Seq,
		Timestamp: time.Now().UTC(),
		Data: store.SnapshotData{
			Version: store.SnapshotVersion,
			Tracker: trackerData,
			Player:  profile.SnapshotData(),
		},
	}
	return func() tea.Msg {
		if err := opts.SnapshotRepo.Save(context.Background(), snap); err != nil {
			return snapshotSavedMsg{Err: fmt.Errorf("save snapshot: %w", err)}
		}
		// Old snapshots are kept for a short history, not forever.
		if err := opts.SnapshotRepo.Prune(context.Background(), store.SnapshotKeep); err != nil {
			return snapshotSavedMsg{Err: fmt.Errorf("prune snapshots: %w", err)}
		}
		return snapshotSavedMsg{}
	}
}
