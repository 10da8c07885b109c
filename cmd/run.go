package cmd

import (
	"fmt"

	"github.com/abhisek/flashmath/internal/app"
	"github.com/abhisek/flashmath/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	name, _ := cmd.Flags().GetString("name")
	return app.Run(app.Options{
		SnapshotRepo: st.SnapshotRepo(),
		EventRepo:    st.EventRepo(),
		PlayerName:   name,
	})
}
