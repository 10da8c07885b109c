package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashmath/internal/analytics"
	"github.com/abhisek/flashmath/internal/facts"
	"github.com/abhisek/flashmath/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		events := st.EventRepo()

		rows, err := events.OperatorAccuracy(ctx)
		if err != nil {
			return fmt.Errorf("query operator accuracy: %w", err)
		}
		if len(rows) == 0 {
			fmt.Println("No answers recorded yet. Run `flashmath play` first.")
			return nil
		}

		fmt.Println("Accuracy by operator:")
		for _, row := range rows {
			symbol := row.Operator
			if op, err := facts.ParseOperator(row.Operator); err == nil {
				symbol = op.Symbol()
			}
			fmt.Printf("  %s  %4d/%-4d  %5.1f%%\n", symbol, row.Correct, row.Attempts, row.Accuracy()*100)
		}

		recent, sample, err := events.RecentAccuracy(ctx, analytics.DefaultWindowSize)
		if err != nil {
			return fmt.Errorf("query recent accuracy: %w", err)
		}
		if sample > 0 {
			fmt.Printf("\nLast %d answers: %.1f%%\n", sample, recent*100)
		}

		last, err := events.LatestAnswerTime(ctx)
		if err != nil {
			return fmt.Errorf("query latest answer: %w", err)
		}
		if !last.IsZero() {
			fmt.Printf("Last practiced: %s\n", last.Local().Format("Mon Jan 2 15:04"))
		}
		return nil
	},
}
