package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rsned/tacticus-planner/internal/planner/db"
)

var (
	estimatesLimit int
	estimatesPrune time.Duration
)

var estimatesCmd = &cobra.Command{
	Use:   "estimates",
	Short: "List saved estimates",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		database, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = database.Close() }()

		store := db.NewEstimateStore(database)
		out := cmd.OutOrStdout()

		if estimatesPrune > 0 {
			n, err := store.PruneEstimates(ctx, estimatesPrune)
			if err != nil {
				return fmt.Errorf("pruning estimates: %w", err)
			}
			fmt.Fprintf(out, "pruned %d estimates\n", n)
		}

		summaries, err := store.ListEstimates(ctx, estimatesLimit)
		if err != nil {
			return fmt.Errorf("listing estimates: %w", err)
		}
		if len(summaries) == 0 {
			fmt.Fprintln(out, "no saved estimates")
			return nil
		}
		for _, s := range summaries {
			fmt.Fprintf(out, "%s  %-14s %d goals, %s days, %s energy, %s raids, %d tokens\n",
				s.ID,
				humanize.Time(s.CreatedAt),
				s.Materials,
				humanize.Comma(int64(s.DaysTotal)),
				humanize.CommafWithDigits(s.EnergyTotal, 0),
				humanize.Comma(int64(s.RaidsTotal)),
				s.OnslaughtTokens)
		}
		return nil
	},
}

func init() {
	estimatesCmd.Flags().IntVar(&estimatesLimit, "limit", 20, "Max estimates to list")
	estimatesCmd.Flags().DurationVar(&estimatesPrune, "prune", 0, "Delete estimates older than this before listing")
	rootCmd.AddCommand(estimatesCmd)
}
