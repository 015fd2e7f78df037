package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rsned/tacticus-planner/internal/planner/sync"
	"github.com/rsned/tacticus-planner/pkg/tacticus"
)

var (
	locationsSettings string
	locationsUsage    string
)

var locationsCmd = &cobra.Command{
	Use:   "locations <unit-id>",
	Short: "Show where a unit's shards can be farmed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		usage := tacticus.CampaignsUsage(locationsUsage)
		if !usage.IsValid() {
			return fmt.Errorf("unknown usage %q", locationsUsage)
		}

		req := tacticus.BestLocationsRequest{UnitID: args[0], CampaignsUsage: usage}
		if locationsSettings != "" {
			settings, err := sync.LoadSettings(locationsSettings)
			if err != nil {
				return err
			}
			req.Settings = *settings
		}

		database, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = database.Close() }()

		eng, err := newEngine(ctx, database)
		if err != nil {
			return err
		}

		resp := eng.BestLocations(req)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d locations, %d unlocked\n", resp.Material, resp.Possible, len(resp.Unlocked))
		if resp.IsBlocked {
			fmt.Fprintln(out, "blocked: no location can be farmed with these settings")
			return nil
		}
		for _, loc := range resp.Selected {
			fmt.Fprintf(out, "  %-8s %-28s %s energy/shard, %s shards/day, %s gold\n",
				loc.ID,
				loc.Campaign,
				humanize.FtoaWithDigits(loc.EnergyPerItem, 2),
				humanize.FtoaWithDigits(loc.ItemsPerDay, 2),
				humanize.Comma(int64(loc.ExpectedGold)))
		}
		return nil
	},
}

func init() {
	locationsCmd.Flags().StringVar(&locationsSettings, "settings", "", "Settings YAML file")
	locationsCmd.Flags().StringVar(&locationsUsage, "usage", string(tacticus.CampaignsUsageLeastEnergy), "Campaigns usage: LeastEnergy, BestTime or None")
	rootCmd.AddCommand(locationsCmd)
}
