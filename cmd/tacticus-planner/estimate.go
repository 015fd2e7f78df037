package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rsned/tacticus-planner/internal/planner/db"
	"github.com/rsned/tacticus-planner/internal/planner/report"
	"github.com/rsned/tacticus-planner/internal/planner/sync"
	"github.com/rsned/tacticus-planner/pkg/tacticus"
)

var (
	estimateSettings     string
	estimateGoals        string
	estimateSave         bool
	estimateShardsEnergy int
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate days, energy and raids needed to reach the goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		settings, err := sync.LoadSettings(estimateSettings)
		if err != nil {
			return err
		}
		switch {
		case cmd.Flags().Changed("shards-energy"):
			settings.Preferences.ShardsEnergy = estimateShardsEnergy
		case settings.Preferences.ShardsEnergy == 0:
			settings.Preferences.ShardsEnergy = cfg.Planner.ShardsEnergy
		}
		if settings.Preferences.DailyEnergy == 0 {
			settings.Preferences.DailyEnergy = cfg.Planner.DailyEnergy
		}

		database, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = database.Close() }()

		var goals []tacticus.CharacterGoal
		if estimateGoals != "" {
			goals, err = sync.LoadGoals(estimateGoals)
		} else {
			goals, err = db.NewGoalStore(database).ListGoals(ctx)
		}
		if err != nil {
			return err
		}
		if len(goals) == 0 {
			return fmt.Errorf("no goals: pass --goals or import a goals file first")
		}

		eng, err := newEngine(ctx, database)
		if err != nil {
			return err
		}

		plan, err := eng.GetShardsEstimatedDays(*settings, goals...)
		if err != nil {
			return fmt.Errorf("estimating: %w", err)
		}

		if err := report.Render(cmd.OutOrStdout(), plan, settings.Preferences.DailyEnergy); err != nil {
			return err
		}

		if estimateSave {
			id, err := db.NewEstimateStore(database).SaveEstimate(ctx, plan)
			if err != nil {
				return fmt.Errorf("saving estimate: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved estimate %s\n", id)
		}
		return nil
	},
}

func init() {
	estimateCmd.Flags().StringVar(&estimateSettings, "settings", "settings.yaml", "Settings YAML file")
	estimateCmd.Flags().StringVar(&estimateGoals, "goals", "", "Goals YAML file (default: imported goals)")
	estimateCmd.Flags().BoolVar(&estimateSave, "save", false, "Save the estimate to the database")
	estimateCmd.Flags().IntVar(&estimateShardsEnergy, "shards-energy", 0, "Daily energy budget for shards, 0 for unlimited")
	rootCmd.AddCommand(estimateCmd)
}
