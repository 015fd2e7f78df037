package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rsned/tacticus-planner/internal/planner/db"
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "List the imported goals in priority order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		database, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = database.Close() }()

		goals, err := db.NewGoalStore(database).ListGoals(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(goals) == 0 {
			fmt.Fprintln(out, "no goals")
			return nil
		}
		for _, g := range goals {
			label := g.UnitName
			if label == "" {
				label = g.UnitID
			}
			fmt.Fprintf(out, "%3d  %-36s %-7s %s (%s)\n", g.Priority, g.GoalID, g.Type, label, g.CampaignsUsage)
		}
		return nil
	},
}

var goalsDeleteCmd = &cobra.Command{
	Use:   "delete <goal-id>",
	Short: "Delete a stored goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		database, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = database.Close() }()

		store := db.NewGoalStore(database)
		removed, err := store.DeleteGoal(ctx, args[0])
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("goal %s not found", args[0])
		}

		left, err := store.CountGoals(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted goal %s, %d goals left\n", args[0], left)
		return nil
	},
}

func init() {
	goalsCmd.AddCommand(goalsDeleteCmd)
	rootCmd.AddCommand(goalsCmd)
}
