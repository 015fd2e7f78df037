package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rsned/tacticus-planner/internal/planner/sync"
)

var importFiles sync.Files

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import campaigns, battles, progression and goals into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		if importFiles == (sync.Files{}) {
			return errors.New("nothing to import: pass at least one of --campaigns, --battles, --progression, --goals")
		}

		ctx := cmd.Context()
		database, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = database.Close() }()

		result, err := sync.NewSyncer(database, logger).ImportFiles(ctx, importFiles)
		if err != nil {
			return fmt.Errorf("importing: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "imported %d campaigns, %d battles, %d progression steps, %d goals\n",
			result.Campaigns, result.Battles, result.Steps, result.Goals)

		counts, err := database.TableCounts(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "database holds %d campaigns, %d battles, %d progression steps, %d goals, %d estimates\n",
			counts["campaigns"], counts["campaign_battles"], counts["shards_progression"], counts["goals"], counts["estimates"])
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importFiles.Campaigns, "campaigns", "", "Campaigns JSON file")
	importCmd.Flags().StringVar(&importFiles.Battles, "battles", "", "Battles JSON file")
	importCmd.Flags().StringVar(&importFiles.Progression, "progression", "", "Progression JSON file")
	importCmd.Flags().StringVar(&importFiles.Goals, "goals", "", "Goals YAML file")
	rootCmd.AddCommand(importCmd)
}
