package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rsned/tacticus-planner/internal/planner/catalog"
	"github.com/rsned/tacticus-planner/internal/planner/config"
	"github.com/rsned/tacticus-planner/internal/planner/db"
	"github.com/rsned/tacticus-planner/internal/planner/engine"
)

var (
	configPath string
	dbPath     string
	verbose    bool
	cfg        *config.Config

	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

var rootCmd = &cobra.Command{
	Use:           "tacticus-planner",
	Short:         "Plan shard farming for Tacticus character goals",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Setup logging
		logLevel := slog.LevelInfo
		if verbose {
			logLevel = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if !cmd.Flags().Changed("db") {
			dbPath = cfg.Data.DBPath
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "tacticus.db", "Path to SQLite database")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// openDB opens and initializes the configured database.
func openDB(ctx context.Context) (*db.DB, error) {
	database, err := db.OpenAndInit(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", dbPath, err)
	}
	return database, nil
}

// newEngine builds an engine over the catalog stored in database.
func newEngine(ctx context.Context, database *db.DB) (*engine.Engine, error) {
	cat, err := catalog.Load(ctx, database)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	logger.Debug("catalog loaded", "battles", cat.BattleCount())
	return engine.New(cat, logger), nil
}
