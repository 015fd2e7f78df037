package main

import (
	"github.com/spf13/cobra"

	"github.com/rsned/tacticus-planner/internal/planner/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP tool server on stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		database, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = database.Close() }()

		eng, err := newEngine(ctx, database)
		if err != nil {
			return err
		}

		server := mcp.NewServer(eng, database, mcp.Info{Name: cfg.Server.Name, Version: cfg.Server.Version}, logger)

		logger.Info("starting MCP server", "db", dbPath)
		return server.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
