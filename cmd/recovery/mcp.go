// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server exposing the recovery tracker.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/harperreed/recovery/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to log check-ins, track injuries, and read
recovery scores through a standardized protocol. The server communicates via
stdin/stdout; logs go to stderr.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "recovery": {
        "command": "recovery",
        "args": ["mcp"]
      }
    }
  }

  On macOS, the config is at:
    ~/Library/Application Support/Claude/claude_desktop_config.json

AVAILABLE TOOLS:

  log_daily_metric     Record (or replace) a day's check-in
  update_daily_metric  Change selected fields of an existing check-in
  get_daily_metric     Get a day's check-in
  get_recovery_score   0-10 score and percent for a day
  get_trend            Daily scores for the last N days
  get_recommendations  Prioritized advice from the last three check-ins
  report_injury        Report a new injury
  update_injury        Update an injury by ID or ID prefix
  list_injuries        List active (or all) injuries

AVAILABLE RESOURCES:

  recovery://today            Today's check-in, score, and recommendations
  recovery://trend            Seven-day score trend
  recovery://injuries/active  Active and recovering injuries`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(trk, mcp.WithLogger(logger))
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger.Info("mcp server starting", "backend", cfg.GetBackend())
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
