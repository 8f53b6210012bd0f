// ABOUTME: Root Cobra command for recovery CLI.
// ABOUTME: Handles config, logger, storage, and tracker lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/harperreed/recovery/internal/config"
	"github.com/harperreed/recovery/internal/logging"
	"github.com/harperreed/recovery/internal/models"
	"github.com/harperreed/recovery/internal/storage"
	"github.com/harperreed/recovery/internal/tracker"
	"github.com/spf13/cobra"
)

// skipTrackerAnnotation marks commands that manage storage themselves.
const skipTrackerAnnotation = "skip-tracker"

var (
	cfg     *config.Config
	logger  *log.Logger
	store   storage.BlobStore
	trk     *tracker.Tracker
	backend string
	dataDir string
)

var rootCmd = &cobra.Command{
	Use:   "recovery",
	Short: "Athlete recovery tracker",
	Long: `Recovery is a CLI tool for tracking daily recovery inputs and injuries.

WHAT IT TRACKS:

  Daily check-in   sleep quality and hours, stress, energy, nutrition,
                   hydration, mood, motivation (ratings 1-10)
  Injuries         type, severity, body part, status, treatment

WHAT IT COMPUTES:

  Score            0-10 recovery score for a day (shown as a percent too)
  Trend            daily scores for the last N days, oldest first
  Recommendations  prioritized advice from your last three check-ins

QUICK START:

  $ recovery log --sleep-quality 7 --sleep-hours 7.5 --stress 4 --energy 7
  $ recovery score                       # Today's recovery score
  $ recovery trend --days 14             # Two-week trend
  $ recovery recommend                   # What to work on
  $ recovery injury add "left hamstring" --severity moderate
  $ recovery injury list                 # Active and recovering injuries

MCP INTEGRATION:

  Run 'recovery mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants. Add to your Claude
  config:

  {
    "mcpServers": {
      "recovery": { "command": "recovery", "args": ["mcp"] }
    }
  }

CONFIGURATION:

  ~/.config/recovery/config.json selects the storage backend (sqlite, badger,
  file, charm) and data directory. RECOVERY_BACKEND, RECOVERY_DATA_DIR,
  RECOVERY_SAMPLE_DATA and RECOVERY_LOG_LEVEL override it, and may be set in
  a .env file in the working directory.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup for commands that don't need it
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		if err := loadConfig(cmd); err != nil {
			return err
		}
		if cmd.Annotations[skipTrackerAnnotation] == "true" {
			return nil
		}
		return openTracker()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if trk != nil {
			if err := trk.LastPersistError(); err != nil {
				color.Yellow("⚠ Changes kept in memory only; storage unavailable: %v", err)
			}
		}
		if store != nil {
			return store.Close()
		}
		return nil
	},
}

func loadConfig(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("backend") {
		cfg.Backend = backend
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = dataDir
	}

	logger = logging.FromEnv(cfg.LogLevel)
	logger.Debug("config loaded", "backend", cfg.GetBackend(), "data_dir", cfg.GetDataDir())
	return nil
}

// openTracker loads the tracker over the configured backend. A backend that
// cannot be opened leaves the session running in memory only.
func openTracker() error {
	name := cfg.GetBackend()
	if !slices.Contains(config.Backends, name) {
		return fmt.Errorf("unknown backend: %q (valid: %s)", name, strings.Join(config.Backends, ", "))
	}

	var err error
	store, err = cfg.OpenStorage()
	if err != nil {
		logger.Warn("storage unavailable, continuing in memory", "backend", name, "err", err)
		color.Yellow("⚠ Storage unavailable; changes this session will not be saved: %v", err)
		store = nil
	}

	opts := []tracker.Option{tracker.WithLogger(logger)}
	if cfg.SampleData {
		opts = append(opts, tracker.WithSeed(tracker.SampleSeed(models.Today())))
	}
	trk = tracker.New(store, opts...)
	trk.Load()
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "storage backend override (sqlite, badger, file, charm)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory override")
}
