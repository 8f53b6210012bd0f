// ABOUTME: CLI commands for recording and updating daily check-ins.
// ABOUTME: log replaces a day's record; update changes selected fields of an existing one.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/recovery/internal/models"
	"github.com/harperreed/recovery/internal/recovery"
	"github.com/spf13/cobra"
)

var (
	logFlags    metricFlags
	updateFlags metricFlags
)

var logCmd = &cobra.Command{
	Use:     "log [date]",
	Aliases: []string{"add", "a"},
	Short:   "Record a daily check-in",
	Long: `Record the wellness check-in for a day. Logging the same day again replaces it.

Ratings are 1-10. Unset ratings default to 5 and sleep hours default to 8.
For stress, higher is worse.

Examples:
  recovery log --sleep-quality 8 --sleep-hours 7.5 --stress 3 --energy 8
  recovery log yesterday -q 6 -s 6 --stress 7 --notes "Late flight"
  recovery log 2025-03-01 --hydration 4 --nutrition 6`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := dayArg(args)
		if err != nil {
			return err
		}

		m := models.NewDailyMetric(date)
		logFlags.patch(cmd).Apply(m)
		if err := m.Validate(); err != nil {
			return err
		}

		stored, ok := trk.UpsertDailyMetric(*m)
		if !ok {
			return fmt.Errorf("invalid date: %s", m.Date)
		}
		score := recovery.Score(&stored)

		color.Green("✓ Logged %s", stored.Date)
		fmt.Printf("  Recovery score %s\n", scoreColor(score).Sprint(formatScore(score)))
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:     "update <date>",
	Aliases: []string{"u"},
	Short:   "Update fields of an existing check-in",
	Long: `Change selected fields of an existing day's check-in. Only the flags you pass
are changed. Nothing is created if the day has no check-in.

Examples:
  recovery update today --stress 8
  recovery update 2025-03-01 --notes "Felt sick" --energy 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDay(args[0], models.Today())
		if err != nil {
			return err
		}

		patch := updateFlags.patch(cmd)
		if patch.IsEmpty() {
			return fmt.Errorf("nothing to update: pass at least one field flag")
		}

		current, ok := trk.Metric(date)
		if !ok {
			color.Yellow("No check-in recorded for %s; nothing updated.", date)
			fmt.Printf("Use 'recovery log %s' to create one.\n", date)
			return nil
		}
		patch.Apply(&current)
		if err := current.Validate(); err != nil {
			return err
		}

		updated, _ := trk.PatchDailyMetric(date, patch)
		score := recovery.Score(&updated)

		color.Green("✓ Updated %s", date)
		fmt.Printf("  Recovery score %s\n", scoreColor(score).Sprint(formatScore(score)))
		return nil
	},
}

func init() {
	logFlags.register(logCmd)
	updateFlags.register(updateCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(updateCmd)
}
