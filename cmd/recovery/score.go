// ABOUTME: CLI commands for recovery scores and trends.
// ABOUTME: score prints one day's score; trend charts the trailing N days.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/recovery/internal/models"
	"github.com/harperreed/recovery/internal/recovery"
	"github.com/spf13/cobra"
)

var trendDays int

var scoreCmd = &cobra.Command{
	Use:   "score [date]",
	Short: "Show the recovery score for a day",
	Long: `Show the 0-10 recovery score for a day (default today).

The score weighs sleep (50%), stress (15%), energy (15%), nutrition (10%),
hydration (5%) and mood (5%). A day without a check-in scores 0.

Examples:
  recovery score
  recovery score yesterday`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := dayArg(args)
		if err != nil {
			return err
		}

		day := recovery.ScoreOn(trk, date)
		if !day.HasData {
			color.Yellow("No check-in recorded for %s (score 0).", date)
			return nil
		}
		fmt.Printf("%s  %s  %s\n", date, scoreColor(day.Score).Sprint(scoreBar(day.Score)), formatScore(day.Score))
		return nil
	},
}

var trendCmd = &cobra.Command{
	Use:     "trend",
	Aliases: []string{"t"},
	Short:   "Chart recovery scores for recent days",
	Long: `Chart daily recovery scores for the trailing N days ending today, oldest first.
Days without a check-in are shown as 0 and marked "no data".

Examples:
  recovery trend
  recovery trend --days 30`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if trendDays < 1 {
			return fmt.Errorf("--days must be at least 1")
		}

		days := recovery.TrendDays(trk.Snapshot(), trendDays, models.Today())
		faint := color.New(color.Faint)

		logged, total := 0, 0
		for _, d := range days {
			label := d.Date.Time().Format("Mon Jan 02")
			if !d.HasData {
				fmt.Printf("%s  %s  %s\n", label, faint.Sprint(scoreBar(0)), faint.Sprint("no data"))
				continue
			}
			logged++
			total += d.Score
			fmt.Printf("%s  %s  %d\n", label, scoreColor(d.Score).Sprint(scoreBar(d.Score)), d.Score)
		}

		fmt.Println()
		if logged == 0 {
			fmt.Println("No check-ins in this window.")
			return nil
		}
		fmt.Printf("%d of %d days logged, average %.1f on logged days\n", logged, len(days), float64(total)/float64(logged))
		return nil
	},
}

func init() {
	trendCmd.Flags().IntVarP(&trendDays, "days", "d", 7, "number of days ending today")
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(trendCmd)
}
