// ABOUTME: CLI commands for viewing daily check-ins.
// ABOUTME: list shows recent days newest first; show prints one day in detail.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/recovery/internal/recovery"
	"github.com/spf13/cobra"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List recent check-ins",
	Long: `List recent daily check-ins, newest first.

OUTPUT FORMAT:

  DATE  SCORE  SLEEP(q/h)  STRESS  ENERGY  NUTR  HYDR  MOOD  MOTIV  (NOTES)

EXAMPLES:

  recovery list            # Last 14 days with a check-in
  recovery list -n 30      # Last 30`,
	RunE: func(cmd *cobra.Command, args []string) error {
		metrics := trk.Recent(listLimit)
		if len(metrics) == 0 {
			fmt.Println("No check-ins found.")
			return nil
		}

		faint := color.New(color.Faint)
		fmt.Println(faint.Sprint("DATE        SCORE  SLEEP     STRESS ENERGY NUTR HYDR MOOD MOTIV"))
		for _, m := range metrics {
			score := recovery.Score(&m)
			notes := ""
			if m.Notes != nil && *m.Notes != "" {
				notes = faint.Sprintf(" (%s)", truncate(*m.Notes, 30))
			}
			fmt.Printf("%s  %s  %s %-6d %-6d %-4d %-4d %-4d %-5d%s\n",
				m.Date,
				scoreColor(score).Sprint(padRight(fmt.Sprintf("%d", score), 5)),
				padRight(fmt.Sprintf("%d/%.1fh", m.Sleep.Quality, m.Sleep.DurationHours), 9),
				m.Stress, m.Energy, m.Nutrition, m.Hydration, m.Mood, m.Motivation,
				notes)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show [date]",
	Short: "Show one day's check-in",
	Long: `Show a day's check-in with its score breakdown. Defaults to today.

Examples:
  recovery show
  recovery show yesterday
  recovery show 2025-03-01`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := dayArg(args)
		if err != nil {
			return err
		}

		m, ok := trk.Metric(date)
		if !ok {
			color.Yellow("No check-in recorded for %s.", date)
			return nil
		}

		score := recovery.Score(&m)
		bold := color.New(color.Bold)
		faint := color.New(color.Faint)

		bold.Printf("Check-in %s\n", m.Date)
		fmt.Printf("  Score       %s\n\n", scoreColor(score).Sprint(formatScore(score)))

		fmt.Printf("  Sleep       quality %d, %.1f hours", m.Sleep.Quality, m.Sleep.DurationHours)
		if m.Sleep.BedTime != nil || m.Sleep.WakeTime != nil {
			fmt.Printf(" %s", faint.Sprintf("(%s → %s)", deref(m.Sleep.BedTime), deref(m.Sleep.WakeTime)))
		}
		fmt.Println()
		fmt.Printf("  Stress      %d\n", m.Stress)
		fmt.Printf("  Energy      %d\n", m.Energy)
		fmt.Printf("  Nutrition   %d\n", m.Nutrition)
		fmt.Printf("  Hydration   %d\n", m.Hydration)
		fmt.Printf("  Mood        %d\n", m.Mood)
		fmt.Printf("  Motivation  %d %s\n", m.Motivation, faint.Sprint("(not scored)"))
		if m.Notes != nil && *m.Notes != "" {
			fmt.Printf("  Notes       %s\n", *m.Notes)
		}

		c := recovery.Breakdown(m)
		fmt.Println()
		bold.Println("Score breakdown")
		fmt.Printf("  sleep %.2f  stress %.2f  energy %.2f  nutrition %.2f  hydration %.2f  mood %.2f  = %.2f\n",
			c.Sleep, c.Stress, c.Energy, c.Nutrition, c.Hydration, c.Mood, c.Total())
		return nil
	},
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 14, "max number of days")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
}
