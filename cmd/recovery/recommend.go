// ABOUTME: CLI command for recovery recommendations.
// ABOUTME: Prints prioritized advice from the three most recent check-ins.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/recovery/internal/models"
	"github.com/harperreed/recovery/internal/recovery"
	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:     "recommend",
	Aliases: []string{"rec"},
	Short:   "Show recovery recommendations",
	Long: `Show prioritized recommendations based on the averages of your three most
recent check-ins. High priority items are listed first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap := trk.Snapshot()
		avg, ok := recovery.RollingAverages(snap, recovery.Window)
		if !ok {
			fmt.Println("No check-ins yet. Run 'recovery log' to record one.")
			return nil
		}

		faint := color.New(color.Faint)
		fmt.Println(faint.Sprintf("Averages over last %d check-in(s): sleep %.1f/%.1fh, stress %.1f, hydration %.1f, nutrition %.1f",
			avg.Days, avg.SleepQuality, avg.SleepDuration, avg.Stress, avg.Hydration, avg.Nutrition))
		fmt.Println()

		recs := recovery.Recommendations(snap)
		if len(recs) == 0 {
			color.Green("✓ Recovery inputs look good. Keep it up.")
			return nil
		}

		for i, r := range recs {
			priorityColor(r.Priority).Printf("[%s] ", r.Priority)
			color.New(color.Bold).Println(r.Title)
			fmt.Printf("  %s\n", r.Description)
			for _, item := range r.ActionItems {
				fmt.Printf("  • %s\n", item)
			}
			if i < len(recs)-1 {
				fmt.Println()
			}
		}
		return nil
	},
}

func priorityColor(p models.Priority) *color.Color {
	switch p {
	case models.PriorityHigh:
		return color.New(color.FgRed, color.Bold)
	case models.PriorityMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.Faint)
	}
}

func init() {
	rootCmd.AddCommand(recommendCmd)
}
