// ABOUTME: Shared CLI helpers for date arguments, metric flags, and output formatting.
// ABOUTME: Used by the log, update, show, score, trend, and injury commands.
package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/harperreed/recovery/internal/models"
	"github.com/harperreed/recovery/internal/recovery"
	"github.com/spf13/cobra"
)

// parseDay accepts YYYY-MM-DD, "today", or "yesterday" relative to today.
func parseDay(s string, today models.Date) (models.Date, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	}
	d, err := models.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid date: %s (use YYYY-MM-DD, today, or yesterday)", s)
	}
	return d, nil
}

// dayArg returns the optional date argument, defaulting to today.
func dayArg(args []string) (models.Date, error) {
	if len(args) == 0 {
		return models.Today(), nil
	}
	return parseDay(args[0], models.Today())
}

// metricFlags binds the daily check-in fields to command flags.
type metricFlags struct {
	sleepQuality int
	sleepHours   float64
	bedTime      string
	wakeTime     string
	stress       int
	energy       int
	nutrition    int
	hydration    int
	mood         int
	motivation   int
	notes        string
}

func (f *metricFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.IntVarP(&f.sleepQuality, "sleep-quality", "q", 5, "sleep quality 1-10")
	flags.Float64VarP(&f.sleepHours, "sleep-hours", "s", 8, "hours slept")
	flags.StringVar(&f.bedTime, "bed", "", "bed time (e.g. 22:30)")
	flags.StringVar(&f.wakeTime, "wake", "", "wake time (e.g. 06:30)")
	flags.IntVar(&f.stress, "stress", 5, "stress 1-10 (higher is worse)")
	flags.IntVar(&f.energy, "energy", 5, "energy 1-10")
	flags.IntVar(&f.nutrition, "nutrition", 5, "nutrition 1-10")
	flags.IntVar(&f.hydration, "hydration", 5, "hydration 1-10")
	flags.IntVar(&f.mood, "mood", 5, "mood 1-10")
	flags.IntVar(&f.motivation, "motivation", 5, "motivation 1-10")
	flags.StringVar(&f.notes, "notes", "", "notes for the day")
}

// patch returns only the fields whose flags were set on the command line.
func (f *metricFlags) patch(cmd *cobra.Command) models.DailyMetricPatch {
	changed := cmd.Flags().Changed
	var p models.DailyMetricPatch
	if changed("sleep-quality") {
		p.SleepQuality = &f.sleepQuality
	}
	if changed("sleep-hours") {
		p.SleepHours = &f.sleepHours
	}
	if changed("bed") {
		p.BedTime = &f.bedTime
	}
	if changed("wake") {
		p.WakeTime = &f.wakeTime
	}
	if changed("stress") {
		p.Stress = &f.stress
	}
	if changed("energy") {
		p.Energy = &f.energy
	}
	if changed("nutrition") {
		p.Nutrition = &f.nutrition
	}
	if changed("hydration") {
		p.Hydration = &f.hydration
	}
	if changed("mood") {
		p.Mood = &f.mood
	}
	if changed("motivation") {
		p.Motivation = &f.motivation
	}
	if changed("notes") {
		p.Notes = &f.notes
	}
	return p
}

// scoreColor picks a color for a 0-10 score.
func scoreColor(score int) *color.Color {
	switch {
	case score >= 8:
		return color.New(color.FgGreen)
	case score >= 5:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

// formatScore renders a score as "7/10 (70%)".
func formatScore(score int) string {
	return fmt.Sprintf("%d/%d (%d%%)", score, recovery.MaxScore, recovery.Percent(score))
}

// scoreBar renders a score as a fixed-width bar.
func scoreBar(score int) string {
	score = min(max(score, 0), recovery.MaxScore)
	return strings.Repeat("█", score) + strings.Repeat("░", recovery.MaxScore-score)
}

// truncate shortens s to maxLen runes, ending in "..." when cut.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", max(maxLen, 0))
	}
	return string(r[:maxLen-3]) + "..."
}

func padRight(s string, length int) string {
	n := utf8.RuneCountInString(s)
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// shortID is the 8-character ID prefix shown in listings.
func shortID(in models.Injury) string {
	return in.ID.String()[:8]
}
