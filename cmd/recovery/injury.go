// ABOUTME: CLI commands for tracking injuries.
// ABOUTME: Supports add, update, resolve, list, and show subcommands.
package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/recovery/internal/models"
	"github.com/spf13/cobra"
)

var (
	injuryType        string
	injurySeverity    string
	injuryStatus      string
	injuryBodyPart    string
	injuryOccurred    string
	injuryResolved    string
	injuryDescription string
	injuryTreatment   []string
	injuryNotes       string
	injuryListAll     bool

	// add has non-empty defaults, so it cannot share update's variables.
	injuryAddType     string
	injuryAddSeverity string
)

var injuryCmd = &cobra.Command{
	Use:     "injury",
	Aliases: []string{"inj", "i"},
	Short:   "Track injuries",
	Long: `Track injuries alongside your daily check-ins.

Injuries have a type (acute, chronic, overuse), a severity (minor, moderate,
severe) and a status (active, recovering, resolved) that you set yourself.

WORKFLOW:

  1. Report it:       recovery injury add knee --type acute --severity moderate
  2. Track progress:  recovery injury update 1a2b3c4d --status recovering
  3. Close it out:    recovery injury resolve 1a2b3c4d

IDs can be shortened to any unique prefix.`,
}

var injuryAddCmd = &cobra.Command{
	Use:   "add <body-part>",
	Short: "Report a new injury",
	Long: `Report a new injury. It starts out active.

Examples:
  recovery injury add "left ankle" --type acute --severity moderate
  recovery injury add shoulder --type overuse --treatment ice --treatment rest`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := models.ParseInjuryType(injuryAddType)
		if err != nil {
			return err
		}
		sev, err := models.ParseSeverity(injuryAddSeverity)
		if err != nil {
			return err
		}

		in := models.NewInjury(t, sev, args[0]).WithDescription(injuryDescription)
		if injuryOccurred != "" {
			d, err := parseDay(injuryOccurred, models.Today())
			if err != nil {
				return err
			}
			in.WithOccurred(d)
		}
		if len(injuryTreatment) > 0 {
			in.WithTreatment(injuryTreatment...)
		}
		if injuryNotes != "" {
			in.WithNotes(injuryNotes)
		}
		if err := in.Validate(); err != nil {
			return err
		}

		stored := trk.AddInjury(*in)

		color.Green("✓ Reported %s injury (%s, %s)", stored.BodyPart, stored.Type, stored.Severity)
		fmt.Printf("  ID: %s\n", shortID(stored))
		return nil
	},
}

var injuryUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an injury",
	Long: `Change selected fields of an injury. Only the flags you pass are changed.
Passing --treatment replaces the whole treatment list.

Examples:
  recovery injury update 1a2b3c4d --status recovering
  recovery injury update 1a2b --severity minor --notes "Swelling down"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		current, err := trk.FindInjury(args[0])
		if err != nil {
			return err
		}

		patch, err := injuryPatchFromFlags(cmd)
		if err != nil {
			return err
		}

		merged := current.Clone()
		patch.Apply(&merged)
		if err := merged.Validate(); err != nil {
			return err
		}

		updated, _ := trk.PatchInjury(current.ID, patch)
		color.Green("✓ Updated injury %s", shortID(updated))
		printInjury(updated)
		return nil
	},
}

var injuryResolveCmd = &cobra.Command{
	Use:   "resolve <id> [date]",
	Short: "Mark an injury resolved",
	Long: `Mark an injury resolved, recording the resolution date (default today).

Examples:
  recovery injury resolve 1a2b3c4d
  recovery injury resolve 1a2b yesterday`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		current, err := trk.FindInjury(args[0])
		if err != nil {
			return err
		}

		resolved, err := dayArg(args[1:])
		if err != nil {
			return err
		}
		status := models.StatusResolved
		patch := models.InjuryPatch{Status: &status, DateResolved: &resolved}

		merged := current.Clone()
		patch.Apply(&merged)
		if err := merged.Validate(); err != nil {
			return err
		}

		updated, _ := trk.PatchInjury(current.ID, patch)
		color.Green("✓ Resolved %s injury %s on %s", updated.BodyPart, shortID(updated), resolved)
		return nil
	},
}

var injuryListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List injuries",
	Long:    `List active and recovering injuries. Use --all to include resolved ones.`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		injuries := trk.ActiveInjuries()
		if injuryListAll {
			injuries = trk.Injuries()
		}

		if len(injuries) == 0 {
			if injuryListAll {
				fmt.Println("No injuries recorded.")
			} else {
				fmt.Println("No active injuries.")
			}
			return nil
		}

		faint := color.New(color.Faint)
		for _, in := range injuries {
			fmt.Printf("%s %s %s %s %s\n",
				faint.Sprint(shortID(in)),
				faint.Sprint(in.DateOccurred),
				statusColor(in.Status).Sprint(padRight(string(in.Status), 10)),
				padRight(fmt.Sprintf("%s/%s", in.Type, in.Severity), 16),
				in.BodyPart)
		}
		return nil
	},
}

var injuryShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show injury details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := trk.FindInjury(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Injury: %s\n", shortID(in))
		printInjury(in)
		return nil
	},
}

var injuryUpdateFlags = []string{
	"type", "severity", "status", "body-part", "occurred", "resolved", "description", "treatment", "notes",
}

// injuryPatchFromFlags builds a patch from the update flags that were set.
func injuryPatchFromFlags(cmd *cobra.Command) (models.InjuryPatch, error) {
	changed := cmd.Flags().Changed
	var p models.InjuryPatch

	if changed("type") {
		t, err := models.ParseInjuryType(injuryType)
		if err != nil {
			return p, err
		}
		p.Type = &t
	}
	if changed("severity") {
		s, err := models.ParseSeverity(injurySeverity)
		if err != nil {
			return p, err
		}
		p.Severity = &s
	}
	if changed("status") {
		s, err := models.ParseInjuryStatus(injuryStatus)
		if err != nil {
			return p, err
		}
		p.Status = &s
	}
	if changed("body-part") {
		p.BodyPart = &injuryBodyPart
	}
	if changed("occurred") {
		d, err := parseDay(injuryOccurred, models.Today())
		if err != nil {
			return p, err
		}
		p.DateOccurred = &d
	}
	if changed("resolved") {
		d, err := parseDay(injuryResolved, models.Today())
		if err != nil {
			return p, err
		}
		p.DateResolved = &d
	}
	if changed("description") {
		p.Description = &injuryDescription
	}
	if changed("treatment") {
		p.Treatment = append([]string{}, injuryTreatment...)
	}
	if changed("notes") {
		p.Notes = &injuryNotes
	}

	if !slices.ContainsFunc(injuryUpdateFlags, changed) {
		return p, fmt.Errorf("nothing to update: pass at least one field flag")
	}
	return p, nil
}

func printInjury(in models.Injury) {
	fmt.Printf("  Body part:   %s\n", in.BodyPart)
	fmt.Printf("  Type:        %s\n", in.Type)
	fmt.Printf("  Severity:    %s\n", in.Severity)
	fmt.Printf("  Status:      %s\n", statusColor(in.Status).Sprint(in.Status))
	fmt.Printf("  Occurred:    %s\n", in.DateOccurred)
	if in.DateResolved != nil {
		fmt.Printf("  Resolved:    %s\n", *in.DateResolved)
	}
	if in.Description != "" {
		fmt.Printf("  Description: %s\n", in.Description)
	}
	if len(in.Treatment) > 0 {
		fmt.Printf("  Treatment:   %s\n", strings.Join(in.Treatment, ", "))
	}
	if in.Notes != nil && *in.Notes != "" {
		fmt.Printf("  Notes:       %s\n", *in.Notes)
	}
}

func statusColor(s models.InjuryStatus) *color.Color {
	switch s {
	case models.StatusActive:
		return color.New(color.FgRed)
	case models.StatusRecovering:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

func init() {
	injuryAddCmd.Flags().StringVarP(&injuryAddType, "type", "t", string(models.InjuryAcute), "injury type (acute, chronic, overuse)")
	injuryAddCmd.Flags().StringVar(&injuryAddSeverity, "severity", string(models.SeverityMinor), "severity (minor, moderate, severe)")
	injuryAddCmd.Flags().StringVar(&injuryOccurred, "occurred", "", "date it happened (default today)")
	injuryAddCmd.Flags().StringVarP(&injuryDescription, "description", "d", "", "what happened")
	injuryAddCmd.Flags().StringArrayVar(&injuryTreatment, "treatment", nil, "treatment step (repeatable)")
	injuryAddCmd.Flags().StringVar(&injuryNotes, "notes", "", "notes")

	injuryUpdateCmd.Flags().StringVarP(&injuryType, "type", "t", "", "injury type (acute, chronic, overuse)")
	injuryUpdateCmd.Flags().StringVar(&injurySeverity, "severity", "", "severity (minor, moderate, severe)")
	injuryUpdateCmd.Flags().StringVar(&injuryStatus, "status", "", "status (active, recovering, resolved)")
	injuryUpdateCmd.Flags().StringVar(&injuryBodyPart, "body-part", "", "body part")
	injuryUpdateCmd.Flags().StringVar(&injuryOccurred, "occurred", "", "date it happened")
	injuryUpdateCmd.Flags().StringVar(&injuryResolved, "resolved", "", "date it resolved")
	injuryUpdateCmd.Flags().StringVarP(&injuryDescription, "description", "d", "", "what happened")
	injuryUpdateCmd.Flags().StringArrayVar(&injuryTreatment, "treatment", nil, "treatment step (repeatable, replaces the list)")
	injuryUpdateCmd.Flags().StringVar(&injuryNotes, "notes", "", "notes")

	injuryListCmd.Flags().BoolVarP(&injuryListAll, "all", "a", false, "include resolved injuries")

	injuryCmd.AddCommand(injuryAddCmd)
	injuryCmd.AddCommand(injuryUpdateCmd)
	injuryCmd.AddCommand(injuryResolveCmd)
	injuryCmd.AddCommand(injuryListCmd)
	injuryCmd.AddCommand(injuryShowCmd)
	rootCmd.AddCommand(injuryCmd)
}
