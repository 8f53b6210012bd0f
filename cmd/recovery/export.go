// ABOUTME: CLI commands for exporting and importing recovery data.
// ABOUTME: Supports JSON, YAML, and Markdown export; imports JSON backups.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/recovery/internal/models"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export recovery data",
	Long: `Export check-ins and injuries in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable)
  markdown   Markdown tables (for documentation/sharing)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --since        Only include data since this date (markdown only)

EXAMPLES:

  recovery export json                        # Export all data as JSON
  recovery export json -o backup.json         # Save to file
  recovery export yaml                        # Export as YAML
  recovery export markdown --since 2025-01-01 # Export data from 2025 onward`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = trk.ExportJSON()
		case "yaml":
			data, err = trk.ExportYAML()
		case "markdown", "md":
			var since *models.Date
			if exportSince != "" {
				d, err := parseDay(exportSince, models.Today())
				if err != nil {
					return err
				}
				since = &d
			}
			data = []byte(trk.ExportMarkdown(since))
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import recovery data from JSON",
	Long: `Import check-ins and injuries from a JSON backup file.

Check-ins replace any existing check-in for the same date. Injuries replace
any existing injury with the same ID. Nothing is imported if any record is
invalid.

EXAMPLES:

  recovery import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		summary, err := trk.ImportJSON(data)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported from %s", filename)
		fmt.Printf("  Check-ins: %d added, %d replaced\n", summary.MetricsAdded, summary.MetricsReplaced)
		fmt.Printf("  Injuries:  %d added, %d replaced\n", summary.InjuriesAdded, summary.InjuriesReplaced)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include data since date (YYYY-MM-DD, markdown only)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
