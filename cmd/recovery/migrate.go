// ABOUTME: CLI command for moving recovery data between storage backends.
// ABOUTME: Copies the metric and injury collections from one backend to another.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/recovery/internal/config"
	"github.com/harperreed/recovery/internal/storage"
	"github.com/harperreed/recovery/internal/tracker"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateDryRun bool
	migrateForce  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Move data between storage backends",
	Long: `Copy all recovery data from one storage backend to another.

BACKENDS:

  sqlite   ~/.local/share/recovery/recovery.db (default)
  badger   ~/.local/share/recovery/badger/
  file     ~/.local/share/recovery/collections/
  charm    Charm KV, synced to Charm Cloud

The destination is not overwritten if it already holds data unless you pass
--force. Run with --dry-run first to see what would be copied.

USAGE:

  recovery migrate --from charm --to sqlite --dry-run
  recovery migrate --from sqlite --to badger
  recovery migrate --from file               # destination defaults to the configured backend

AFTER MIGRATION:

  Point the config at the new backend:
    RECOVERY_BACKEND=badger recovery list`,
	Annotations: map[string]string{skipTrackerAnnotation: "true"},
	Args:        cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from := strings.ToLower(migrateFrom)
		to := strings.ToLower(migrateTo)
		if to == "" {
			to = cfg.GetBackend()
		}
		if from == "" {
			return fmt.Errorf("--from is required (one of %s)", strings.Join(config.Backends, ", "))
		}
		if from == to {
			return fmt.Errorf("source and destination are both %s", from)
		}

		src, err := cfg.OpenBackend(from)
		if err != nil {
			return err
		}
		defer src.Close()

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			fmt.Println()
			return previewMigration(src, from, to)
		}

		dst, err := cfg.OpenBackend(to)
		if err != nil {
			return err
		}
		defer dst.Close()

		if !migrateForce {
			existing, err := existingCollections(dst)
			if err != nil {
				return err
			}
			if len(existing) > 0 {
				return fmt.Errorf("%s already holds %s; use --force to overwrite", to, strings.Join(existing, ", "))
			}
		}

		summary, err := storage.MigrateData(src, dst, tracker.Collections)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Migrated %s → %s", from, to)
		fmt.Printf("  Copied:  %s (%d bytes)\n", listOrNone(summary.Copied), summary.Bytes)
		if len(summary.Missing) > 0 {
			fmt.Printf("  Skipped: %s (not in %s)\n", strings.Join(summary.Missing, ", "), from)
		}
		logger.Info("migration complete", "from", from, "to", to, "copied", len(summary.Copied), "bytes", summary.Bytes)
		return nil
	},
}

// previewMigration reports what a migration would copy without opening the destination for writes.
func previewMigration(src storage.BlobStore, from, to string) error {
	fmt.Printf("Would copy from %s to %s:\n", from, to)
	for _, key := range tracker.Collections {
		data, err := src.Get(key)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			fmt.Printf("  %-20s not present\n", key)
		case err != nil:
			return fmt.Errorf("read %s: %w", key, err)
		default:
			fmt.Printf("  %-20s %d bytes\n", key, len(data))
		}
	}
	if path := cfg.StoragePath(to); path != "" {
		nonEmpty, err := storage.IsDirNonEmpty(path)
		if err == nil && nonEmpty {
			color.Yellow("\n⚠ %s already contains files", path)
		}
	}
	return nil
}

// existingCollections returns the tracker collections already stored in dst.
func existingCollections(dst storage.BlobStore) ([]string, error) {
	var found []string
	for _, key := range tracker.Collections {
		_, err := dst.Get(key)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("check destination %s: %w", key, err)
		}
		found = append(found, key)
	}
	return found, nil
}

func listOrNone(keys []string) string {
	if len(keys) == 0 {
		return "none"
	}
	return strings.Join(keys, ", ")
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "source backend (sqlite, badger, file, charm)")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend (default: configured backend)")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "overwrite data already in the destination")
	rootCmd.AddCommand(migrateCmd)
}
