// ABOUTME: CLI commands for Charm-based sync.
// ABOUTME: Supports link, unlink, status, push, pull, repair, reset, and wipe operations.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/harperreed/recovery/internal/charm"
	"github.com/harperreed/recovery/internal/config"
	"github.com/harperreed/recovery/internal/storage"
	"github.com/harperreed/recovery/internal/tracker"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Sync recovery data across devices",
	Long: `Sync recovery data across devices using Charm Cloud.

Your data is E2E encrypted with your SSH key before upload.
The server never sees your unencrypted recovery data.

GETTING STARTED:

  1. Link your device (creates/uses SSH key automatically):
     recovery sync link

  2. Either use Charm as your backend (RECOVERY_BACKEND=charm), or copy your
     local data up and down explicitly:
     recovery sync push
     recovery sync pull

  3. Check sync status:
     recovery sync status

COMMANDS:

  link        Link this device to your Charm account
  unlink      Disconnect this device from Charm
  status      Show sync status and account info
  push        Copy local data to Charm (replaces cloud copy)
  pull        Copy Charm data to the local backend (replaces local copy)
  repair      Repair database corruption (checkpoints WAL, removes SHM, vacuums)
  reset       Reset local Charm data and restore from cloud (destructive)
  wipe        Delete cloud and local Charm data (destructive)`,
}

var syncLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link this device to Charm",
	Long: `Link this device to your Charm account.

If you don't have a Charm account, one will be created using your SSH key.
If you already have an account, you'll be prompted to link via charm.sh.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharm("link"); err != nil {
			return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}

		color.Green("\n✓ Device linked to Charm")

		client, err := charm.Open()
		if err != nil {
			color.Yellow("⚠ Initial sync failed: %v", err)
			return nil
		}
		defer client.Close()
		if err := client.Sync(); err != nil {
			color.Yellow("⚠ Initial sync failed: %v", err)
		} else {
			color.Green("✓ Initial sync complete")
		}
		return nil
	},
}

var syncUnlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Disconnect from Charm",
	Long: `Disconnect this device from Charm.

This does not delete your local recovery data.
You can link again later with 'recovery sync link'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharm("unlink"); err != nil {
			return fmt.Errorf("failed to unlink: %w", err)
		}

		color.Green("✓ Device unlinked from Charm")
		fmt.Println("Your local recovery data is preserved.")
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	Long: `Show current sync status including:
- Charm account info
- Connection status
- Data held in Charm`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := charm.Open()
		if err != nil {
			color.Yellow("Charm client not available: %v", err)
			fmt.Println("\nRun 'recovery sync link' to connect to Charm.")
			return nil
		}
		defer client.Close()

		id, err := client.ID()
		if err != nil {
			color.Yellow("Not linked to Charm")
			fmt.Println("\nRun 'recovery sync link' to connect to Charm.")
			return nil
		}

		host := os.Getenv("CHARM_HOST")
		if host == "" {
			host = charm.Host
		}
		fmt.Println("Charm ID:", id)
		fmt.Println("Server:", host)
		fmt.Println("Backend:", cfg.GetBackend())
		if client.IsReadOnly() {
			color.Yellow("⚠ Database is locked by another process; opened read-only")
		}
		fmt.Println()

		remote := tracker.New(client, tracker.WithLogger(logger))
		remote.Load()

		color.Green("✓ Connected to Charm")
		fmt.Printf("  Check-ins: %d\n", len(remote.Metrics()))
		fmt.Printf("  Injuries:  %d (%d active)\n", len(remote.Injuries()), len(remote.ActiveInjuries()))
		return nil
	},
}

var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Copy local data to Charm",
	Long:  `Copy the configured local backend's collections to Charm, replacing the cloud copy.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return transferCharm(true)
	},
}

var syncPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Copy Charm data to the local backend",
	Long:  `Copy the collections held in Charm into the configured local backend, replacing the local copy.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return transferCharm(false)
	},
}

var syncWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all cloud and local Charm data",
	Long: `Delete all cloud backups and local Charm data.

This is a DESTRUCTIVE operation. ALL data held in Charm will be permanently
deleted. Local sqlite, badger, or file backends are not touched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirm("This will PERMANENTLY DELETE all cloud backups and local Charm recovery data.\nType 'wipe' to confirm: ", "wipe") {
			fmt.Println("Canceled.")
			return nil
		}

		result, err := kv.Wipe(charm.DBName)
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}

		color.Green("✓ Data wiped successfully")
		fmt.Printf("  Cloud backups deleted: %d\n", result.CloudBackupsDeleted)
		fmt.Printf("  Local files deleted: %d\n", result.LocalFilesDeleted)
		return nil
	},
}

var syncRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Repair database corruption",
	Long: `Repair database corruption by checkpointing WAL, removing SHM files, checking integrity, and vacuuming.

Use this when you encounter database lock errors or corruption.
Run with --force to attempt recovery even if integrity checks fail.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		fmt.Println("Repairing recovery database...")
		result, err := kv.Repair(charm.DBName, force)

		if result.WalCheckpointed {
			color.Green("  ✓ WAL checkpointed")
		}
		if result.ShmRemoved {
			color.Green("  ✓ SHM file removed")
		}
		if result.IntegrityOK {
			color.Green("  ✓ Integrity check passed")
		} else {
			color.Red("  ✗ Integrity check failed")
		}
		if result.Vacuumed {
			color.Green("  ✓ Database vacuumed")
		}

		if err != nil {
			if !force {
				color.Yellow("\nRun with --force to attempt recovery.")
			}
			return fmt.Errorf("repair failed: %w", err)
		}

		color.Green("\n✓ Repair complete")
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset local Charm data and restore from cloud",
	Long: `Delete the local Charm copy and restore it from Charm Cloud.

This is a destructive operation. Use this to:
- Fix sync conflicts
- Reset a device to cloud state
- Start fresh on a device`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirm("This will DELETE the local Charm recovery data and restore from cloud.\nContinue? [y/N]: ", "y") {
			fmt.Println("Canceled.")
			return nil
		}

		if err := kv.Reset(charm.DBName); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}

		color.Green("✓ Local data reset and restored from cloud")
		return nil
	},
}

// transferCharm copies the tracker collections between the local backend and Charm.
func transferCharm(push bool) error {
	local := cfg.GetBackend()
	if local == config.BackendCharm {
		return fmt.Errorf("the configured backend is already charm; nothing to %s", direction(push))
	}

	localStore, err := cfg.OpenBackend(local)
	if err != nil {
		return err
	}
	defer localStore.Close()

	remote, err := cfg.OpenBackend(config.BackendCharm)
	if err != nil {
		return err
	}
	defer remote.Close()

	src, dst := remote, localStore
	if push {
		src, dst = localStore, remote
	}

	summary, err := storage.MigrateData(src, dst, tracker.Collections)
	if err != nil {
		return fmt.Errorf("%s failed: %w", direction(push), err)
	}

	if len(summary.Copied) == 0 {
		color.Yellow("Nothing to %s: no recovery data found", direction(push))
		return nil
	}
	color.Green("✓ %s complete (%s, %d bytes)", strings.ToUpper(direction(push)[:1])+direction(push)[1:], strings.Join(summary.Copied, ", "), summary.Bytes)
	return nil
}

func direction(push bool) string {
	if push {
		return "push"
	}
	return "pull"
}

func runCharm(arg string) error {
	charmCmd := exec.Command("charm", arg)
	charmCmd.Stdin = os.Stdin
	charmCmd.Stdout = os.Stdout
	charmCmd.Stderr = os.Stderr
	return charmCmd.Run()
}

func confirm(prompt, want string) bool {
	fmt.Print(prompt)
	var answer string
	_, _ = fmt.Scanln(&answer)
	return strings.EqualFold(strings.TrimSpace(answer), want)
}

func init() {
	for _, c := range []*cobra.Command{
		syncLinkCmd, syncUnlinkCmd, syncStatusCmd, syncPushCmd,
		syncPullCmd, syncRepairCmd, syncResetCmd, syncWipeCmd,
	} {
		c.Annotations = map[string]string{skipTrackerAnnotation: "true"}
		syncCmd.AddCommand(c)
	}

	syncRepairCmd.Flags().Bool("force", false, "Attempt recovery even if integrity checks fail")

	rootCmd.AddCommand(syncCmd)
}
