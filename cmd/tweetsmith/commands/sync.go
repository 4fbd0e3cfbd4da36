// ABOUTME: Sync commands for Charm cloud synchronization
// ABOUTME: Provides status, now, and reset management
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tweetsmith/tweetsmith/internal/config"
)

// NewSyncCmd creates the sync command group
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Manage Charm cloud synchronization",
		Long: `Manage synchronization with Charm cloud.

Tweetsmith uses Charm for automatic cloud sync via SSH keys. Your
ingested posts and style profiles sync automatically across devices
linked to the same Charm account. Draft history stays local.`,
	}

	cmd.AddCommand(newSyncStatusCmd())
	cmd.AddCommand(newSyncNowCmd())
	cmd.AddCommand(newSyncResetCmd())

	return cmd
}

func newSyncStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show sync status and connection info",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			client, err := charmClient(cfg)
			if err != nil {
				return fmt.Errorf("failed to connect to Charm: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Status: Connected")
			fmt.Fprintf(cmd.OutOrStdout(), "Host: %s\n", cfg.CharmHost)

			keys, err := client.ListKeys("")
			if err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Stored keys: %d\n", len(keys))
			}

			return nil
		},
	}
}

func newSyncNowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Force immediate sync with Charm cloud",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			client, err := charmClient(cfg)
			if err != nil {
				return fmt.Errorf("failed to connect to Charm: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Syncing...")
			if err := client.Sync(); err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Sync complete")
			return nil
		},
	}
}

func newSyncResetCmd() *cobra.Command {
	var resetYes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe ALL synced data for ALL users",
		Long: `Wipe all Charm-synced data: every user's post vectors, style
profiles, and tendency analyses. Local draft history is untouched.

This cannot be undone.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !resetYes {
				return fmt.Errorf("refusing to wipe synced data without --yes")
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			client, err := charmClient(cfg)
			if err != nil {
				return fmt.Errorf("failed to connect to Charm: %w", err)
			}

			if err := client.Reset(); err != nil {
				return fmt.Errorf("reset failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "All synced data wiped")
			return nil
		},
	}

	cmd.Flags().BoolVar(&resetYes, "yes", false, "Confirm the wipe")

	return cmd
}
