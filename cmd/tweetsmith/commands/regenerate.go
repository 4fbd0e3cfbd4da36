// ABOUTME: CLI command to regenerate drafts while avoiding previous attempts
// ABOUTME: Pulls the avoid-list from flags or from recent draft history
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	regenerateUser  string
	regenerateAvoid []string
)

// NewRegenerateCmd creates the regenerate command
func NewRegenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regenerate <idea>",
		Short: "Generate fresh drafts, avoiding previous ones",
		Long: `Generate 3 fresh tweet drafts for an idea, steering the model away
from drafts you rejected.

Pass rejected drafts with --avoid, or omit it to avoid the drafts
most recently saved for this idea.

Examples:
  tweetsmith regenerate --user alice "launching our new API today"
  tweetsmith regenerate --user alice --avoid "old draft text" "launch day"`,
		Args: cobra.ExactArgs(1),
		RunE: runRegenerate,
	}

	cmd.Flags().StringVar(&regenerateUser, "user", "", "User to generate drafts for (required)")
	cmd.Flags().StringArrayVar(&regenerateAvoid, "avoid", nil, "Draft text to avoid (can be repeated)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runRegenerate(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	idea := args[0]

	a, err := initApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	previous := regenerateAvoid
	if len(previous) == 0 {
		// Fall back to the user's recent draft history for this idea
		records, err := a.drafts.ListByUser(regenerateUser, "", 10)
		if err != nil {
			return fmt.Errorf("loading draft history: %w", err)
		}
		for _, record := range records {
			if record.Idea == idea {
				previous = append(previous, record.Text)
			}
		}
	}

	drafts, err := a.generator.Regenerate(cmd.Context(), regenerateUser, idea, previous)
	if err != nil {
		return fmt.Errorf("regenerating drafts: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(map[string]interface{}{"drafts": drafts}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	for i, draft := range drafts {
		fmt.Fprintf(cmd.OutOrStdout(), "--- Draft %d ---\n%s\n\n", i+1, draft)
	}
	if !quiet && len(previous) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Avoided %d previous draft(s)\n", len(previous))
	}

	return nil
}
