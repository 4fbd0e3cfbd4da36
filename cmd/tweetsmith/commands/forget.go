// ABOUTME: CLI command to delete all stored data for a user
// ABOUTME: Removes post vectors, style profile, tendencies, and draft history
package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var forgetYes bool

// NewForgetCmd creates the forget command
func NewForgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forget <user>",
		Short: "Delete everything stored for a user",
		Long: `Delete everything stored for a user: their post vectors, style
profile, tendency analysis, and local draft history.

Forgetting a user with no stored data succeeds as a no-op.

Examples:
  tweetsmith forget alice
  tweetsmith forget --yes alice`,
		Args: cobra.ExactArgs(1),
		RunE: runForget,
	}

	cmd.Flags().BoolVar(&forgetYes, "yes", false, "Skip confirmation prompt")

	return cmd
}

func runForget(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	userID := args[0]

	if !forgetYes {
		fmt.Fprintf(cmd.OutOrStdout(), "Delete all data for %s? [y/N] ", userID)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
			return nil
		}
	}

	a, err := initApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if err := a.index.DeleteUser(userID); err != nil {
		return fmt.Errorf("deleting post vectors: %w", err)
	}
	if err := a.profiles.Delete(userID); err != nil {
		return fmt.Errorf("deleting style profile: %w", err)
	}
	draftsDeleted, err := a.drafts.DeleteUser(userID)
	if err != nil {
		return fmt.Errorf("deleting draft history: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Forgot %s (%d drafts removed)\n", userID, draftsDeleted)
	}

	return nil
}
