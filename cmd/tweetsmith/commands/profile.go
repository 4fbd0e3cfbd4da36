// ABOUTME: CLI command to view a user's style profile and tendencies
// ABOUTME: Shows computed averages, frequencies, and posting patterns
package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var profileUser string

// NewProfileCmd creates the profile command
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View a user's style profile",
		Long: `View a user's computed style profile and posting tendencies.

The profile is recomputed from scratch on every ingest; it reflects
only the most recently ingested batch of posts.

Examples:
  tweetsmith profile --user alice
  tweetsmith profile --user alice --format json`,
		RunE: runProfile,
	}

	cmd.Flags().StringVar(&profileUser, "user", "", "User to look up (required)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runProfile(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	a, err := initApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	profile, err := a.profiles.Get(profileUser)
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}
	tendency, err := a.profiles.GetTendency(profileUser)
	if err != nil {
		return fmt.Errorf("loading tendency analysis: %w", err)
	}

	if profile == nil && tendency == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "No profile for %s. Ingest posts first:\n", profileUser)
		fmt.Fprintf(cmd.OutOrStdout(), "  tweetsmith ingest --user %s --file posts.txt\n", profileUser)
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(map[string]interface{}{
			"profile":  profile,
			"tendency": tendency,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	if profile != nil {
		fmt.Fprintf(w, "Tone:\t%s\n", profile.Tone)
		fmt.Fprintf(w, "Average length:\t%d chars\n", profile.AvgLength)
		fmt.Fprintf(w, "Sentence structure:\t%s\n", profile.SentenceStructure)
		fmt.Fprintf(w, "Emoji frequency:\t%.0f%%\n", profile.EmojiFrequency*100)
		fmt.Fprintf(w, "Hashtag frequency:\t%.0f%%\n", profile.HashtagFrequency*100)
		fmt.Fprintf(w, "Updated:\t%s\n", formatTime(profile.UpdatedAt))
	}
	if tendency != nil {
		fmt.Fprintf(w, "Posting frequency:\t%s\n", tendency.PostingFrequency)
		fmt.Fprintf(w, "Average engagement:\t%.1f\n", tendency.EngagementPatterns.AvgEngagement)
		if len(tendency.CommonTopics) > 0 {
			fmt.Fprintf(w, "Common topics:\t%s\n", strings.Join(tendency.CommonTopics, ", "))
		}
		if len(tendency.StyleMarkers) > 0 {
			fmt.Fprintf(w, "Style markers:\t%s\n", strings.Join(tendency.StyleMarkers, ", "))
		}
	}
	_ = w.Flush()

	return nil
}
