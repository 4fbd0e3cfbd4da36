// ABOUTME: CLI command to search a user's ingested posts
// ABOUTME: Embeds the query and ranks posts by cosine similarity
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	searchUser  string
	searchLimit int
)

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search a user's ingested posts",
		Long: `Search a user's ingested posts by semantic similarity.

The query is embedded and compared against every stored post for
the user; results are ranked by cosine similarity.

Examples:
  tweetsmith search --user alice "shipping features"
  tweetsmith search --user alice --limit 10 "coffee"
  tweetsmith search --user alice --format json "conference"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().StringVar(&searchUser, "user", "", "User whose posts to search (required)")
	cmd.Flags().IntVar(&searchLimit, "limit", 5, "Maximum results to return")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}

	query := args[0]

	a, err := initApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	vec, err := a.llm.Embed(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("embedding query: %w", err)
	}

	results, err := a.index.FindSimilar(searchUser, vec, searchLimit, 0)
	if err != nil {
		return fmt.Errorf("searching posts: %w", err)
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No posts found for query: %s\n", query)
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	// Table format
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tPOSTED\tTEXT\n")
	fmt.Fprintf(w, "-----\t------\t----\n")
	for _, result := range results {
		fmt.Fprintf(w, "%.3f\t%s\t%s\n",
			result.Similarity,
			formatTime(result.Post.CreatedAt),
			truncate(result.Post.Text, 70))
	}
	_ = w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(results))
	}

	return nil
}
