// ABOUTME: CLI command to generate tweet drafts for an idea
// ABOUTME: Retrieves similar posts, prompts the LLM, and saves draft history
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tweetsmith/tweetsmith/internal/core"
)

var (
	generateUser       string
	generateVariations int
	generateTopK       int
	generateNoSave     bool
)

// NewGenerateCmd creates the generate command
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <idea>",
		Short: "Generate tweet drafts for an idea",
		Long: `Generate tweet drafts for an idea in the user's writing style.

The idea is embedded and matched against the user's ingested posts;
the most similar ones become few-shot examples for the generator.
Fails if the user has no sufficiently similar history.

Examples:
  tweetsmith generate --user alice "launching our new API today"
  tweetsmith generate --user alice --variations 5 "weekend hackathon recap"
  tweetsmith generate --user alice --format json "conference talk accepted"`,
		Args: cobra.ExactArgs(1),
		RunE: runGenerate,
	}

	cmd.Flags().StringVar(&generateUser, "user", "", "User to generate drafts for (required)")
	cmd.Flags().IntVar(&generateVariations, "variations", core.DefaultVariations, "Number of draft variations")
	cmd.Flags().IntVar(&generateTopK, "top-k", core.DefaultTopK, "Number of similar posts to use as examples")
	cmd.Flags().BoolVar(&generateNoSave, "no-save", false, "Skip saving drafts to history")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	if err := validatePositiveInt(generateVariations, "variations"); err != nil {
		return err
	}
	if err := validatePositiveInt(generateTopK, "top-k"); err != nil {
		return err
	}

	idea := args[0]

	a, err := initApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	result, err := a.generator.Generate(cmd.Context(), generateUser, idea, generateVariations, generateTopK)
	if err != nil {
		return fmt.Errorf("generating drafts: %w", err)
	}

	if !generateNoSave {
		if _, err := a.drafts.SaveResult(generateUser, idea, result); err != nil {
			return fmt.Errorf("saving draft history: %w", err)
		}
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	for i, draft := range result.Drafts {
		fmt.Fprintf(cmd.OutOrStdout(), "--- Draft %d ---\n%s\n\n", i+1, draft)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Confidence: %.2f (based on %d similar posts)\n",
			result.Confidence, len(result.SimilarPosts))
	}
	if verbose {
		for _, sp := range result.SimilarPosts {
			fmt.Fprintf(cmd.OutOrStdout(), "  %.3f  %s\n", sp.Similarity, truncate(sp.Post.Text, 60))
		}
	}

	return nil
}
