// ABOUTME: CLI command to ingest a user's post history
// ABOUTME: Reads posts from a file or stdin, one post per line
package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	ingestFile string
	ingestUser string
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest a user's past posts",
		Long: `Ingest a user's past posts to learn their writing style.

Each post is embedded and stored in the vector index, then the user's
style profile and tendency analysis are recomputed from the batch.
Posts are read one per line; blank lines are skipped.

Examples:
  tweetsmith ingest --user alice --file posts.txt
  cat posts.txt | tweetsmith ingest --user alice`,
		RunE: runIngest,
	}

	cmd.Flags().StringVar(&ingestUser, "user", "", "User the posts belong to (required)")
	cmd.Flags().StringVar(&ingestFile, "file", "", "Read posts from file instead of stdin")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	var reader io.Reader = os.Stdin
	if ingestFile != "" {
		f, err := os.Open(ingestFile) // #nosec G304
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	}

	var posts []string
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			posts = append(posts, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading posts: %w", err)
	}
	if len(posts) == 0 {
		return fmt.Errorf("no posts provided")
	}

	a, err := initApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Ingesting %d posts for %s...\n", len(posts), ingestUser)
	}

	result, err := a.pipeline.IngestTexts(cmd.Context(), ingestUser, posts)
	if err != nil {
		return fmt.Errorf("ingesting posts: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Stored %d posts\n", len(result.PointIDs))
	if result.Profile != nil && !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Style profile updated: avg %d chars, emoji %.0f%%, hashtags %.0f%%\n",
			result.Profile.AvgLength,
			result.Profile.EmojiFrequency*100,
			result.Profile.HashtagFrequency*100)
	}
	if result.Tendency != nil && verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "Posting frequency: %s\n", result.Tendency.PostingFrequency)
		if len(result.Tendency.CommonTopics) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Common topics: %s\n", strings.Join(result.Tendency.CommonTopics, ", "))
		}
	}

	return nil
}
