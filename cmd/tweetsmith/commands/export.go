// ABOUTME: CLI command to export a user's data to YAML or Markdown
// ABOUTME: Bundles drafts, style profile, and tendency analysis into one file
package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	exportUser   string
	exportOutput string
	exportFormat string
)

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a user's data to a file",
		Long: `Export a user's data to a file: their draft history, style profile,
and tendency analysis.

Supports YAML (machine-readable) and Markdown (human-readable).

Examples:
  tweetsmith export --user alice --output alice.yaml
  tweetsmith export --user alice --output alice.md --export-format markdown`,
		RunE: runExport,
	}

	cmd.Flags().StringVar(&exportUser, "user", "", "User to export (required)")
	cmd.Flags().StringVar(&exportOutput, "output", "", "Output file path (required)")
	cmd.Flags().StringVar(&exportFormat, "export-format", "", "Export format: yaml or markdown (default: from file extension)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	format := exportFormat
	if format == "" {
		switch strings.ToLower(filepath.Ext(exportOutput)) {
		case ".md", ".markdown":
			format = "markdown"
		default:
			format = "yaml"
		}
	}

	a, err := initApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	profile, err := a.profiles.Get(exportUser)
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}
	tendency, err := a.profiles.GetTendency(exportUser)
	if err != nil {
		return fmt.Errorf("loading tendency analysis: %w", err)
	}

	switch format {
	case "yaml":
		err = a.drafts.ExportToYAML(exportOutput, exportUser, profile, tendency)
	case "markdown":
		err = a.drafts.ExportToMarkdown(exportOutput, exportUser, profile, tendency)
	default:
		return fmt.Errorf("unknown export format %q (expected yaml or markdown)", format)
	}
	if err != nil {
		return fmt.Errorf("exporting: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", exportUser, exportOutput)
	}

	return nil
}
