// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Defines verbose/quiet/format flags shared by all commands
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
████████╗██╗    ██╗███████╗███████╗████████╗███████╗███╗   ███╗██╗████████╗██╗  ██╗
╚══██╔══╝██║    ██║██╔════╝██╔════╝╚══██╔══╝██╔════╝████╗ ████║██║╚══██╔══╝██║  ██║
   ██║   ██║ █╗ ██║█████╗  █████╗     ██║   ███████╗██╔████╔██║██║   ██║   ███████║
   ██║   ██║███╗██║██╔══╝  ██╔══╝     ██║   ╚════██║██║╚██╔╝██║██║   ██║   ██╔══██║
   ██║   ╚███╔███╔╝███████╗███████╗   ██║   ███████║██║ ╚═╝ ██║██║   ██║   ██║  ██║
   ╚═╝    ╚══╝╚══╝ ╚══════╝╚══════╝   ╚═╝   ╚══════╝╚═╝     ╚═╝╚═╝   ╚═╝   ╚═╝  ╚═╝
`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tweetsmith",
		Short: "Generate tweet drafts in your own writing style",
		Long: banner + `
Tweetsmith learns a user's writing style from their past posts and
generates new tweet drafts that sound like them.

Ingest a user's post history, then generate drafts for any idea:
the most similar past posts are used as few-shot examples alongside
a computed style profile.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, table, json")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewIngestCmd())
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewRegenerateCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewProfileCmd())
	cmd.AddCommand(NewDraftsCmd())
	cmd.AddCommand(NewForgetCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewSyncCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
