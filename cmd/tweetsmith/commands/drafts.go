// ABOUTME: CLI command to browse and update draft history
// ABOUTME: Lists stored drafts and transitions their lifecycle status
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tweetsmith/tweetsmith/internal/storage/sqlite"
)

var (
	draftsUser   string
	draftsStatus string
	draftsLimit  int
)

// NewDraftsCmd creates the drafts command group
func NewDraftsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "Browse and manage draft history",
		Long: `Browse and manage generated draft history.

Every generated draft is saved locally with its idea, confidence,
and lifecycle status (generated, edited, posted).

Examples:
  tweetsmith drafts list --user alice
  tweetsmith drafts list --user alice --status posted
  tweetsmith drafts edit <draft-id> "revised text"
  tweetsmith drafts mark <draft-id> posted`,
	}

	cmd.AddCommand(newDraftsListCmd())
	cmd.AddCommand(newDraftsEditCmd())
	cmd.AddCommand(newDraftsMarkCmd())

	return cmd
}

func newDraftsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored drafts, newest first",
		RunE:  runDraftsList,
	}

	cmd.Flags().StringVar(&draftsUser, "user", "", "User whose drafts to list (required)")
	cmd.Flags().StringVar(&draftsStatus, "status", "", "Filter by status: generated, edited, posted")
	cmd.Flags().IntVar(&draftsLimit, "limit", 20, "Maximum drafts to show")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runDraftsList(cmd *cobra.Command, args []string) error {
	store, closeStore, err := openDraftStore()
	if err != nil {
		return err
	}
	defer closeStore()

	records, err := store.ListByUser(draftsUser, draftsStatus, draftsLimit)
	if err != nil {
		return fmt.Errorf("listing drafts: %w", err)
	}

	if len(records) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No drafts found for %s\n", draftsUser)
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tSTATUS\tCREATED\tIDEA\tTEXT\n")
	fmt.Fprintf(w, "--\t------\t-------\t----\t----\n")
	for _, record := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			truncate(record.ID, 8),
			record.Status,
			formatTime(record.CreatedAt),
			truncate(record.Idea, 25),
			truncate(record.Text, 50))
	}
	_ = w.Flush()

	return nil
}

func newDraftsEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <draft-id> <text>",
		Short: "Replace a draft's text and mark it edited",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openDraftStore()
			if err != nil {
				return err
			}
			defer closeStore()

			id, err := resolveDraftID(store, args[0])
			if err != nil {
				return err
			}
			if err := store.UpdateText(id, args[1]); err != nil {
				return fmt.Errorf("editing draft: %w", err)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Draft %s updated\n", truncate(id, 8))
			}
			return nil
		},
	}
}

func newDraftsMarkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mark <draft-id> <status>",
		Short: "Set a draft's status (generated, edited, posted)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openDraftStore()
			if err != nil {
				return err
			}
			defer closeStore()

			id, err := resolveDraftID(store, args[0])
			if err != nil {
				return err
			}
			if err := store.UpdateStatus(id, args[1]); err != nil {
				return fmt.Errorf("updating status: %w", err)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Draft %s marked %s\n", truncate(id, 8), args[1])
			}
			return nil
		},
	}
}

// openDraftStore opens just the local draft history, without the full stack
func openDraftStore() (*sqlite.DraftStore, func(), error) {
	db, err := sqlite.Open(sqlite.DefaultDBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("opening draft history: %w", err)
	}
	return sqlite.NewDraftStore(db), func() { _ = db.Close() }, nil
}

// resolveDraftID accepts a full draft ID as-is. Prefixes are not expanded;
// a missing draft surfaces as a validation error from the store.
func resolveDraftID(store *sqlite.DraftStore, id string) (string, error) {
	record, err := store.GetByID(id)
	if err != nil {
		return "", fmt.Errorf("looking up draft: %w", err)
	}
	if record == nil {
		return "", fmt.Errorf("draft %s not found", id)
	}
	return record.ID, nil
}
