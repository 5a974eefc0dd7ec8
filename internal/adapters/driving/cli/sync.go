package cli

import (
	"github.com/spf13/cobra"

	"github.com/inkpress/inkpress/internal/core/services"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull published items into the local draft store",
	Long: `Runs one sync pass: queries the Notion database for published items,
converts changed ones and writes local draft documents. Unchanged items
are skipped; a failing item does not abort the pass.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	if err := ensureApp(); err != nil {
		return err
	}

	ctx := cmd.Context()
	source, err := buildRemoteSource(ctx)
	if err != nil {
		return err
	}

	engine := services.NewSyncEngine(source, ledgerStore, store.DocumentStore(), converter, auditLog)

	cmd.Println("Synchronising...")
	result, err := engine.Sync(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("Synchronised %d item(s).\n", result.SyncedCount)
	if len(result.Errors) > 0 {
		cmd.Printf("%d item(s) failed:\n", len(result.Errors))
		for _, msg := range result.Errors {
			cmd.Printf("  - %s\n", msg)
		}
	}
	return nil
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the sync ledger",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if err := ensureApp(); err != nil {
		return err
	}
	if ledgerStore == nil {
		return errNotConfigured
	}

	entries, err := ledgerStore.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		cmd.Println("Nothing synced yet.")
		return nil
	}

	for _, e := range entries {
		cmd.Printf("%-8s %s -> %s (last synced %s)\n",
			e.Status, e.RemoteID, e.LocalDocumentID, e.LastSyncedAt)
	}
	return nil
}
