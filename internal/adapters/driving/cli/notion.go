package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkpress/inkpress/internal/adapters/driven/notion"
	"github.com/inkpress/inkpress/internal/core/ports/driven"
)

// notionSecretName is the vault entry holding the integration token.
const notionSecretName = "notion"

var notionCmd = &cobra.Command{
	Use:   "notion",
	Short: "Inspect the Notion connection",
}

var notionTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Verify the integration token and connectivity",
	RunE:  runNotionTest,
}

var notionDatabasesCmd = &cobra.Command{
	Use:   "databases",
	Short: "List databases shared with the integration",
	RunE:  runNotionDatabases,
}

func init() {
	notionCmd.AddCommand(notionTestCmd)
	notionCmd.AddCommand(notionDatabasesCmd)
	rootCmd.AddCommand(notionCmd)
}

// buildRemoteSource constructs a Notion client with the token held in
// the vault.
func buildRemoteSource(ctx context.Context) (driven.RemoteSource, error) {
	if vaultService == nil {
		return nil, errNotConfigured
	}
	token, err := vaultService.Secret(ctx, notionSecretName)
	if err != nil {
		return nil, fmt.Errorf("notion token: %w", err)
	}
	return notion.NewClient(notion.Config{
		Token:      token,
		DatabaseID: cfg.Notion.DatabaseID,
	})
}

func runNotionTest(cmd *cobra.Command, _ []string) error {
	if err := ensureApp(); err != nil {
		return err
	}
	source, err := buildRemoteSource(cmd.Context())
	if err != nil {
		return err
	}

	name, err := source.Probe(cmd.Context())
	if err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	cmd.Printf("Connected as %s.\n", name)
	return nil
}

func runNotionDatabases(cmd *cobra.Command, _ []string) error {
	if err := ensureApp(); err != nil {
		return err
	}
	source, err := buildRemoteSource(cmd.Context())
	if err != nil {
		return err
	}

	databases, err := source.ListDatabases(cmd.Context())
	if err != nil {
		return err
	}
	if len(databases) == 0 {
		cmd.Println("No databases shared with the integration.")
		return nil
	}
	for _, db := range databases {
		cmd.Printf("%s  %s\n", db.ID, db.Title)
	}
	return nil
}
