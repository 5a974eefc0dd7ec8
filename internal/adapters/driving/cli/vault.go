package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkpress/inkpress/internal/core/domain"
)

var vaultYes bool

var vaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Manage encrypted credentials",
}

var vaultSetCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Store a credential",
	Long: `Encrypts and stores a credential. Provider API keys go under the
provider name (e.g. deepseek); the Notion integration token goes under
"notion".`,
	Args: cobra.ExactArgs(2),
	RunE: runVaultSet,
}

var vaultListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored credential names",
	RunE:  runVaultList,
}

var vaultDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a credential",
	Args:  cobra.ExactArgs(1),
	RunE:  runVaultDelete,
}

var vaultRotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Rotate the encryption key",
	Long: `Discards the encryption key and clears every stored credential. Old
ciphertexts cannot survive a key change; all secrets must be re-entered
afterwards.`,
	RunE: runVaultRotate,
}

func init() {
	vaultRotateCmd.Flags().BoolVar(&vaultYes, "yes", false, "confirm the rotation")
	vaultCmd.AddCommand(vaultSetCmd)
	vaultCmd.AddCommand(vaultListCmd)
	vaultCmd.AddCommand(vaultDeleteCmd)
	vaultCmd.AddCommand(vaultRotateCmd)
	rootCmd.AddCommand(vaultCmd)
}

func runVaultSet(cmd *cobra.Command, args []string) error {
	if err := ensureApp(); err != nil {
		return err
	}
	name, value := args[0], args[1]

	if name == notionSecretName {
		if !domain.ValidIntegrationToken(value) {
			return fmt.Errorf("%w: value does not look like an integration token", domain.ErrInvalidInput)
		}
	} else if !domain.ValidProviderKey(value) {
		return fmt.Errorf("%w: value does not look like an API key", domain.ErrInvalidInput)
	}

	if err := vaultService.SetSecret(cmd.Context(), name, value); err != nil {
		return err
	}
	cmd.Printf("Credential %q stored.\n", name)
	return nil
}

func runVaultList(cmd *cobra.Command, _ []string) error {
	if err := ensureApp(); err != nil {
		return err
	}
	names, err := store.CredentialStore().List(cmd.Context())
	if err != nil {
		return err
	}
	if len(names) == 0 {
		cmd.Println("No credentials stored.")
		return nil
	}
	for _, name := range names {
		cmd.Println(name)
	}
	return nil
}

func runVaultDelete(cmd *cobra.Command, args []string) error {
	if err := ensureApp(); err != nil {
		return err
	}
	if err := vaultService.DeleteSecret(cmd.Context(), args[0]); err != nil {
		return err
	}
	cmd.Printf("Credential %q deleted.\n", args[0])
	return nil
}

func runVaultRotate(cmd *cobra.Command, _ []string) error {
	if err := ensureApp(); err != nil {
		return err
	}
	if !vaultYes {
		return fmt.Errorf("rotation clears every stored credential; re-run with --yes to confirm")
	}
	if err := vaultService.Rotate(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("Encryption key rotated. All credentials cleared; re-enter them with vault set.")
	return nil
}
