// Package cli implements the command-line interface. Commands talk to
// the core exclusively through the driving ports; wiring happens once
// per invocation before the first command that needs it.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/inkpress/inkpress/internal/adapters/driven/images"
	"github.com/inkpress/inkpress/internal/adapters/driven/keyfile"
	"github.com/inkpress/inkpress/internal/adapters/driven/llm"
	"github.com/inkpress/inkpress/internal/adapters/driven/storage/sqlite"
	"github.com/inkpress/inkpress/internal/config"
	"github.com/inkpress/inkpress/internal/convert"
	"github.com/inkpress/inkpress/internal/core/ports/driven"
	"github.com/inkpress/inkpress/internal/core/ports/driving"
	"github.com/inkpress/inkpress/internal/core/services"
	"github.com/inkpress/inkpress/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Flag values.
var (
	cfgFile string
	dataDir string
	verbose bool
)

// Wired application state, populated by ensureApp.
var (
	cfg             *config.Config
	store           *sqlite.Store
	converter       *convert.Converter
	auditLog        driven.AuditLog
	ledgerStore     driven.LedgerStore
	vaultService    driving.VaultService
	generateService driving.GenerateService
)

var rootCmd = &cobra.Command{
	Use:   "inkpress",
	Short: "Pull content and generate articles into a local draft store",
	Long: `inkpress pulls published items from a Notion database, converts them
to block-annotated documents, and generates article drafts through
configurable AI providers. Credentials are encrypted at rest.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.inkpress/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.inkpress/data)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the CLI.
func Execute() error {
	defer func() {
		if store != nil {
			store.Close()
		}
	}()
	return rootCmd.Execute()
}

// ensureApp wires configuration, storage and services. Idempotent;
// commands that need the application call it first.
func ensureApp() error {
	if cfg != nil {
		return nil
	}

	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if dataDir != "" {
		loaded.DataDir = dataDir
	}
	if verbose {
		loaded.Verbose = true
	}
	logger.SetVerbose(loaded.Verbose)

	s, err := sqlite.NewStore(loaded.DataDir)
	if err != nil {
		return err
	}

	keys, err := keyfile.NewKeyStore(loaded.DataDir)
	if err != nil {
		s.Close()
		return err
	}

	var importer driven.ImageImporter
	if loaded.Notion.ImportImages {
		imp, err := images.NewImporter(loaded.DataDir)
		if err != nil {
			s.Close()
			return err
		}
		importer = imp
	}

	cfg = loaded
	store = s
	auditLog = s.AuditLog()
	ledgerStore = s.LedgerStore()
	converter = convert.New(importer)
	vaultService = services.NewVaultService(keys, s.CredentialStore(), auditLog)
	generateService = services.NewGenerateEngine(
		vaultService,
		llm.NewFactory(),
		s.DocumentStore(),
		converter,
		auditLog,
		cfg.ProviderConfigs(),
		cfg.Generation.DefaultProvider,
		cfg.Generation.PerHour,
	)
	return nil
}

// errNotConfigured reports a service missing from the wiring.
var errNotConfigured = errors.New("service not configured")
