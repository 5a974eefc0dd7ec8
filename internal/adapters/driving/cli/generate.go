package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inkpress/inkpress/internal/core/domain"
)

// cliCaller identifies the CLI for per-caller rate limiting.
const cliCaller = "cli"

var (
	genTopic    string
	genKeyword  string
	genStyle    string
	genLanguage string
	genProvider string
	genPrompt   string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an article draft with an AI provider",
	Long: `Generates an SEO title and article body for a topic or keyword, converts
the result and stores it as a local draft. With --prompt the raw
completion is printed instead of stored.

Styles: ` + strings.Join(domain.ValidStyles, ", ") + `
Languages: ` + strings.Join(domain.ValidLanguages, ", "),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genTopic, "topic", "", "article topic")
	generateCmd.Flags().StringVar(&genKeyword, "keyword", "", "focus keyword")
	generateCmd.Flags().StringVar(&genStyle, "style", "", "writing style")
	generateCmd.Flags().StringVar(&genLanguage, "language", "", "output language")
	generateCmd.Flags().StringVar(&genProvider, "provider", "", "AI provider (default from config)")
	generateCmd.Flags().StringVar(&genPrompt, "prompt", "", "raw prompt; prints the completion without storing")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	if err := ensureApp(); err != nil {
		return err
	}
	if generateService == nil {
		return errNotConfigured
	}
	ctx := cmd.Context()

	if genPrompt != "" {
		text, err := generateService.Complete(ctx, genPrompt, genProvider, cliCaller)
		if err != nil {
			return err
		}
		cmd.Println(text)
		return nil
	}

	req := domain.ArticleRequest{
		Keyword:  genKeyword,
		Topic:    genTopic,
		Language: defaulted(genLanguage, cfg.Generation.Language),
		Style:    defaulted(genStyle, cfg.Generation.Style),
		Provider: genProvider,
		Caller:   cliCaller,
	}

	cmd.Println("Generating article...")
	result, err := generateService.GenerateArticle(ctx, req)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	cmd.Printf("Draft created: %s\n", result.Title)
	cmd.Printf("Document ID: %s\n", result.DocumentID)
	return nil
}

func defaulted(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
