package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/inkpress/inkpress/internal/convert"
	"github.com/inkpress/inkpress/internal/core/domain"
	"github.com/inkpress/inkpress/internal/core/ports/driven"
	"github.com/inkpress/inkpress/internal/core/ports/driving"
	"github.com/inkpress/inkpress/internal/logger"
)

// Ensure GenerateEngine implements the interface.
var _ driving.GenerateService = (*GenerateEngine)(nil)

// GenerateEngine runs completions through a provider adapter, enforcing
// the per-caller generation cap and decrypting the provider key on each
// call. Article generation layers prompt construction and document
// persistence on top of the raw completion path.
type GenerateEngine struct {
	vault     driving.VaultService
	factory   driven.ProviderFactory
	docs      driven.DocumentStore
	converter *convert.Converter
	audit     driven.AuditLog

	configs         map[string]domain.ProviderConfig
	defaultProvider string
	limiter         *generationLimiter
	log             zerolog.Logger
}

// NewGenerateEngine creates a new generation engine. configs carries
// per-provider model and timeout settings; providers without an entry
// run on adapter defaults. audit may be nil.
func NewGenerateEngine(
	vault driving.VaultService,
	factory driven.ProviderFactory,
	docs driven.DocumentStore,
	converter *convert.Converter,
	audit driven.AuditLog,
	configs map[string]domain.ProviderConfig,
	defaultProvider string,
	generationsPerHour int,
) *GenerateEngine {
	return &GenerateEngine{
		vault:           vault,
		factory:         factory,
		docs:            docs,
		converter:       converter,
		audit:           audit,
		configs:         configs,
		defaultProvider: defaultProvider,
		limiter:         newGenerationLimiter(generationsPerHour),
		log:             logger.New("generate"),
	}
}

// Complete runs one rate-limited raw completion.
func (e *GenerateEngine) Complete(ctx context.Context, prompt, provider, caller string) (string, error) {
	provider, err := e.resolveProvider(provider)
	if err != nil {
		return "", err
	}
	if !e.limiter.Allow(caller) {
		e.record(ctx, "rate_limited", "generation cap reached for "+caller, domain.SeverityLow)
		return "", &domain.RateLimitError{}
	}
	return e.complete(ctx, prompt, provider)
}

// GenerateArticle builds title and body prompts, generates both,
// converts the body from Markdown and stores a draft document. One
// article consumes one generation from the caller's cap even though it
// issues two provider calls.
func (e *GenerateEngine) GenerateArticle(ctx context.Context, req domain.ArticleRequest) (*domain.ArticleResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	provider, err := e.resolveProvider(req.Provider)
	if err != nil {
		return nil, err
	}
	if !e.limiter.Allow(req.Caller) {
		e.record(ctx, "rate_limited", "generation cap reached for "+req.Caller, domain.SeverityLow)
		return nil, &domain.RateLimitError{}
	}

	title, err := e.complete(ctx, titlePrompt(req), provider)
	if err != nil {
		return nil, fmt.Errorf("generate title: %w", err)
	}
	title = sanitizeTitle(title, subject(req))

	body, err := e.complete(ctx, contentPrompt(req, title), provider)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	blocks, err := e.converter.Markdown([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("convert article: %w", err)
	}
	content := e.converter.Render(ctx, blocks)

	docID, err := e.docs.Upsert(ctx, "", title, content)
	if err != nil {
		return nil, fmt.Errorf("persist article: %w", err)
	}

	e.record(ctx, "article_generated",
		fmt.Sprintf("article generated via %s: %s", provider, title), domain.SeverityInfo)
	e.log.Info().Str("provider", provider).Str("document_id", docID).Msg("article generated")

	return &domain.ArticleResult{DocumentID: docID, Title: title}, nil
}

// complete performs one provider round trip without touching the rate
// limiter.
func (e *GenerateEngine) complete(ctx context.Context, prompt, provider string) (string, error) {
	apiKey, err := e.vault.Secret(ctx, provider)
	if err != nil {
		return "", err
	}

	cfg, ok := e.configs[provider]
	if !ok {
		cfg = domain.ProviderConfig{}
	}
	cfg.Provider = provider

	svc, err := e.factory.Create(cfg, apiKey)
	if err != nil {
		return "", fmt.Errorf("create provider adapter: %w", err)
	}
	return svc.Generate(ctx, prompt)
}

func (e *GenerateEngine) resolveProvider(provider string) (string, error) {
	if provider == "" {
		provider = e.defaultProvider
	}
	if !domain.KnownProvider(provider) {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownProvider, provider)
	}
	return provider, nil
}

func (e *GenerateEngine) record(ctx context.Context, eventType, description string, severity domain.Severity) {
	if e.audit == nil {
		return
	}
	if err := e.audit.Record(ctx, eventType, description, severity); err != nil {
		e.log.Warn().Err(err).Str("event", eventType).Msg("audit record failed")
	}
}

var styleInstructions = map[string]string{
	"informative":    "Write in an informative, factual tone with clear explanations.",
	"conversational": "Write in a friendly, conversational tone that addresses the reader directly.",
	"professional":   "Write in a formal, professional tone suited to business readers.",
	"casual":         "Write in a relaxed, casual tone.",
	"academic":       "Write in an academic tone with precise terminology and structured argument.",
	"persuasive":     "Write in a persuasive tone that motivates the reader to act.",
}

var languageNames = map[string]string{
	"en-US": "American English",
	"en-GB": "British English",
	"zh-TW": "Traditional Chinese",
	"zh-CN": "Simplified Chinese",
}

// subject picks the article subject: an explicit topic wins over a bare
// keyword.
func subject(req domain.ArticleRequest) string {
	if req.Topic != "" {
		return req.Topic
	}
	return req.Keyword
}

func titlePrompt(req domain.ArticleRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write one SEO-friendly article title about %s.", subject(req))
	if req.Keyword != "" && req.Topic != "" {
		fmt.Fprintf(&b, " Include the keyword %q.", req.Keyword)
	}
	fmt.Fprintf(&b, " Write the title in %s.", languageNames[req.Language])
	b.WriteString(" Respond with the title only, without quotes.")
	return b.String()
}

func contentPrompt(req domain.ArticleRequest, title string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a complete article titled %q in Markdown format, using headings and subheadings.", title)
	if req.Keyword != "" {
		fmt.Fprintf(&b, " Use the keyword %q naturally throughout the article.", req.Keyword)
	}
	b.WriteString(" " + styleInstructions[req.Style])
	fmt.Fprintf(&b, " Write the article in %s.", languageNames[req.Language])
	b.WriteString(" Do not repeat the title as a heading.")
	return b.String()
}

// sanitizeTitle reduces a completion to one clean title line.
func sanitizeTitle(title, fallback string) string {
	if i := strings.IndexByte(title, '\n'); i >= 0 {
		title = title[:i]
	}
	title = strings.TrimSpace(title)
	title = strings.Trim(title, `"'`)
	title = strings.TrimSpace(strings.TrimLeft(title, "#"))
	if title == "" {
		return fallback
	}
	return title
}
