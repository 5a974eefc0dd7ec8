package llm

import (
	"github.com/inkpress/inkpress/internal/core/domain"
	"github.com/inkpress/inkpress/internal/core/ports/driven"
)

const (
	openRouterBaseURL = "https://openrouter.ai/api/v1"
	openRouterModel   = "openai/gpt-4o-mini"

	// OpenRouter asks apps to identify themselves for its rankings.
	openRouterReferer = "https://github.com/inkpress/inkpress"
	openRouterTitle   = "Inkpress"
)

// NewOpenRouter creates an OpenRouter provider adapter.
func NewOpenRouter(cfg domain.ProviderConfig, apiKey string) (driven.ProviderService, error) {
	c, err := newChatClient(domain.ProviderOpenRouter, openRouterBaseURL, openRouterModel, cfg, apiKey)
	if err != nil {
		return nil, err
	}
	c.headers = map[string]string{
		"HTTP-Referer": openRouterReferer,
		"X-Title":      openRouterTitle,
	}
	return c, nil
}
