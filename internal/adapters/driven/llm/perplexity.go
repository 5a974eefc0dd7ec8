package llm

import (
	"github.com/inkpress/inkpress/internal/core/domain"
	"github.com/inkpress/inkpress/internal/core/ports/driven"
)

const (
	perplexityBaseURL = "https://api.perplexity.ai"
	perplexityModel   = "sonar"

	// Perplexity responds with citations and hedging unless steered by
	// a system message.
	perplexitySystemMsg = "Be precise and concise. Respond with the requested content only."
)

// NewPerplexity creates a Perplexity provider adapter.
func NewPerplexity(cfg domain.ProviderConfig, apiKey string) (driven.ProviderService, error) {
	c, err := newChatClient(domain.ProviderPerplexity, perplexityBaseURL, perplexityModel, cfg, apiKey)
	if err != nil {
		return nil, err
	}
	c.system = perplexitySystemMsg
	return c, nil
}
