package llm

import (
	"github.com/inkpress/inkpress/internal/core/domain"
	"github.com/inkpress/inkpress/internal/core/ports/driven"
)

const (
	grokBaseURL = "https://api.x.ai/v1"
	grokModel   = "grok-2-latest"
)

// NewGrok creates a Grok provider adapter.
func NewGrok(cfg domain.ProviderConfig, apiKey string) (driven.ProviderService, error) {
	return newChatClient(domain.ProviderGrok, grokBaseURL, grokModel, cfg, apiKey)
}
