package llm

import (
	"github.com/inkpress/inkpress/internal/core/domain"
	"github.com/inkpress/inkpress/internal/core/ports/driven"
)

const (
	deepseekBaseURL = "https://api.deepseek.com/v1"
	deepseekModel   = "deepseek-chat"
)

// NewDeepseek creates a Deepseek provider adapter.
func NewDeepseek(cfg domain.ProviderConfig, apiKey string) (driven.ProviderService, error) {
	return newChatClient(domain.ProviderDeepseek, deepseekBaseURL, deepseekModel, cfg, apiKey)
}
