package llm

import (
	"github.com/inkpress/inkpress/internal/core/domain"
	"github.com/inkpress/inkpress/internal/core/ports/driven"
)

const (
	openAIBaseURL = "https://api.openai.com/v1"
	openAIModel   = "gpt-4o-mini"
)

// NewOpenAI creates an OpenAI provider adapter.
func NewOpenAI(cfg domain.ProviderConfig, apiKey string) (driven.ProviderService, error) {
	return newChatClient(domain.ProviderOpenAI, openAIBaseURL, openAIModel, cfg, apiKey)
}
