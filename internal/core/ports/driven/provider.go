package driven

import (
	"context"

	"github.com/inkpress/inkpress/internal/core/domain"
)

// ProviderService is a text-generation backend reachable over HTTP.
//
// Implementations include Deepseek, Perplexity, Grok, OpenRouter and
// OpenAI; adding a backend means adding one adapter that builds a
// request body and parses a response body.
type ProviderService interface {
	// Generate produces text completion from a prompt. Failures are
	// classified per the domain error taxonomy: transport failures wrap
	// domain.ErrNetwork, timeouts surface as *domain.TimeoutError,
	// non-2xx statuses as *domain.APIError and 2xx bodies without
	// completion content as domain.ErrMalformedResponse.
	//
	// Generate never retries; retry policy is the caller's.
	Generate(ctx context.Context, prompt string) (string, error)
}

// ProviderFactory creates a provider adapter from configuration and a
// decrypted API key.
type ProviderFactory interface {
	Create(cfg domain.ProviderConfig, apiKey string) (ProviderService, error)
}
