package llm

import (
	"fmt"

	"github.com/inkpress/inkpress/internal/core/domain"
	"github.com/inkpress/inkpress/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.ProviderFactory = (*Factory)(nil)

// Factory creates provider adapters by name.
type Factory struct{}

// NewFactory creates a provider factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Create builds the adapter for cfg.Provider.
func (f *Factory) Create(cfg domain.ProviderConfig, apiKey string) (driven.ProviderService, error) {
	switch cfg.Provider {
	case domain.ProviderDeepseek:
		return NewDeepseek(cfg, apiKey)
	case domain.ProviderPerplexity:
		return NewPerplexity(cfg, apiKey)
	case domain.ProviderGrok:
		return NewGrok(cfg, apiKey)
	case domain.ProviderOpenRouter:
		return NewOpenRouter(cfg, apiKey)
	case domain.ProviderOpenAI:
		return NewOpenAI(cfg, apiKey)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownProvider, cfg.Provider)
	}
}
