package domain

import "regexp"

// Provider names with a shipped adapter.
const (
	ProviderDeepseek   = "deepseek"
	ProviderPerplexity = "perplexity"
	ProviderGrok       = "grok"
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
)

// KnownProviders lists every provider name with an adapter.
var KnownProviders = []string{
	ProviderDeepseek,
	ProviderPerplexity,
	ProviderGrok,
	ProviderOpenRouter,
	ProviderOpenAI,
}

// KnownProvider reports whether name has a shipped adapter.
func KnownProvider(name string) bool {
	for _, p := range KnownProviders {
		if p == name {
			return true
		}
	}
	return false
}

// ProviderConfig selects the backend for one generation call. It is
// immutable per request.
type ProviderConfig struct {
	// Provider is one of the known provider names.
	Provider string

	// Model is the backend model identifier. Empty selects the
	// adapter's default.
	Model string

	// TimeoutSeconds bounds the HTTP call, clamped to [30, 300].
	TimeoutSeconds int

	// Endpoint overrides the adapter's default base URL when set.
	Endpoint string
}

// Timeout bounds accepted for provider calls, in seconds.
const (
	MinTimeoutSeconds     = 30
	MaxTimeoutSeconds     = 300
	DefaultTimeoutSeconds = 180
)

// ClampTimeoutSeconds forces a timeout into the accepted range,
// substituting the default for zero.
func ClampTimeoutSeconds(seconds int) int {
	if seconds == 0 {
		return DefaultTimeoutSeconds
	}
	if seconds < MinTimeoutSeconds {
		return MinTimeoutSeconds
	}
	if seconds > MaxTimeoutSeconds {
		return MaxTimeoutSeconds
	}
	return seconds
}

var (
	// integrationTokenRe matches a remote-source integration token:
	// the 7-character "secret_" prefix followed by 43 alphanumerics,
	// 50 characters in total.
	integrationTokenRe = regexp.MustCompile(`^secret_[A-Za-z0-9]{43}$`)

	// providerKeyRe matches a generic provider API key.
	providerKeyRe = regexp.MustCompile(`^[A-Za-z0-9_-]{20,}$`)
)

// ValidIntegrationToken reports whether token has the remote-source
// integration token format.
func ValidIntegrationToken(token string) bool {
	return integrationTokenRe.MatchString(token)
}

// ValidProviderKey reports whether key looks like a provider API key.
func ValidProviderKey(key string) bool {
	return providerKeyRe.MatchString(key)
}
