package domain

import "fmt"

// Writing styles accepted by the article generator.
var ValidStyles = []string{
	"informative", "conversational", "professional",
	"casual", "academic", "persuasive",
}

// Output languages accepted by the article generator.
var ValidLanguages = []string{"en-US", "en-GB", "zh-TW", "zh-CN"}

// ArticleRequest asks for a generated article draft. Either Keyword or
// Topic must be set.
type ArticleRequest struct {
	Keyword  string
	Topic    string
	Language string
	Style    string

	// Provider overrides the configured default when set.
	Provider string

	// Caller identifies the requester for rate limiting.
	Caller string
}

// Validate normalises defaults and rejects invalid fields.
func (r *ArticleRequest) Validate() error {
	if r.Keyword == "" && r.Topic == "" {
		return fmt.Errorf("%w: either keyword or topic is required", ErrInvalidInput)
	}
	if r.Language == "" {
		r.Language = "en-US"
	}
	if !contains(ValidLanguages, r.Language) {
		return fmt.Errorf("%w: invalid language %q", ErrInvalidInput, r.Language)
	}
	if r.Style == "" {
		r.Style = "informative"
	}
	if !contains(ValidStyles, r.Style) {
		return fmt.Errorf("%w: invalid writing style %q", ErrInvalidInput, r.Style)
	}
	return nil
}

// ArticleResult is the outcome of a successful article generation.
type ArticleResult struct {
	DocumentID string
	Title      string
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
