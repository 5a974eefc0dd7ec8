package driving

import (
	"context"

	"github.com/inkpress/inkpress/internal/core/domain"
)

// VaultService manages provider secrets encrypted at rest.
type VaultService interface {
	// SetSecret encrypts and stores a secret under name.
	SetSecret(ctx context.Context, name, plaintext string) error

	// Secret retrieves and decrypts the secret stored under name.
	// Returns domain.ErrMissingCredential when absent and
	// domain.ErrUndecryptable when the ciphertext cannot be opened.
	Secret(ctx context.Context, name string) (string, error)

	// DeleteSecret removes a stored secret.
	DeleteSecret(ctx context.Context, name string) error

	// Rotate deletes the encryption key and clears every stored
	// credential. Destructive and irreversible; callers must confirm
	// explicitly before invoking it.
	Rotate(ctx context.Context) error
}

// SyncService performs one idempotent pull-based sync pass.
type SyncService interface {
	Sync(ctx context.Context) (*domain.SyncResult, error)
}

// GenerateService produces content through a provider gateway.
type GenerateService interface {
	// Complete runs one rate-limited raw completion.
	Complete(ctx context.Context, prompt, provider, caller string) (string, error)

	// GenerateArticle builds title and body prompts, generates both,
	// converts the body and stores a draft document.
	GenerateArticle(ctx context.Context, req domain.ArticleRequest) (*domain.ArticleResult, error)
}
