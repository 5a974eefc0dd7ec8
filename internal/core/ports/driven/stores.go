package driven

import (
	"context"

	"github.com/inkpress/inkpress/internal/core/domain"
)

// LedgerStore persists the sync ledger keyed uniquely by remote ID.
// Insert and update are deliberately separate operations: the engine
// branches explicitly on a prior read rather than relying on upsert
// semantics.
type LedgerStore interface {
	// Get retrieves the entry for a remote item, or domain.ErrNotFound.
	Get(ctx context.Context, remoteID string) (*domain.LedgerEntry, error)

	// Insert creates a new entry. Fails if the remote ID already exists.
	Insert(ctx context.Context, entry domain.LedgerEntry) error

	// Update rewrites the entry for an existing remote ID.
	Update(ctx context.Context, entry domain.LedgerEntry) error

	// MarkError flags an existing entry's status as error.
	MarkError(ctx context.Context, remoteID string) error

	// List returns all entries, for stats and diagnostics.
	List(ctx context.Context) ([]domain.LedgerEntry, error)
}

// DocumentStore is the local content repository collaborator. It owns
// the persistence format; the pipeline hands it rendered markup.
type DocumentStore interface {
	// Upsert creates a document when existingID is empty, otherwise
	// updates that document in place. Returns the document ID.
	Upsert(ctx context.Context, existingID, title, content string) (string, error)

	// Get retrieves a document by ID, or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Document, error)
}

// CredentialStore persists encrypted secrets by name. Values are
// ciphertext only; encryption happens in the vault service.
type CredentialStore interface {
	Save(ctx context.Context, name, ciphertext string) error

	// Get returns the ciphertext for name, or domain.ErrNotFound.
	Get(ctx context.Context, name string) (string, error)

	Delete(ctx context.Context, name string) error

	// DeleteAll clears every stored credential. Used after key rotation,
	// when old ciphertexts become permanently undecryptable.
	DeleteAll(ctx context.Context) error

	List(ctx context.Context) ([]string, error)
}

// KeyStore persists the vault's symmetric key.
type KeyStore interface {
	// Load returns the persisted key, or domain.ErrNotFound.
	Load() ([]byte, error)

	Save(key []byte) error

	Delete() error
}

// AuditLog records security and pipeline events. An optional
// collaborator: consumers hold it as a nillable field and skip
// recording when absent.
type AuditLog interface {
	Record(ctx context.Context, eventType, description string, severity domain.Severity) error

	Recent(ctx context.Context, limit int) ([]domain.AuditEvent, error)

	Stats(ctx context.Context) (*domain.AuditStats, error)
}

// ImageImporter resolves an external image URL to a stored-image
// identifier. An optional collaborator: when absent or failing, image
// blocks degrade to inline references by URL.
type ImageImporter interface {
	Import(ctx context.Context, url string) (string, error)
}
