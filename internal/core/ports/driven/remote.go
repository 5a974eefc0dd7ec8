package driven

import (
	"context"

	"github.com/inkpress/inkpress/internal/core/domain"
)

// RemoteSource is the structured-document store the sync engine pulls
// from.
type RemoteSource interface {
	// Probe checks connectivity and credentials, returning the
	// integration's user name on success.
	Probe(ctx context.Context) (string, error)

	// QueryItems lists items marked ready to publish, most recently
	// edited first.
	QueryItems(ctx context.Context) ([]domain.RemoteItem, error)

	// ItemBlocks fetches the full block content of one item.
	ItemBlocks(ctx context.Context, remoteID string) ([]domain.RemoteBlock, error)

	// ListDatabases searches for item containers shared with the
	// integration.
	ListDatabases(ctx context.Context) ([]domain.RemoteDatabase, error)
}
