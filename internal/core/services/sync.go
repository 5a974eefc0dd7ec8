package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkpress/inkpress/internal/convert"
	"github.com/inkpress/inkpress/internal/core/domain"
	"github.com/inkpress/inkpress/internal/core/ports/driven"
	"github.com/inkpress/inkpress/internal/core/ports/driving"
	"github.com/inkpress/inkpress/internal/logger"
)

// Ensure SyncEngine implements the interface.
var _ driving.SyncService = (*SyncEngine)(nil)

// SyncEngine pulls published items from the remote source, converts
// them and persists local draft documents, keeping the ledger as the
// record of what has been pulled. Passes are idempotent: an unchanged
// item is never fetched or written twice.
type SyncEngine struct {
	remote    driven.RemoteSource
	ledger    driven.LedgerStore
	docs      driven.DocumentStore
	converter *convert.Converter
	audit     driven.AuditLog
	log       zerolog.Logger
}

// NewSyncEngine creates a new sync engine. audit may be nil.
func NewSyncEngine(
	remote driven.RemoteSource,
	ledger driven.LedgerStore,
	docs driven.DocumentStore,
	converter *convert.Converter,
	audit driven.AuditLog,
) *SyncEngine {
	return &SyncEngine{
		remote:    remote,
		ledger:    ledger,
		docs:      docs,
		converter: converter,
		audit:     audit,
		log:       logger.New("sync"),
	}
}

// Sync performs one pull pass. One failing item never aborts the pass:
// its error is collected and the remaining items still sync.
func (e *SyncEngine) Sync(ctx context.Context) (*domain.SyncResult, error) {
	items, err := e.remote.QueryItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("query remote items: %w", err)
	}

	result := &domain.SyncResult{}
	for i := range items {
		item := &items[i]

		entry, err := e.ledger.Get(ctx, item.RemoteID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s: read ledger: %v", item.RemoteID, err))
			continue
		}
		if err != nil {
			entry = nil
		}

		if upToDate(entry, item) {
			e.log.Debug().Str("remote_id", item.RemoteID).Msg("unchanged, skipping")
			continue
		}

		if err := e.syncItem(ctx, item, entry); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s: %v", item.RemoteID, err))
			if entry != nil {
				if markErr := e.ledger.MarkError(ctx, item.RemoteID); markErr != nil {
					e.log.Warn().Err(markErr).Str("remote_id", item.RemoteID).
						Msg("failed to mark ledger entry")
				}
			}
			e.log.Warn().Err(err).Str("remote_id", item.RemoteID).Msg("item sync failed")
			continue
		}
		result.SyncedCount++
	}

	e.record(ctx, result)
	e.log.Info().Int("synced", result.SyncedCount).
		Int("errors", len(result.Errors)).Msg("sync pass complete")
	return result, nil
}

// syncItem fetches, converts and persists one item, then writes its
// ledger entry.
func (e *SyncEngine) syncItem(ctx context.Context, item *domain.RemoteItem, entry *domain.LedgerEntry) error {
	remoteBlocks, err := e.remote.ItemBlocks(ctx, item.RemoteID)
	if err != nil {
		return fmt.Errorf("fetch blocks: %w", err)
	}

	blocks, dropped := e.converter.RemoteBlocks(remoteBlocks)
	if dropped > 0 {
		e.log.Debug().Str("remote_id", item.RemoteID).
			Int("dropped", dropped).Msg("unsupported blocks dropped")
	}
	content := e.converter.Render(ctx, blocks)

	existingID := ""
	if entry != nil {
		existingID = entry.LocalDocumentID
	}
	docID, err := e.docs.Upsert(ctx, existingID, item.Title, content)
	if err != nil {
		return fmt.Errorf("persist document: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	updated := domain.LedgerEntry{
		RemoteID:           item.RemoteID,
		LocalDocumentID:    docID,
		LastSyncedAt:       now,
		RemoteLastEditedAt: item.LastEditedAt,
		Status:             domain.SyncStatusSynced,
	}
	if entry == nil {
		if err := e.ledger.Insert(ctx, updated); err != nil {
			return fmt.Errorf("insert ledger entry: %w", err)
		}
		return nil
	}
	updated.CreatedAt = entry.CreatedAt
	if err := e.ledger.Update(ctx, updated); err != nil {
		return fmt.Errorf("update ledger entry: %w", err)
	}
	return nil
}

// upToDate reports whether the ledger already covers the item's latest
// edit. Timestamps compare lexically, which orders RFC 3339 UTC
// strings correctly without parsing. Entries in error state always
// resync.
func upToDate(entry *domain.LedgerEntry, item *domain.RemoteItem) bool {
	if entry == nil || entry.Status != domain.SyncStatusSynced {
		return false
	}
	return entry.RemoteLastEditedAt >= item.LastEditedAt
}

func (e *SyncEngine) record(ctx context.Context, result *domain.SyncResult) {
	if e.audit == nil {
		return
	}
	severity := domain.SeverityInfo
	if len(result.Errors) > 0 {
		severity = domain.SeverityMedium
	}
	desc := fmt.Sprintf("sync pass: %d synced, %d failed",
		result.SyncedCount, len(result.Errors))
	if err := e.audit.Record(ctx, "sync_completed", desc, severity); err != nil {
		e.log.Warn().Err(err).Msg("audit record failed")
	}
}
