package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpress/inkpress/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestMigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening the same database must not re-run migrations.
	store, err = NewStore(dir)
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

func TestLedgerStoreCRUD(t *testing.T) {
	ledger := newTestStore(t).LedgerStore()
	ctx := context.Background()

	_, err := ledger.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	entry := domain.LedgerEntry{
		RemoteID:           "page-1",
		LocalDocumentID:    "doc-1",
		LastSyncedAt:       "2026-08-01T10:00:00Z",
		RemoteLastEditedAt: "2026-08-01T09:00:00Z",
		Status:             domain.SyncStatusSynced,
	}
	require.NoError(t, ledger.Insert(ctx, entry))

	// The remote ID is unique.
	assert.Error(t, ledger.Insert(ctx, entry))

	got, err := ledger.Get(ctx, "page-1")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", got.LocalDocumentID)
	assert.Equal(t, domain.SyncStatusSynced, got.Status)
	assert.False(t, got.CreatedAt.IsZero())

	entry.RemoteLastEditedAt = "2026-08-02T09:00:00Z"
	require.NoError(t, ledger.Update(ctx, entry))
	got, err = ledger.Get(ctx, "page-1")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-02T09:00:00Z", got.RemoteLastEditedAt)

	require.NoError(t, ledger.MarkError(ctx, "page-1"))
	got, err = ledger.Get(ctx, "page-1")
	require.NoError(t, err)
	assert.Equal(t, domain.SyncStatusError, got.Status)

	assert.ErrorIs(t, ledger.MarkError(ctx, "missing"), domain.ErrNotFound)
	assert.ErrorIs(t, ledger.Update(ctx, domain.LedgerEntry{RemoteID: "missing"}), domain.ErrNotFound)

	entries, err := ledger.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCredentialStoreRoundTrip(t *testing.T) {
	creds := newTestStore(t).CredentialStore()
	ctx := context.Background()

	_, err := creds.Get(ctx, "deepseek")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, creds.Save(ctx, "deepseek", "ciphertext-1"))
	require.NoError(t, creds.Save(ctx, "notion", "ciphertext-2"))

	got, err := creds.Get(ctx, "deepseek")
	require.NoError(t, err)
	assert.Equal(t, "ciphertext-1", got)

	// Save overwrites.
	require.NoError(t, creds.Save(ctx, "deepseek", "ciphertext-3"))
	got, err = creds.Get(ctx, "deepseek")
	require.NoError(t, err)
	assert.Equal(t, "ciphertext-3", got)

	names, err := creds.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"deepseek", "notion"}, names)

	require.NoError(t, creds.Delete(ctx, "deepseek"))
	assert.ErrorIs(t, creds.Delete(ctx, "deepseek"), domain.ErrNotFound)

	require.NoError(t, creds.DeleteAll(ctx))
	names, err = creds.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestDocumentStoreUpsert(t *testing.T) {
	docs := newTestStore(t).DocumentStore()
	ctx := context.Background()

	id, err := docs.Upsert(ctx, "", "Title", "content v1")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc, err := docs.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Title", doc.Title)
	assert.Equal(t, domain.DocumentStatusDraft, doc.Status)

	updatedID, err := docs.Upsert(ctx, id, "Title v2", "content v2")
	require.NoError(t, err)
	assert.Equal(t, id, updatedID)

	doc, err = docs.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Title v2", doc.Title)
	assert.Equal(t, "content v2", doc.Content)

	_, err = docs.Upsert(ctx, "missing", "t", "c")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = docs.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAuditLogRecordAndStats(t *testing.T) {
	audit := newTestStore(t).AuditLog()
	ctx := context.Background()

	require.NoError(t, audit.Record(ctx, "credential_saved", "stored deepseek", domain.SeverityMedium))
	require.NoError(t, audit.Record(ctx, "key_rotated", "rotated", domain.SeverityHigh))

	events, err := audit.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "key_rotated", events[0].EventType, "newest first")
	assert.WithinDuration(t, time.Now().UTC(), events[0].CreatedAt, time.Minute)

	stats, err := audit.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalEvents)
	assert.Equal(t, 1, stats.HighSeverity)
	assert.Equal(t, 2, stats.Last24h)
}

func TestAuditLogPrunesBeyondCap(t *testing.T) {
	audit := newTestStore(t).AuditLog()
	ctx := context.Background()

	for i := 0; i < auditEventCap+25; i++ {
		require.NoError(t, audit.Record(ctx, "sync_completed", "pass", domain.SeverityInfo))
	}

	stats, err := audit.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, auditEventCap, stats.TotalEvents)
}
