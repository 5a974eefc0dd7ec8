package domain

import "time"

// SyncStatus is the ledger state of one remote item.
type SyncStatus string

const (
	SyncStatusSynced  SyncStatus = "synced"
	SyncStatusPending SyncStatus = "pending"
	SyncStatusError   SyncStatus = "error"
)

// LedgerEntry maps one remote item to its local document. RemoteID is
// unique: at most one local document is ever created per remote item.
type LedgerEntry struct {
	// RemoteID is the remote item identifier (unique key).
	RemoteID string

	// LocalDocumentID is the document created for this item.
	LocalDocumentID string

	// LastSyncedAt is when this entry was last written (RFC 3339 UTC).
	LastSyncedAt string

	// RemoteLastEditedAt is the remote edit timestamp recorded at the
	// last successful sync, in its wire form. Comparisons against fresh
	// item timestamps are lexical; RFC 3339 UTC orders correctly.
	RemoteLastEditedAt string

	// Status tracks the item's sync state.
	Status SyncStatus

	// CreatedAt is when the entry was first inserted.
	CreatedAt time.Time
}

// SyncResult is the outcome of one sync pass. A pass that finds no
// remote items is a success with SyncedCount zero.
type SyncResult struct {
	// SyncedCount is the number of items fetched, converted and
	// persisted during the pass (skipped items are not counted).
	SyncedCount int

	// Errors holds one human-readable message per failed item.
	Errors []string
}
