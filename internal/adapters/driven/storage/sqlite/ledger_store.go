package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/inkpress/inkpress/internal/core/domain"
	"github.com/inkpress/inkpress/internal/core/ports/driven"
)

// ledgerStore implements driven.LedgerStore.
type ledgerStore struct {
	store *Store
}

var _ driven.LedgerStore = (*ledgerStore)(nil)

// Get retrieves the entry for a remote item.
func (s *ledgerStore) Get(ctx context.Context, remoteID string) (*domain.LedgerEntry, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT remote_id, local_document_id, last_synced_at, remote_last_edited_at, status, created_at
		FROM sync_ledger
		WHERE remote_id = ?
	`, remoteID)

	var entry domain.LedgerEntry
	err := row.Scan(&entry.RemoteID, &entry.LocalDocumentID, &entry.LastSyncedAt,
		&entry.RemoteLastEditedAt, &entry.Status, &entry.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning ledger entry: %w", err)
	}
	return &entry, nil
}

// Insert creates a new entry. The primary key rejects duplicates.
func (s *ledgerStore) Insert(ctx context.Context, entry domain.LedgerEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO sync_ledger (remote_id, local_document_id, last_synced_at, remote_last_edited_at, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.RemoteID, entry.LocalDocumentID, entry.LastSyncedAt,
		entry.RemoteLastEditedAt, entry.Status, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting ledger entry: %w", err)
	}
	return nil
}

// Update rewrites the entry for an existing remote ID.
func (s *ledgerStore) Update(ctx context.Context, entry domain.LedgerEntry) error {
	result, err := s.store.db.ExecContext(ctx, `
		UPDATE sync_ledger
		SET local_document_id = ?, last_synced_at = ?, remote_last_edited_at = ?, status = ?
		WHERE remote_id = ?
	`, entry.LocalDocumentID, entry.LastSyncedAt, entry.RemoteLastEditedAt,
		entry.Status, entry.RemoteID)
	if err != nil {
		return fmt.Errorf("updating ledger entry: %w", err)
	}
	return requireRow(result)
}

// MarkError flags an existing entry's status as error.
func (s *ledgerStore) MarkError(ctx context.Context, remoteID string) error {
	result, err := s.store.db.ExecContext(ctx, `
		UPDATE sync_ledger SET status = ? WHERE remote_id = ?
	`, domain.SyncStatusError, remoteID)
	if err != nil {
		return fmt.Errorf("marking ledger entry: %w", err)
	}
	return requireRow(result)
}

// List returns all entries, newest first.
func (s *ledgerStore) List(ctx context.Context) ([]domain.LedgerEntry, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT remote_id, local_document_id, last_synced_at, remote_last_edited_at, status, created_at
		FROM sync_ledger
		ORDER BY last_synced_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var entry domain.LedgerEntry
		if err := rows.Scan(&entry.RemoteID, &entry.LocalDocumentID, &entry.LastSyncedAt,
			&entry.RemoteLastEditedAt, &entry.Status, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning ledger entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// requireRow maps a zero-row write to domain.ErrNotFound.
func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
