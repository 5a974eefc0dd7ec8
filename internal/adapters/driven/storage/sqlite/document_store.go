package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkpress/inkpress/internal/core/domain"
	"github.com/inkpress/inkpress/internal/core/ports/driven"
)

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// Upsert creates a draft document when existingID is empty, otherwise
// updates that document in place.
func (s *documentStore) Upsert(ctx context.Context, existingID, title, content string) (string, error) {
	now := time.Now().UTC()

	if existingID == "" {
		id := uuid.NewString()
		_, err := s.store.db.ExecContext(ctx, `
			INSERT INTO documents (id, title, content, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, id, title, content, domain.DocumentStatusDraft, now, now)
		if err != nil {
			return "", fmt.Errorf("inserting document: %w", err)
		}
		return id, nil
	}

	result, err := s.store.db.ExecContext(ctx, `
		UPDATE documents SET title = ?, content = ?, updated_at = ?
		WHERE id = ?
	`, title, content, now, existingID)
	if err != nil {
		return "", fmt.Errorf("updating document: %w", err)
	}
	if err := requireRow(result); err != nil {
		return "", err
	}
	return existingID, nil
}

// Get retrieves a document by ID.
func (s *documentStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, title, content, status, created_at, updated_at
		FROM documents
		WHERE id = ?
	`, id)

	var doc domain.Document
	err := row.Scan(&doc.ID, &doc.Title, &doc.Content, &doc.Status,
		&doc.CreatedAt, &doc.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	return &doc, nil
}
