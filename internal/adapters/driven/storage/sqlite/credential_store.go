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

// credentialStore implements driven.CredentialStore. Only ciphertext
// ever reaches this table.
type credentialStore struct {
	store *Store
}

var _ driven.CredentialStore = (*credentialStore)(nil)

// Save stores or replaces the ciphertext for name.
func (s *credentialStore) Save(ctx context.Context, name, ciphertext string) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO credentials (name, ciphertext, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			ciphertext = excluded.ciphertext,
			updated_at = excluded.updated_at
	`, name, ciphertext, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving credential: %w", err)
	}
	return nil
}

// Get returns the ciphertext for name.
func (s *credentialStore) Get(ctx context.Context, name string) (string, error) {
	var ciphertext string
	row := s.store.db.QueryRowContext(ctx,
		"SELECT ciphertext FROM credentials WHERE name = ?", name)
	err := row.Scan(&ciphertext)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("scanning credential: %w", err)
	}
	return ciphertext, nil
}

// Delete removes the credential for name.
func (s *credentialStore) Delete(ctx context.Context, name string) error {
	result, err := s.store.db.ExecContext(ctx,
		"DELETE FROM credentials WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("deleting credential: %w", err)
	}
	return requireRow(result)
}

// DeleteAll clears every stored credential.
func (s *credentialStore) DeleteAll(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM credentials"); err != nil {
		return fmt.Errorf("clearing credentials: %w", err)
	}
	return nil
}

// List returns the stored credential names.
func (s *credentialStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT name FROM credentials ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing credentials: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning credential name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
