// Package keyfile persists the vault's symmetric key as a base64 file
// with owner-only permissions.
package keyfile

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/inkpress/inkpress/internal/core/domain"
	"github.com/inkpress/inkpress/internal/core/ports/driven"
)

// Ensure KeyStore implements the interface.
var _ driven.KeyStore = (*KeyStore)(nil)

const keyFileName = "vault.key"

// KeyStore stores the key under the data directory.
type KeyStore struct {
	path string
}

// NewKeyStore creates a key store rooted at dataDir. If dataDir is
// empty, defaults to ~/.inkpress/data.
func NewKeyStore(dataDir string) (*KeyStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".inkpress", "data")
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &KeyStore{path: filepath.Join(dataDir, keyFileName)}, nil
}

// Load returns the persisted key.
func (s *KeyStore) Load() ([]byte, error) {
	encoded, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading key file: %w", err)
	}
	key, err := base64.StdEncoding.DecodeString(string(encoded))
	if err != nil {
		return nil, fmt.Errorf("decoding key file: %w", err)
	}
	return key, nil
}

// Save writes the key with owner-only permissions.
func (s *KeyStore) Save(key []byte) error {
	encoded := base64.StdEncoding.EncodeToString(key)
	if err := os.WriteFile(s.path, []byte(encoded), 0600); err != nil {
		return fmt.Errorf("writing key file: %w", err)
	}
	return nil
}

// Delete removes the key file.
func (s *KeyStore) Delete() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("removing key file: %w", err)
	}
	return nil
}
