package services

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/inkpress/inkpress/internal/core/domain"
	"github.com/inkpress/inkpress/internal/core/ports/driven"
	"github.com/inkpress/inkpress/internal/core/ports/driving"
	"github.com/inkpress/inkpress/internal/logger"
)

// Ensure VaultService implements the interface.
var _ driving.VaultService = (*VaultService)(nil)

const vaultKeySize = 32 // AES-256

// VaultService encrypts secrets with AES-256-GCM before they reach the
// credential store. The key is generated lazily on first use and held
// by the key store; plaintext secrets never touch persistent storage.
type VaultService struct {
	keys  driven.KeyStore
	creds driven.CredentialStore
	audit driven.AuditLog
	log   zerolog.Logger
}

// NewVaultService creates a new vault service. audit may be nil.
func NewVaultService(keys driven.KeyStore, creds driven.CredentialStore, audit driven.AuditLog) *VaultService {
	return &VaultService{
		keys:  keys,
		creds: creds,
		audit: audit,
		log:   logger.New("vault"),
	}
}

// Encrypt seals plaintext under the vault key.
func (s *VaultService) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("%w: nothing to encrypt", domain.ErrInvalidInput)
	}
	key, err := s.key()
	if err != nil {
		return "", fmt.Errorf("load vault key: %w", err)
	}
	return encrypt(key, []byte(plaintext))
}

// Decrypt opens a ciphertext produced by Encrypt. Any failure, from bad
// base64 to a GCM open error, surfaces as ErrUndecryptable.
func (s *VaultService) Decrypt(ciphertext string) (string, error) {
	key, err := s.key()
	if err != nil {
		return "", fmt.Errorf("load vault key: %w", err)
	}
	plaintext, err := decrypt(key, ciphertext)
	if err != nil {
		return "", domain.ErrUndecryptable
	}
	return string(plaintext), nil
}

// SetSecret encrypts and stores a secret under name.
func (s *VaultService) SetSecret(ctx context.Context, name, plaintext string) error {
	if name == "" || plaintext == "" {
		return fmt.Errorf("%w: name and secret are required", domain.ErrInvalidInput)
	}

	key, err := s.key()
	if err != nil {
		return fmt.Errorf("load vault key: %w", err)
	}

	ciphertext, err := encrypt(key, []byte(plaintext))
	if err != nil {
		return fmt.Errorf("encrypt secret: %w", err)
	}

	if err := s.creds.Save(ctx, name, ciphertext); err != nil {
		return fmt.Errorf("save secret: %w", err)
	}

	s.record(ctx, "credential_saved", "credential stored: "+name, domain.SeverityMedium)
	s.log.Debug().Str("name", name).Msg("secret stored")
	return nil
}

// Secret retrieves and decrypts the secret stored under name.
func (s *VaultService) Secret(ctx context.Context, name string) (string, error) {
	ciphertext, err := s.creds.Get(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", domain.ErrMissingCredential, name)
		}
		return "", fmt.Errorf("load secret: %w", err)
	}

	key, err := s.key()
	if err != nil {
		return "", fmt.Errorf("load vault key: %w", err)
	}

	plaintext, err := decrypt(key, ciphertext)
	if err != nil {
		s.record(ctx, "credential_undecryptable",
			"stored credential could not be decrypted: "+name, domain.SeverityHigh)
		return "", fmt.Errorf("%w: %s", domain.ErrUndecryptable, name)
	}
	return string(plaintext), nil
}

// DeleteSecret removes a stored secret.
func (s *VaultService) DeleteSecret(ctx context.Context, name string) error {
	if err := s.creds.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete secret: %w", err)
	}
	s.record(ctx, "credential_deleted", "credential deleted: "+name, domain.SeverityHigh)
	return nil
}

// Rotate discards the encryption key and clears every stored
// credential. Old ciphertexts would be permanently undecryptable under
// a fresh key, so they are removed rather than left to fail later.
func (s *VaultService) Rotate(ctx context.Context) error {
	if err := s.keys.Delete(); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("delete vault key: %w", err)
	}
	if err := s.creds.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	s.record(ctx, "key_rotated",
		"encryption key rotated; all stored credentials cleared", domain.SeverityHigh)
	s.log.Info().Msg("vault key rotated")
	return nil
}

// key loads the symmetric key, generating and persisting one on first
// use.
func (s *VaultService) key() ([]byte, error) {
	key, err := s.keys.Load()
	if err == nil {
		if len(key) != vaultKeySize {
			return nil, fmt.Errorf("stored key has %d bytes, want %d", len(key), vaultKeySize)
		}
		return key, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	key = make([]byte, vaultKeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	if err := s.keys.Save(key); err != nil {
		return nil, fmt.Errorf("persist key: %w", err)
	}
	s.record(context.Background(), "key_generated",
		"encryption key generated", domain.SeverityInfo)
	return key, nil
}

func (s *VaultService) record(ctx context.Context, eventType, description string, severity domain.Severity) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, eventType, description, severity); err != nil {
		s.log.Warn().Err(err).Str("event", eventType).Msg("audit record failed")
	}
}

// encrypt seals plaintext with AES-256-GCM. The nonce is prepended to
// the ciphertext and the whole blob is base64 encoded.
func encrypt(key, plaintext []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	sealed := gcm.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// decrypt opens a blob produced by encrypt.
func decrypt(key []byte, encoded string) ([]byte, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(sealed) < gcm.NonceSize() {
		return nil, errors.New("ciphertext shorter than nonce")
	}
	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}
