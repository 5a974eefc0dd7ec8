package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpress/inkpress/internal/adapters/driven/storage/memory"
	"github.com/inkpress/inkpress/internal/core/domain"
)

func newTestVault() (*VaultService, *memory.CredentialStore, *memory.KeyStore, *memory.AuditLog) {
	creds := memory.NewCredentialStore()
	keys := memory.NewKeyStore()
	audit := memory.NewAuditLog()
	return NewVaultService(keys, creds, audit), creds, keys, audit
}

func TestVaultRoundTrip(t *testing.T) {
	vault, creds, _, _ := newTestVault()
	ctx := context.Background()

	require.NoError(t, vault.SetSecret(ctx, "deepseek", "sk-test-key-1234567890"))

	got, err := vault.Secret(ctx, "deepseek")
	require.NoError(t, err)
	assert.Equal(t, "sk-test-key-1234567890", got)

	// Only ciphertext reaches the store.
	stored, err := creds.Get(ctx, "deepseek")
	require.NoError(t, err)
	assert.NotEqual(t, "sk-test-key-1234567890", stored)
	assert.NotContains(t, stored, "sk-test-key")
}

func TestVaultSecretMissing(t *testing.T) {
	vault, _, _, _ := newTestVault()

	_, err := vault.Secret(context.Background(), "grok")
	assert.ErrorIs(t, err, domain.ErrMissingCredential)
}

func TestVaultSetSecretRejectsEmpty(t *testing.T) {
	vault, _, _, _ := newTestVault()
	ctx := context.Background()

	assert.ErrorIs(t, vault.SetSecret(ctx, "", "value"), domain.ErrInvalidInput)
	assert.ErrorIs(t, vault.SetSecret(ctx, "name", ""), domain.ErrInvalidInput)
}

func TestVaultUndecryptableAfterKeyChange(t *testing.T) {
	vault, _, keys, audit := newTestVault()
	ctx := context.Background()

	require.NoError(t, vault.SetSecret(ctx, "openai", "sk-test-key-1234567890"))

	// Replace the key behind the vault's back; the old ciphertext can
	// no longer be opened.
	newKey := make([]byte, vaultKeySize)
	newKey[0] = 1
	require.NoError(t, keys.Save(newKey))

	_, err := vault.Secret(ctx, "openai")
	assert.ErrorIs(t, err, domain.ErrUndecryptable)

	events := audit.Events()
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, "credential_undecryptable", last.EventType)
	assert.Equal(t, domain.SeverityHigh, last.Severity)
}

func TestVaultRotateClearsEverything(t *testing.T) {
	vault, creds, keys, audit := newTestVault()
	ctx := context.Background()

	require.NoError(t, vault.SetSecret(ctx, "deepseek", "sk-test-key-1234567890"))
	require.NoError(t, vault.SetSecret(ctx, "grok", "xai-test-key-1234567890"))

	require.NoError(t, vault.Rotate(ctx))

	names, err := creds.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = keys.Load()
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var rotated bool
	for _, e := range audit.Events() {
		if e.EventType == "key_rotated" {
			rotated = true
			assert.Equal(t, domain.SeverityHigh, e.Severity)
		}
	}
	assert.True(t, rotated, "rotation must be audited")

	// The vault keeps working with a fresh key.
	require.NoError(t, vault.SetSecret(ctx, "deepseek", "sk-new-key-00000000000"))
	got, err := vault.Secret(ctx, "deepseek")
	require.NoError(t, err)
	assert.Equal(t, "sk-new-key-00000000000", got)
}

func TestVaultEncryptDecrypt(t *testing.T) {
	vault, _, _, _ := newTestVault()

	_, err := vault.Encrypt("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ciphertext, err := vault.Encrypt("some secret")
	require.NoError(t, err)
	assert.NotEqual(t, "some secret", ciphertext)

	plaintext, err := vault.Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "some secret", plaintext)

	for _, bad := range []string{"", "not base64 !!!", "dG9vc2hvcnQ="} {
		_, err := vault.Decrypt(bad)
		assert.ErrorIs(t, err, domain.ErrUndecryptable, "input %q", bad)
	}
}

func TestEncryptDecryptUniqueNonce(t *testing.T) {
	key := make([]byte, vaultKeySize)

	first, err := encrypt(key, []byte("same plaintext"))
	require.NoError(t, err)
	second, err := encrypt(key, []byte("same plaintext"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "nonce must differ per call")

	plain, err := decrypt(key, first)
	require.NoError(t, err)
	assert.Equal(t, "same plaintext", string(plain))
}
