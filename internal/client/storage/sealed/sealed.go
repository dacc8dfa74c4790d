// Package sealed encrypts credential values before they reach the underlying
// storage. Keys stay in plaintext, values are AES-256-GCM sealed with a key
// derived from a user passphrase.
package sealed

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/mediafeed/internal/client/storage"
	"github.com/iudanet/mediafeed/internal/crypto"
)

// keySalt хранит соль Argon2id открытым текстом рядом с данными
const keySalt storage.Key = "storeSalt"

var _ storage.CredentialStorage = (*Store)(nil)

// Store wraps a CredentialStorage with at-rest encryption.
type Store struct {
	inner storage.CredentialStorage
	key   []byte
}

// New derives the store key from passphrase and the salt persisted in inner,
// generating and saving a salt on first use.
func New(ctx context.Context, inner storage.CredentialStorage, passphrase string) (*Store, error) {
	salt, err := inner.Get(ctx, keySalt)
	if errors.Is(err, storage.ErrKeyNotFound) {
		salt, err = crypto.GenerateSaltBase64()
		if err != nil {
			return nil, err
		}
		if err := inner.Set(ctx, map[storage.Key]string{keySalt: salt}); err != nil {
			return nil, fmt.Errorf("failed to save store salt: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to read store salt: %w", err)
	}

	key, err := crypto.DeriveStoreKey(passphrase, salt)
	if err != nil {
		return nil, fmt.Errorf("failed to derive store key: %w", err)
	}

	return &Store{inner: inner, key: key}, nil
}

// Get returns the decrypted value. A wrong passphrase surfaces as crypto.ErrDecrypt.
func (s *Store) Get(ctx context.Context, key storage.Key) (string, error) {
	sealed, err := s.inner.Get(ctx, key)
	if err != nil {
		return "", err
	}

	value, err := crypto.Open(sealed, s.key, []byte(key))
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, values map[storage.Key]string) error {
	sealed := make(map[storage.Key]string, len(values))
	for key, value := range values {
		v, err := crypto.Seal(value, s.key, []byte(key))
		if err != nil {
			return fmt.Errorf("failed to seal %s: %w", key, err)
		}
		sealed[key] = v
	}
	return s.inner.Set(ctx, sealed)
}

func (s *Store) Remove(ctx context.Context, keys ...storage.Key) error {
	return s.inner.Remove(ctx, keys...)
}
