package storage

import (
	"context"
)

// Key names one field of the persisted credential record.
type Key string

const (
	KeyAccessToken  Key = "accessToken"      // access token
	KeyRefreshToken Key = "refreshToken"     // refresh token
	KeyIssuedAt     Key = "lastTokenRefresh" // момент выдачи access token, epoch millis
	KeyTTL          Key = "ttl"              // время жизни access token в миллисекундах
	KeyUser         Key = "user"             // профиль пользователя в JSON
)

// CredentialKeys lists every key of the credential record.
// store/clear always write or erase the whole set.
var CredentialKeys = []Key{KeyAccessToken, KeyRefreshToken, KeyIssuedAt, KeyTTL, KeyUser}

//go:generate moq -out credentials_mock.go . CredentialStorage

// CredentialStorage defines a persistent key-value string store on the client.
// This is the lowest storage layer - it holds raw strings and has no token logic.
type CredentialStorage interface {
	// Get returns the value stored under key.
	// Returns ErrKeyNotFound if the key is absent.
	Get(ctx context.Context, key Key) (string, error)

	// Set writes all values in a single transaction (last write wins).
	Set(ctx context.Context, values map[Key]string) error

	// Remove deletes keys in a single transaction. Absent keys are ignored.
	Remove(ctx context.Context, keys ...Key) error
}
