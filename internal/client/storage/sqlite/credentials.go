package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/mediafeed/internal/client/storage"
)

// Compile-time check that Storage implements CredentialStorage
var _ storage.CredentialStorage = (*Storage)(nil)

// Get returns the value stored under key
func (s *Storage) Get(ctx context.Context, key storage.Key) (string, error) {
	query := `SELECT value FROM credentials WHERE key = ?`

	var value string
	err := s.db.QueryRowContext(ctx, query, string(key)).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storage.ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}

	return value, nil
}

// Set upserts all values in one transaction
func (s *Storage) Set(ctx context.Context, values map[storage.Key]string) error {
	query := `
		INSERT INTO credentials (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	return s.inTx(ctx, func(tx *sql.Tx) error {
		now := time.Now().UnixMilli()
		for key, value := range values {
			if _, err := tx.ExecContext(ctx, query, string(key), value, now); err != nil {
				return fmt.Errorf("failed to save %s: %w", key, err)
			}
		}
		return nil
	})
}

// Remove deletes keys in one transaction, absent keys are ignored
func (s *Storage) Remove(ctx context.Context, keys ...storage.Key) error {
	query := `DELETE FROM credentials WHERE key = ?`

	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, key := range keys {
			if _, err := tx.ExecContext(ctx, query, string(key)); err != nil {
				return fmt.Errorf("failed to delete %s: %w", key, err)
			}
		}
		return nil
	})
}

func (s *Storage) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
