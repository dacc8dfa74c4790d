// Package memory provides an in-process CredentialStorage.
// Nothing survives a restart; it backs tests and the "memory" store mode.
package memory

import (
	"context"
	"sync"

	"github.com/iudanet/mediafeed/internal/client/storage"
)

var _ storage.CredentialStorage = (*Storage)(nil)

// Storage is a mutex-guarded map of credential values.
type Storage struct {
	values map[storage.Key]string
	mu     sync.RWMutex
}

// New creates an empty Storage.
func New() *Storage {
	return &Storage{values: make(map[storage.Key]string)}
}

func (s *Storage) Get(_ context.Context, key storage.Key) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return "", storage.ErrKeyNotFound
	}
	return value, nil
}

func (s *Storage) Set(_ context.Context, values map[storage.Key]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range values {
		s.values[key] = value
	}
	return nil
}

func (s *Storage) Remove(_ context.Context, keys ...storage.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

// Len returns the number of stored keys.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
