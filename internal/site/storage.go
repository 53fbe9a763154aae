package site

import (
	"context"
	"sync"
)

// PreferenceStore persists string preferences per visitor.
type PreferenceStore interface {
	Get(ctx context.Context, visitorID, key string) (string, bool, error)
	Set(ctx context.Context, visitorID, key, value string) error
}

// Storage is the per-visitor view of a PreferenceStore, the server side
// counterpart of the browser's local storage.
type Storage interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
}

// BindStorage scopes store to one visitor.
func BindStorage(store PreferenceStore, visitorID string) Storage {
	return visitorStorage{store: store, visitorID: visitorID}
}

type visitorStorage struct {
	store     PreferenceStore
	visitorID string
}

func (s visitorStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	return s.store.Get(ctx, s.visitorID, key)
}

func (s visitorStorage) SetItem(ctx context.Context, key, value string) error {
	return s.store.Set(ctx, s.visitorID, key, value)
}

// NewMemoryStorage returns a process-local Storage.
func NewMemoryStorage() Storage {
	return &memoryStorage{items: make(map[string]string)}
}

type memoryStorage struct {
	mu    sync.Mutex
	items map[string]string
}

func (s *memoryStorage) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *memoryStorage) SetItem(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}
