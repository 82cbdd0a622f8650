package mocks

import (
	"context"

	"github.com/phrazzld/bibliobuddy/internal/store"
)

// MockKVStore implements store.KVStore for testing. Unset functions
// behave like an empty store.
type MockKVStore struct {
	GetFn     func(ctx context.Context, key string) (string, error)
	SetFn     func(ctx context.Context, key, value string) error
	SetManyFn func(ctx context.Context, entries map[string]string) error
	DeleteFn  func(ctx context.Context, key string) error
	ListFn    func(ctx context.Context, prefix string) (map[string]string, error)
}

var _ store.KVStore = (*MockKVStore)(nil)

// Get implements store.KVStore.
func (m *MockKVStore) Get(ctx context.Context, key string) (string, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, key)
	}
	return "", store.ErrNotFound
}

// Set implements store.KVStore.
func (m *MockKVStore) Set(ctx context.Context, key, value string) error {
	if m.SetFn != nil {
		return m.SetFn(ctx, key, value)
	}
	return nil
}

// SetMany implements store.KVStore.
func (m *MockKVStore) SetMany(ctx context.Context, entries map[string]string) error {
	if m.SetManyFn != nil {
		return m.SetManyFn(ctx, entries)
	}
	return nil
}

// Delete implements store.KVStore.
func (m *MockKVStore) Delete(ctx context.Context, key string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, key)
	}
	return nil
}

// List implements store.KVStore.
func (m *MockKVStore) List(ctx context.Context, prefix string) (map[string]string, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, prefix)
	}
	return map[string]string{}, nil
}
