// Package memory provides a process-local KVStore. Progress kept here is
// lost when the process exits.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/phrazzld/bibliobuddy/internal/store"
)

// KV is a map-backed store.KVStore.
type KV struct {
	mu   sync.RWMutex
	data map[string]string
}

var _ store.KVStore = (*KV)(nil)

// NewKV returns an empty KV.
func NewKV() *KV {
	return &KV{data: make(map[string]string)}
}

// Get implements store.KVStore.
func (k *KV) Get(_ context.Context, key string) (string, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	v, ok := k.data[key]
	if !ok {
		return "", fmt.Errorf("%w: key %q", store.ErrNotFound, key)
	}
	return v, nil
}

// Set implements store.KVStore.
func (k *KV) Set(_ context.Context, key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.data[key] = value
	return nil
}

// SetMany implements store.KVStore.
func (k *KV) SetMany(_ context.Context, entries map[string]string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	for key, value := range entries {
		k.data[key] = value
	}
	return nil
}

// Delete implements store.KVStore.
func (k *KV) Delete(_ context.Context, key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	delete(k.data, key)
	return nil
}

// List implements store.KVStore.
func (k *KV) List(_ context.Context, prefix string) (map[string]string, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	out := make(map[string]string)
	for key, value := range k.data {
		if strings.HasPrefix(key, prefix) {
			out[key] = value
		}
	}
	return out, nil
}
