// Package redis provides a KVStore backed by a Redis server.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/bibliobuddy/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

// scanBatch is the COUNT hint passed to SCAN.
const scanBatch = 100

// KV is a store.KVStore over plain Redis string keys.
type KV struct {
	rdb    goredis.UniversalClient
	logger *slog.Logger
}

var _ store.KVStore = (*KV)(nil)

// Connect dials addr and pings it so a bad address fails at startup.
func Connect(ctx context.Context, addr string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// NewKV wraps a connected client.
func NewKV(rdb goredis.UniversalClient, logger *slog.Logger) *KV {
	if rdb == nil {
		panic("redis client cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &KV{
		rdb:    rdb,
		logger: logger.With(slog.String("component", "redis_kv")),
	}
}

// Get implements store.KVStore.
func (k *KV) Get(ctx context.Context, key string) (string, error) {
	value, err := k.rdb.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", fmt.Errorf("%w: key %q", store.ErrNotFound, key)
	}
	if err != nil {
		k.logger.ErrorContext(ctx, "failed to read key",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return "", err
	}
	return value, nil
}

// Set implements store.KVStore.
func (k *KV) Set(ctx context.Context, key, value string) error {
	if err := k.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrUpdateFailed, err)
	}
	return nil
}

// SetMany implements store.KVStore with a single atomic MSET.
func (k *KV) SetMany(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}

	pairs := make([]any, 0, len(entries)*2)
	for key, value := range entries {
		pairs = append(pairs, key, value)
	}
	if err := k.rdb.MSet(ctx, pairs...).Err(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrUpdateFailed, err)
	}
	return nil
}

// Delete implements store.KVStore.
func (k *KV) Delete(ctx context.Context, key string) error {
	if err := k.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrDeleteFailed, err)
	}
	return nil
}

// List implements store.KVStore. Keys are found with SCAN, then fetched
// with one MGET; a key deleted in between is left out.
func (k *KV) List(ctx context.Context, prefix string) (map[string]string, error) {
	var keys []string
	iter := k.rdb.Scan(ctx, 0, escapeGlob(prefix)+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scanning keys: %w", err)
	}

	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	values, err := k.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("reading keys: %w", err)
	}
	for i, v := range values {
		if s, ok := v.(string); ok {
			out[keys[i]] = s
		}
	}
	return out, nil
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

func escapeGlob(s string) string {
	return globEscaper.Replace(s)
}
