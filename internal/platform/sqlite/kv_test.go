package sqlite

import (
	"context"
	"testing"

	"github.com/phrazzld/bibliobuddy/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKV(t *testing.T) *KV {
	t.Helper()

	db, err := Open(context.Background(), ":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewKV(db, nil)
}

func TestKVGetSet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := newTestKV(t)

	_, err := kv.Get(ctx, "biblioBuddy.v1.definitions")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, kv.Set(ctx, "biblioBuddy.v1.definitions", `{"scores":{"abate":1}}`))
	require.NoError(t, kv.Set(ctx, "biblioBuddy.v1.definitions", `{"scores":{"abate":2}}`))

	v, err := kv.Get(ctx, "biblioBuddy.v1.definitions")
	require.NoError(t, err)
	assert.Equal(t, `{"scores":{"abate":2}}`, v)
}

func TestKVSetManyAndList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := newTestKV(t)

	require.NoError(t, kv.SetMany(ctx, map[string]string{
		"biblioBuddy.v1.synonyms":  "{}",
		"biblioBuddy.v1.fitb":      `{"reviewMastered":true}`,
		"biblioBuddy_v1.lookalike": "x",
		"elsewhere":                "y",
	}))
	require.NoError(t, kv.SetMany(ctx, nil))

	listed, err := kv.List(ctx, "biblioBuddy.v1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"biblioBuddy.v1.synonyms": "{}",
		"biblioBuddy.v1.fitb":     `{"reviewMastered":true}`,
	}, listed)
}

func TestKVListNonASCIIPrefix(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := newTestKV(t)

	require.NoError(t, kv.SetMany(ctx, map[string]string{
		"bibliothèque.v1.definitions": "{}",
		"bibliothèque.v2.definitions": "{}",
		"bibliotheque.v1.definitions": "{}",
	}))

	listed, err := kv.List(ctx, "bibliothèque.v1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"bibliothèque.v1.definitions": "{}"}, listed)
}

func TestKVDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := newTestKV(t)

	require.NoError(t, kv.Set(ctx, "biblioBuddy.v1.fitb", "{}"))
	require.NoError(t, kv.Delete(ctx, "biblioBuddy.v1.fitb"))
	require.NoError(t, kv.Delete(ctx, "biblioBuddy.v1.fitb"))

	_, err := kv.Get(ctx, "biblioBuddy.v1.fitb")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
