package memory

import (
	"context"
	"testing"

	"github.com/phrazzld/bibliobuddy/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKV(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := NewKV()

	_, err := kv.Get(ctx, "biblioBuddy.v1.definitions")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, kv.Set(ctx, "biblioBuddy.v1.definitions", `{"scores":{}}`))
	require.NoError(t, kv.SetMany(ctx, map[string]string{
		"biblioBuddy.v1.fitb": "{}",
		"other.key":           "x",
	}))

	v, err := kv.Get(ctx, "biblioBuddy.v1.definitions")
	require.NoError(t, err)
	assert.Equal(t, `{"scores":{}}`, v)

	listed, err := kv.List(ctx, "biblioBuddy.v1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"biblioBuddy.v1.definitions": `{"scores":{}}`,
		"biblioBuddy.v1.fitb":        "{}",
	}, listed)

	require.NoError(t, kv.Delete(ctx, "biblioBuddy.v1.fitb"))
	require.NoError(t, kv.Delete(ctx, "never.set"))
	_, err = kv.Get(ctx, "biblioBuddy.v1.fitb")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
