//go:build integration

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/phrazzld/bibliobuddy/internal/domain"
	"github.com/phrazzld/bibliobuddy/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres runs a throwaway postgres container and returns its URL.
func startPostgres(t *testing.T) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:17-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())
}

func TestKVAgainstPostgres(t *testing.T) {
	ctx := context.Background()
	url := startPostgres(t)

	require.NoError(t, Migrate(ctx, url, nil))
	require.NoError(t, Migrate(ctx, url, nil), "migrations are idempotent")

	pool, err := NewPool(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	progress := store.NewProgressStore(NewKV(pool, nil), "", nil)

	p := domain.NewModeProgress()
	p.RecordAnswer("abate", true, time.UnixMilli(1767225600000).UTC())
	require.NoError(t, progress.Save(ctx, domain.ModeDefinitions, p))
	require.NoError(t, progress.Save(ctx, domain.ModeFillInBlank, p))

	loaded, err := progress.Load(ctx, domain.ModeDefinitions)
	require.NoError(t, err)
	assert.Equal(t, p, loaded)

	require.NoError(t, progress.Reset(ctx, domain.ModeDefinitions))
	reset, err := progress.Load(ctx, domain.ModeDefinitions)
	require.NoError(t, err)
	assert.Empty(t, reset.Scores)

	bundle, err := progress.Export(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, []string{"biblioBuddy.v1.fitb"}, keysOf(bundle.Data))
}

func keysOf(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
