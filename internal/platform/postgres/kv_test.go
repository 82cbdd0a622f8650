package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/phrazzld/bibliobuddy/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockKV(t *testing.T) (*KV, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewKV(mock, nil), mock
}

func TestKVGet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		want    string
		wantErr error
	}{
		{
			name: "found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT value FROM progress_kv WHERE key = \$1`).
					WithArgs("biblioBuddy.v1.fitb").
					WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(`{"scores":{}}`))
			},
			want: `{"scores":{}}`,
		},
		{
			name: "not found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT value FROM progress_kv`).
					WithArgs("biblioBuddy.v1.fitb").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: store.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv, mock := newMockKV(t)
			tt.setup(mock)

			got, err := kv.Get(context.Background(), "biblioBuddy.v1.fitb")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestKVSetMany(t *testing.T) {
	t.Parallel()

	t.Run("writes sorted rows in one upsert", func(t *testing.T) {
		kv, mock := newMockKV(t)
		mock.ExpectExec(`INSERT INTO progress_kv \(key,value,updated_at\) VALUES \(\$1,\$2,now\(\)\),\(\$3,\$4,now\(\)\) ON CONFLICT \(key\) DO UPDATE`).
			WithArgs("biblioBuddy.v1.definitions", "{}", "biblioBuddy.v1.fitb", "[]").
			WillReturnResult(pgxmock.NewResult("INSERT", 2))

		err := kv.SetMany(context.Background(), map[string]string{
			"biblioBuddy.v1.fitb":        "[]",
			"biblioBuddy.v1.definitions": "{}",
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty is a no-op", func(t *testing.T) {
		kv, mock := newMockKV(t)
		require.NoError(t, kv.SetMany(context.Background(), nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("constraint failures map to invalid entity", func(t *testing.T) {
		kv, mock := newMockKV(t)
		mock.ExpectExec(`INSERT INTO progress_kv`).
			WithArgs("biblioBuddy.v1.fitb", "{}").
			WillReturnError(&pgconn.PgError{Code: notNullViolationCode, ColumnName: "value"})

		err := kv.Set(context.Background(), "biblioBuddy.v1.fitb", "{}")
		assert.ErrorIs(t, err, store.ErrUpdateFailed)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestKVDelete(t *testing.T) {
	t.Parallel()

	kv, mock := newMockKV(t)
	mock.ExpectExec(`DELETE FROM progress_kv WHERE key = \$1`).
		WithArgs("biblioBuddy.v1.synonyms").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`DELETE FROM progress_kv`).
		WithArgs("biblioBuddy.v1.synonyms").
		WillReturnError(errors.New("connection reset"))

	assert.NoError(t, kv.Delete(context.Background(), "biblioBuddy.v1.synonyms"))
	assert.ErrorIs(t, kv.Delete(context.Background(), "biblioBuddy.v1.synonyms"), store.ErrDeleteFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVList(t *testing.T) {
	t.Parallel()

	kv, mock := newMockKV(t)
	mock.ExpectQuery(`SELECT key, value FROM progress_kv WHERE key LIKE \$1 ORDER BY key`).
		WithArgs(`biblio\_buddy%`).
		WillReturnRows(pgxmock.NewRows([]string{"key", "value"}).
			AddRow("biblio_buddy.definitions", "{}").
			AddRow("biblio_buddy.fitb", `{"reviewMastered":true}`))

	got, err := kv.List(context.Background(), "biblio_buddy")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"biblio_buddy.definitions": "{}",
		"biblio_buddy.fitb":        `{"reviewMastered":true}`,
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMapError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, MapError(nil))
	assert.ErrorIs(t, MapError(pgx.ErrNoRows), store.ErrNotFound)
	assert.ErrorIs(t, MapError(&pgconn.PgError{Code: checkViolationCode}), store.ErrInvalidEntity)
	assert.True(t, IsNotNullViolation(&pgconn.PgError{Code: notNullViolationCode}))

	missing := MapError(&pgconn.PgError{Code: undefinedTableCode})
	assert.Contains(t, missing.Error(), "run migrations")

	plain := errors.New("boom")
	assert.Equal(t, plain, MapError(plain))
}
