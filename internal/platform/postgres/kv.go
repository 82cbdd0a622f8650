package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/phrazzld/bibliobuddy/internal/store"
)

const table = "progress_kv"

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// KV is a store.KVStore over the progress_kv table.
type KV struct {
	q      Querier
	logger *slog.Logger
}

var _ store.KVStore = (*KV)(nil)

// NewKV creates a KV. The schema must already be migrated.
func NewKV(q Querier, logger *slog.Logger) *KV {
	if q == nil {
		panic("querier cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &KV{
		q:      q,
		logger: logger.With(slog.String("component", "postgres_kv")),
	}
}

// Get implements store.KVStore.
func (k *KV) Get(ctx context.Context, key string) (string, error) {
	query, args, err := builder.Select("value").From(table).Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return "", fmt.Errorf("building select: %w", err)
	}

	var value string
	if err := k.q.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		mapped := MapError(err)
		if !store.IsNotFoundError(mapped) {
			k.logger.ErrorContext(ctx, "failed to read key",
				slog.String("key", key),
				slog.String("error", err.Error()))
		}
		return "", mapped
	}
	return value, nil
}

// Set implements store.KVStore.
func (k *KV) Set(ctx context.Context, key, value string) error {
	return k.SetMany(ctx, map[string]string{key: value})
}

// SetMany implements store.KVStore. The entries are written by a single
// multi-row statement, so they land atomically.
func (k *KV) SetMany(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}

	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	insert := builder.Insert(table).Columns("key", "value", "updated_at")
	for _, key := range keys {
		insert = insert.Values(key, entries[key], sq.Expr("now()"))
	}
	insert = insert.Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at")

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("building upsert: %w", err)
	}
	if _, err := k.q.Exec(ctx, query, args...); err != nil {
		k.logger.ErrorContext(ctx, "failed to write keys",
			slog.Int("count", len(entries)),
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", store.ErrUpdateFailed, MapError(err))
	}
	return nil
}

// Delete implements store.KVStore.
func (k *KV) Delete(ctx context.Context, key string) error {
	query, args, err := builder.Delete(table).Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return fmt.Errorf("building delete: %w", err)
	}
	if _, err := k.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", store.ErrDeleteFailed, MapError(err))
	}
	return nil
}

// List implements store.KVStore.
func (k *KV) List(ctx context.Context, prefix string) (map[string]string, error) {
	query, args, err := builder.Select("key", "value").
		From(table).
		Where(sq.Like{"key": escapeLike(prefix) + "%"}).
		OrderBy("key").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building list: %w", err)
	}

	rows, err := k.q.Query(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, MapError(err)
		}
		out[key] = value
	}
	return out, MapError(rows.Err())
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike quotes LIKE wildcards using PostgreSQL's default backslash escape.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
