// Package sqlite provides a KVStore backed by a SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	"github.com/phrazzld/bibliobuddy/internal/platform/migrations"
	"github.com/phrazzld/bibliobuddy/internal/store"
)

const table = "progress_kv"

// builder renders "?" placeholders, which is what go-sqlite3 expects.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// KV is a store.KVStore over the progress_kv table.
type KV struct {
	db     store.DBTX
	txer   store.TxBeginner
	logger *slog.Logger
}

var _ store.KVStore = (*KV)(nil)

// NewKV wraps an open database whose schema is already migrated.
func NewKV(db *sql.DB, logger *slog.Logger) *KV {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &KV{
		db:     db,
		txer:   db,
		logger: logger.With(slog.String("component", "sqlite_kv")),
	}
}

// Open opens (creating if needed) the database at path and applies
// migrations. ":memory:" yields a private in-memory database.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// SQLite serializes writers; a single connection also keeps an
	// in-memory database alive and shared.
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if err := migrations.Up(ctx, db, migrations.SQLite, logger); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Get implements store.KVStore.
func (k *KV) Get(ctx context.Context, key string) (string, error) {
	query, args, err := builder.Select("value").From(table).Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return "", fmt.Errorf("building select: %w", err)
	}

	var value string
	if err := k.db.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: key %q", store.ErrNotFound, key)
		}
		k.logger.ErrorContext(ctx, "failed to read key", slog.String("key", key), slog.String("error", err.Error()))
		return "", err
	}
	return value, nil
}

// Set implements store.KVStore.
func (k *KV) Set(ctx context.Context, key, value string) error {
	return k.upsert(ctx, k.db, map[string]string{key: value})
}

// SetMany implements store.KVStore. All entries are written in one transaction.
func (k *KV) SetMany(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}
	return store.RunInTransaction(ctx, k.txer, func(ctx context.Context, tx *sql.Tx) error {
		return k.upsert(ctx, tx, entries)
	})
}

func (k *KV) upsert(ctx context.Context, db store.DBTX, entries map[string]string) error {
	now := time.Now().UTC()
	insert := builder.Insert(table).Columns("key", "value", "updated_at")
	for _, key := range sortedKeys(entries) {
		insert = insert.Values(key, entries[key], now)
	}
	insert = insert.Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at")

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("building upsert: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		k.logger.ErrorContext(ctx, "failed to write keys", slog.Int("count", len(entries)), slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", store.ErrUpdateFailed, err)
	}
	return nil
}

// Delete implements store.KVStore.
func (k *KV) Delete(ctx context.Context, key string) error {
	query, args, err := builder.Delete(table).Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return fmt.Errorf("building delete: %w", err)
	}
	if _, err := k.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %v", store.ErrDeleteFailed, err)
	}
	return nil
}

// List implements store.KVStore.
func (k *KV) List(ctx context.Context, prefix string) (map[string]string, error) {
	query, args, err := builder.Select("key", "value").
		From(table).
		Where(sq.Expr("substr(key, 1, ?) = ?", utf8.RuneCountInString(prefix), prefix)).
		OrderBy("key").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building list: %w", err)
	}

	rows, err := k.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		// Invalid UTF-8 in a key can shift substr; recheck on bytes.
		if strings.HasPrefix(key, prefix) {
			out[key] = value
		}
	}
	return out, rows.Err()
}

func sortedKeys(entries map[string]string) []string {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
