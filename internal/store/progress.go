package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/bibliobuddy/internal/domain"
)

// DefaultKeyPrefix is the key namespace for persisted progress.
const DefaultKeyPrefix = "biblioBuddy.v1"

// ProgressStore loads and saves per-mode progress through a KVStore.
type ProgressStore struct {
	kv     KVStore
	prefix string
	logger *slog.Logger
}

// NewProgressStore creates a ProgressStore. An empty prefix selects DefaultKeyPrefix.
func NewProgressStore(kv KVStore, prefix string, logger *slog.Logger) *ProgressStore {
	if kv == nil {
		panic("kv cannot be nil")
	}
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ProgressStore{
		kv:     kv,
		prefix: prefix,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// Prefix is the key namespace shared by all modes.
func (s *ProgressStore) Prefix() string {
	return s.prefix
}

// Key is the storage key for mode.
func (s *ProgressStore) Key(mode domain.Mode) string {
	return s.prefix + "." + string(mode)
}

// Load returns the stored progress for mode, or empty progress when none
// is stored. Malformed stored data is logged and replaced by defaults; only
// backend failures are returned.
func (s *ProgressStore) Load(ctx context.Context, mode domain.Mode) (*domain.ModeProgress, error) {
	raw, err := s.kv.Get(ctx, s.Key(mode))
	if err != nil {
		if IsNotFoundError(err) {
			return domain.NewModeProgress(), nil
		}
		return nil, NewStoreError("progress", "load", "failed to read progress", err)
	}

	progress, err := domain.DecodeModeProgress([]byte(raw))
	if err != nil {
		s.logger.WarnContext(ctx, "stored progress is malformed, using defaults for unreadable fields",
			slog.String("mode", string(mode)),
			slog.String("error", err.Error()))
	}
	return progress, nil
}

// Save overwrites the stored progress for mode.
func (s *ProgressStore) Save(ctx context.Context, mode domain.Mode, progress *domain.ModeProgress) error {
	if progress == nil {
		return NewStoreError("progress", "save", "progress cannot be nil", ErrInvalidEntity)
	}

	data, err := json.Marshal(progress)
	if err != nil {
		return NewStoreError("progress", "save", "failed to encode progress", err)
	}

	if err := s.kv.Set(ctx, s.Key(mode), string(data)); err != nil {
		return NewStoreError("progress", "save", "failed to write progress", err)
	}
	return nil
}

// Reset deletes the stored progress for mode. Other modes are untouched.
func (s *ProgressStore) Reset(ctx context.Context, mode domain.Mode) error {
	if err := s.kv.Delete(ctx, s.Key(mode)); err != nil && !errors.Is(err, ErrNotFound) {
		return NewStoreError("progress", "reset", fmt.Sprintf("failed to delete %s", s.Key(mode)), err)
	}
	return nil
}
