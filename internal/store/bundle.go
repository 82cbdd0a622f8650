package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
)

// BundleVersion is the only export format version understood by Import.
const BundleVersion = 1

// Bundle is a portable snapshot of every stored key under the prefix.
// Values are the raw stored strings.
type Bundle struct {
	Version int               `json:"version"`
	SavedAt time.Time         `json:"savedAt"`
	Data    map[string]string `json:"data"`
}

// ImportReport summarizes an import.
type ImportReport struct {
	Imported []string `json:"imported"`
	Skipped  []string `json:"skipped"`
}

// Export collects every key under the prefix.
func (s *ProgressStore) Export(ctx context.Context, now time.Time) (*Bundle, error) {
	data, err := s.kv.List(ctx, s.prefix)
	if err != nil {
		return nil, NewStoreError("progress", "export", "failed to list progress keys", err)
	}

	return &Bundle{
		Version: BundleVersion,
		SavedAt: now.UTC(),
		Data:    data,
	}, nil
}

// Import writes the keys of an encoded bundle. Only keys under the prefix
// whose value is a JSON string are written; everything else is reported as
// skipped. Values are stored as given and decoded leniently on the next load.
func (s *ProgressStore) Import(ctx context.Context, raw []byte) (*ImportReport, error) {
	var payload struct {
		Version *int                       `json:"version"`
		Data    map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedBundle, err)
	}
	if payload.Version != nil && *payload.Version != BundleVersion {
		return nil, fmt.Errorf("%w: version %d", ErrUnsupportedBundle, *payload.Version)
	}

	report := &ImportReport{Imported: []string{}, Skipped: []string{}}
	writes := make(map[string]string)

	for key, value := range payload.Data {
		if !strings.HasPrefix(key, s.prefix) {
			report.Skipped = append(report.Skipped, key)
			continue
		}
		var str string
		if !bytes.HasPrefix(bytes.TrimSpace(value), []byte(`"`)) || json.Unmarshal(value, &str) != nil {
			report.Skipped = append(report.Skipped, key)
			continue
		}
		writes[key] = str
		report.Imported = append(report.Imported, key)
	}

	sort.Strings(report.Imported)
	sort.Strings(report.Skipped)

	if len(writes) == 0 {
		return report, nil
	}
	if err := s.kv.SetMany(ctx, writes); err != nil {
		return nil, NewStoreError("progress", "import", "failed to write imported keys", err)
	}

	s.logger.InfoContext(ctx, "progress imported",
		slog.Int("imported", len(report.Imported)),
		slog.Int("skipped", len(report.Skipped)))
	return report, nil
}
