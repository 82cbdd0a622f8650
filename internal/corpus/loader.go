package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"github.com/phrazzld/bibliobuddy/internal/domain"
	"golang.org/x/sync/errgroup"
)

// maxShardReaders bounds concurrent synonym shard reads.
const maxShardReaders = 8

// Loader reads the word list and the letter-sharded synonym files.
type Loader struct {
	wordsFS    fs.FS
	wordsName  string
	synonymsFS fs.FS
	logger     *slog.Logger
}

// NewLoader creates a Loader. wordsName is the word list inside wordsFS;
// synonym shards are read as "<letter>.json" from the root of synonymsFS,
// which may be nil when no synonym data exists.
func NewLoader(wordsFS fs.FS, wordsName string, synonymsFS fs.FS, logger *slog.Logger) *Loader {
	if wordsFS == nil {
		panic("wordsFS cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Loader{
		wordsFS:    wordsFS,
		wordsName:  wordsName,
		synonymsFS: synonymsFS,
		logger:     logger.With(slog.String("component", "corpus_loader")),
	}
}

// Load builds the Index. Failing to read or parse the word list returns an
// error wrapping domain.ErrDataUnavailable.
func (l *Loader) Load(ctx context.Context) (*Index, error) {
	records, err := l.loadWords()
	if err != nil {
		return nil, err
	}

	synonyms, err := l.loadSynonyms(ctx, shardLetters(records))
	if err != nil {
		return nil, err
	}

	idx := New(records, synonyms)
	l.logger.InfoContext(ctx, "corpus loaded",
		slog.Int("records", len(records)),
		slog.Int("entries", idx.Len()),
		slog.Int("synonym_records", len(synonyms)))

	return idx, nil
}

func (l *Loader) loadWords() ([]domain.RawRecord, error) {
	data, err := fs.ReadFile(l.wordsFS, l.wordsName)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrDataUnavailable, l.wordsName, err)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", domain.ErrDataUnavailable, l.wordsName, err)
	}

	records := make([]domain.RawRecord, 0, len(items))
	skipped := 0
	for _, item := range items {
		var rec domain.RawRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	if skipped > 0 {
		l.logger.Warn("skipped unreadable word records", slog.Int("count", skipped))
	}

	return records, nil
}

// loadSynonyms reads one shard per letter concurrently. A shard that is
// missing or unparsable is logged and skipped. Shards are merged in letter
// order, so a word present in two shards takes the later record.
func (l *Loader) loadSynonyms(ctx context.Context, letters []string) (map[string]domain.SynonymRecord, error) {
	merged := make(map[string]domain.SynonymRecord)
	if l.synonymsFS == nil || len(letters) == 0 {
		return merged, nil
	}

	shards := make([]map[string]domain.SynonymRecord, len(letters))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxShardReaders)

	for i, letter := range letters {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			shard, err := l.readShard(letter)
			if err != nil {
				l.logger.WarnContext(gctx, "synonym shard unavailable",
					slog.String("letter", letter),
					slog.String("error", err.Error()))
				return nil
			}
			shards[i] = shard
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading synonym shards: %w", err)
	}

	for _, shard := range shards {
		for word, rec := range shard {
			merged[word] = rec
		}
	}
	return merged, nil
}

func (l *Loader) readShard(letter string) (map[string]domain.SynonymRecord, error) {
	data, err := fs.ReadFile(l.synonymsFS, letter+".json")
	if err != nil {
		return nil, err
	}
	var shard map[string]domain.SynonymRecord
	if err := json.Unmarshal(data, &shard); err != nil {
		return nil, err
	}
	return shard, nil
}

// shardLetters returns the sorted distinct shard letters for the records.
func shardLetters(records []domain.RawRecord) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		if letter, ok := ShardLetter(rec.Word); ok {
			seen[letter] = struct{}{}
		}
	}
	letters := make([]string, 0, len(seen))
	for letter := range seen {
		letters = append(letters, letter)
	}
	sort.Strings(letters)
	return letters
}

// ShardLetter is the lowercased first ASCII letter of word, which names
// the synonym shard the word lives in.
func ShardLetter(word string) (string, bool) {
	for _, r := range strings.TrimSpace(word) {
		switch {
		case r >= 'a' && r <= 'z':
			return string(r), true
		case r >= 'A' && r <= 'Z':
			return string(r + ('a' - 'A')), true
		}
	}
	return "", false
}
