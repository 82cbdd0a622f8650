package corpus

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/phrazzld/bibliobuddy/internal/domain"
	"github.com/phrazzld/bibliobuddy/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wordsJSON = `[
  {"word": "abate", "definition": "to lessen", "type": "v."},
  {"word": "bastion", "definition": "a stronghold", "type": "n."},
  {"word": "cajole", "definition": "to coax", "type": "v."},
  {"word": 42, "definition": "not a word"},
  {"word": "'tis", "definition": "it is", "type": "contraction"}
]`

func TestLoaderLoad(t *testing.T) {
	t.Parallel()

	wordsFS := fstest.MapFS{"words.json": {Data: []byte(wordsJSON)}}
	synonymsFS := fstest.MapFS{
		"a.json": {Data: []byte(`{"abate": {"synonyms": ["wane"], "sentences": ["The storm began to abate."]}}`)},
		"b.json": {Data: []byte(`{not json`)},
		"t.json": {Data: []byte(`{"'tis": {"synonyms": ["it is"]}}`)},
	}

	logBuf, log := logger.NewTestLogger(t)
	idx, err := NewLoader(wordsFS, "words.json", synonymsFS, log).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, idx.Len())

	rec, ok := idx.Synonyms("abate")
	require.True(t, ok)
	assert.Equal(t, []string{"wane"}, rec.Synonyms)

	_, ok = idx.Synonyms("bastion")
	assert.False(t, ok, "broken shard contributes nothing")

	_, ok = idx.Synonyms("cajole")
	assert.False(t, ok, "missing shard contributes nothing")

	_, ok = idx.Synonyms("'tis")
	assert.True(t, ok)

	logger.AssertLogContains(t, logBuf, "synonym shard unavailable")
	logger.AssertLogContains(t, logBuf, "skipped unreadable word records")
}

func TestLoaderWithoutSynonyms(t *testing.T) {
	t.Parallel()

	wordsFS := fstest.MapFS{"words.json": {Data: []byte(wordsJSON)}}
	idx, err := NewLoader(wordsFS, "words.json", nil, nil).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, idx.Len())
	_, ok := idx.Synonyms("abate")
	assert.False(t, ok)
}

func TestLoaderWordsUnavailable(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		fs   fstest.MapFS
	}{
		{"missing file", fstest.MapFS{}},
		{"invalid json", fstest.MapFS{"words.json": {Data: []byte(`{"word": "abate"}`)}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			idx, err := NewLoader(tc.fs, "words.json", nil, nil).Load(context.Background())
			assert.Nil(t, idx)
			assert.ErrorIs(t, err, domain.ErrDataUnavailable)
		})
	}
}

func TestShardLetter(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		word   string
		want   string
		wantOK bool
	}{
		{"abate", "a", true},
		{"Zealot", "z", true},
		{"  'tis", "t", true},
		{"123", "", false},
		{"", "", false},
	}

	for _, tc := range testCases {
		got, ok := ShardLetter(tc.word)
		assert.Equal(t, tc.wantOK, ok, tc.word)
		assert.Equal(t, tc.want, got, tc.word)
	}
}
