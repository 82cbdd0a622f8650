package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePartOfSpeech(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		raw  string
		want PartOfSpeech
	}{
		{"v.", PartOfSpeechVerb},
		{"V.", PartOfSpeechVerb},
		{"n.", PartOfSpeechNoun},
		{"n. pl.", PartOfSpeechNoun},
		{"adj.", PartOfSpeechAdjective},
		{"adv.", PartOfSpeechAdverb},
		// "v." is checked first, so a combined type resolves to verb.
		{"n. & v.", PartOfSpeechVerb},
		{"prep.", PartOfSpeechOther},
		{"", PartOfSpeechOther},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizePartOfSpeech(tc.raw))
		})
	}
}

func TestNewEntry(t *testing.T) {
	t.Parallel()

	t.Run("trims word and definition", func(t *testing.T) {
		entry, ok := NewEntry(RawRecord{Word: "  abate ", Definition: " to lessen\n", Type: "v."})
		assert.True(t, ok)
		assert.Equal(t, Entry{Word: "abate", Definition: "to lessen", POS: PartOfSpeechVerb, RawType: "v."}, entry)
	})

	t.Run("rejects missing word", func(t *testing.T) {
		_, ok := NewEntry(RawRecord{Word: "   ", Definition: "something"})
		assert.False(t, ok)
	})

	t.Run("rejects missing definition", func(t *testing.T) {
		_, ok := NewEntry(RawRecord{Word: "abate", Definition: ""})
		assert.False(t, ok)
	})
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	for _, m := range Modes() {
		parsed, err := ParseMode(string(m))
		assert.NoError(t, err)
		assert.Equal(t, m, parsed)
		assert.NotEmpty(t, m.Label())
		assert.NotEmpty(t, m.Prompt())
	}

	_, err := ParseMode("spelling")
	assert.ErrorIs(t, err, ErrInvalidMode)
}
