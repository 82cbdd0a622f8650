package quiz

import (
	"testing"

	"github.com/phrazzld/bibliobuddy/internal/domain"
	"github.com/phrazzld/bibliobuddy/internal/domain/mastery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSelector(c Corpus, params Params) *Selector {
	rng := newTestRand()
	return NewSelector(NewBuilder(c, rng, params.OptionCount), params, rng)
}

func TestSelectNextCapThrottling(t *testing.T) {
	t.Parallel()

	params := DefaultParams()
	params.ActiveCap = 2
	s := newTestSelector(testCorpus(), params)
	progress := progressWith(map[string]int{"abate": 1, "bolster": -2, "cajole": 11})

	for i := 0; i < 100; i++ {
		sel := s.SelectNext(domain.ModeDefinitions, progress)
		require.Equal(t, OutcomeQuestion, sel.Outcome)
		assert.Contains(t, []string{"abate", "bolster"}, sel.Entry.Word,
			"only tracked words are offered once the cap is reached")
		assert.True(t, sel.Stats.CapReached)
		assert.Equal(t, "Cap reached: new words paused", sel.Stats.CapNotice())
	}
}

func TestSelectNextBelowCapIntroducesNewWords(t *testing.T) {
	t.Parallel()

	s := newTestSelector(testCorpus(), DefaultParams())
	progress := progressWith(map[string]int{"abate": 1, "bolster": -2, "cajole": 11})

	seenNew := false
	for i := 0; i < 200; i++ {
		sel := s.SelectNext(domain.ModeDefinitions, progress)
		require.Equal(t, OutcomeQuestion, sel.Outcome)
		assert.NotEqual(t, "cajole", sel.Entry.Word, "mastered words are excluded outside review")
		if _, known := progress.Score(sel.Entry.Word); !known {
			seenNew = true
		}
		assert.False(t, sel.Stats.CapReached)
		assert.Empty(t, sel.Stats.CapNotice())
	}
	assert.True(t, seenNew)
}

func TestSelectNextReviewMode(t *testing.T) {
	t.Parallel()

	t.Run("no mastered words", func(t *testing.T) {
		s := newTestSelector(testCorpus(), DefaultParams())
		progress := progressWith(map[string]int{"abate": 3})
		progress.ReviewMastered = true

		sel := s.SelectNext(domain.ModeDefinitions, progress)

		assert.Equal(t, OutcomeNoMastered, sel.Outcome)
		assert.Nil(t, sel.Question)
		assert.Equal(t, "No mastered words to review.", sel.Message())
		assert.True(t, sel.Stats.ReviewMastered)
	})

	t.Run("too few mastered words", func(t *testing.T) {
		s := newTestSelector(testCorpus(), DefaultParams())
		progress := progressWith(map[string]int{"abate": 12, "bolster": 20})
		progress.ReviewMastered = true

		sel := s.SelectNext(domain.ModeDefinitions, progress)

		assert.Equal(t, OutcomeNotEnoughMastered, sel.Outcome)
		assert.Equal(t, "Not enough mastered words to review.", sel.Message())
		assert.Equal(t, 2, sel.Stats.Mastered)
	})

	t.Run("gate disabled reviews only mastered words", func(t *testing.T) {
		params := DefaultParams()
		params.ReviewMinimum = 0
		s := newTestSelector(testCorpus(), params)
		progress := progressWith(map[string]int{"abate": 12, "bolster": 20, "cajole": 4})
		progress.ReviewMastered = true

		for i := 0; i < 50; i++ {
			sel := s.SelectNext(domain.ModeDefinitions, progress)
			require.Equal(t, OutcomeQuestion, sel.Outcome)
			assert.Contains(t, []string{"abate", "bolster"}, sel.Entry.Word)
			assert.Empty(t, sel.Message())
		}
	})
}

func TestSelectNextNoWords(t *testing.T) {
	t.Parallel()

	s := newTestSelector(threeEntryCorpus(), DefaultParams())
	progress := progressWith(map[string]int{"abate": 11, "bolster": 11, "cajole": 11})

	sel := s.SelectNext(domain.ModeDefinitions, progress)

	assert.Equal(t, OutcomeNoWords, sel.Outcome)
	assert.Nil(t, sel.Entry)
	assert.Equal(t, "No words available", sel.Message())
	assert.Equal(t, 3, sel.Stats.Mastered)
}

func TestSelectNextOnlyEligibleEntries(t *testing.T) {
	t.Parallel()

	s := newTestSelector(testCorpus(), DefaultParams())
	progress := domain.NewModeProgress()

	for i := 0; i < 50; i++ {
		sel := s.SelectNext(domain.ModeSynonyms, progress)
		require.Equal(t, OutcomeQuestion, sel.Outcome)
		assert.Contains(t, []string{"abate", "bolster", "cajole"}, sel.Entry.Word)
		assert.Equal(t, sel.Entry.Word, sel.Question.Word)
		assert.Equal(t, 3, sel.Stats.Eligible)
	}
}

func TestPickDropsUnbuildableEntries(t *testing.T) {
	t.Parallel()

	c := testCorpus()
	s := newTestSelector(c, DefaultParams())
	pool := []domain.Entry{entry(t, c, "elude"), entry(t, c, "deter"), entry(t, c, "cajole")}

	for i := 0; i < 20; i++ {
		e, q := s.pick(domain.ModeSynonyms, pool)
		require.NotNil(t, q)
		assert.Equal(t, "cajole", e.Word)
	}
	assert.Equal(t, "elude", pool[0].Word, "the caller's pool is not modified")

	_, q := s.pick(domain.ModeSynonyms, pool[:2])
	assert.Nil(t, q)
}

func TestSelectorStats(t *testing.T) {
	t.Parallel()

	s := newTestSelector(testCorpus(), DefaultParams())
	progress := progressWith(map[string]int{"abate": -1, "bolster": 0, "cajole": 4, "deter": 8, "elude": 30})

	stats := s.Stats(domain.ModeDefinitions, progress)

	assert.Equal(t, 12, stats.Eligible)
	assert.Equal(t, 4, stats.Tracked)
	assert.Equal(t, 1, stats.Mastered)
	assert.Equal(t, 50, stats.ActiveCap)
	assert.Equal(t, mastery.Counts{
		mastery.NotEncountered: 7,
		mastery.WorkNeeded:     1,
		mastery.KeepTrying:     1,
		mastery.GettingThere:   1,
		mastery.NearlyMastered: 1,
		mastery.Mastered:       1,
	}, stats.Counts)
	assert.Equal(t, "Active non-mastered: 4/50. Mastered: 1.", stats.Summary())

	total := 0
	for _, n := range stats.Counts {
		total += n
	}
	assert.Equal(t, stats.Eligible, total)
}

func TestStatsCountOnlyEligibleWords(t *testing.T) {
	t.Parallel()

	s := newTestSelector(testCorpus(), DefaultParams())
	progress := progressWith(map[string]int{"abate": 2, "astute": 5, "retired": 3})

	stats := s.Stats(domain.ModeSynonyms, progress)

	assert.Equal(t, 3, stats.Eligible)
	assert.Equal(t, 1, stats.Tracked, "scores for words outside the eligible set are ignored")
	assert.Equal(t, 2, stats.Counts[mastery.NotEncountered])
}
