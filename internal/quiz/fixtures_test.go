package quiz

import (
	"math/rand/v2"

	"github.com/phrazzld/bibliobuddy/internal/corpus"
	"github.com/phrazzld/bibliobuddy/internal/domain"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewPCG(42, 1024))
}

// testCorpus has eight verbs, three nouns and one adjective. Only some of
// the verbs carry synonyms or sentences.
func testCorpus() *corpus.Index {
	records := []domain.RawRecord{
		{Word: "abate", Definition: "to lessen in intensity", Type: "v."},
		{Word: "bolster", Definition: "to support or strengthen", Type: "v."},
		{Word: "cajole", Definition: "to persuade by flattery", Type: "v."},
		{Word: "deter", Definition: "to discourage from acting", Type: "v."},
		{Word: "elude", Definition: "to escape from cleverly", Type: "v."},
		{Word: "foster", Definition: "to encourage development", Type: "v."},
		{Word: "lessen", Definition: "to make smaller", Type: "v."},
		{Word: "diminish", Definition: "to become less", Type: "v."},
		{Word: "acumen", Definition: "keen insight", Type: "n."},
		{Word: "bane", Definition: "a cause of great distress", Type: "n."},
		{Word: "candor", Definition: "the quality of being open and honest", Type: "n."},
		{Word: "astute", Definition: "shrewd and perceptive", Type: "adj."},
	}
	synonyms := map[string]domain.SynonymRecord{
		"abate": {
			Synonyms:  []string{"lessen", "diminish", "subside"},
			Sentences: []string{"The storm began to abate by morning.", "Nothing could abate her enthusiasm."},
		},
		"bolster": {
			Synonyms:  []string{"support", "reinforce"},
			Sentences: []string{"The win will bolster the team's confidence."},
		},
		"cajole": {
			Synonyms: []string{"coax", "wheedle"},
		},
		"deter": {
			Sentences: []string{"High fences deter intruders."},
		},
		"elude": {},
	}
	return corpus.New(records, synonyms)
}

func threeEntryCorpus() *corpus.Index {
	return corpus.New([]domain.RawRecord{
		{Word: "abate", Definition: "to lessen in intensity", Type: "v."},
		{Word: "bolster", Definition: "to support or strengthen", Type: "v."},
		{Word: "cajole", Definition: "to persuade by flattery", Type: "v."},
	}, map[string]domain.SynonymRecord{
		"abate": {Synonyms: []string{"lessen"}, Sentences: []string{"Wait for the wind to abate."}},
	})
}

func progressWith(scores map[string]int) *domain.ModeProgress {
	p := domain.NewModeProgress()
	for w, s := range scores {
		p.Scores[w] = s
	}
	return p
}
