package quiz

import (
	"fmt"
	"math/rand/v2"

	"github.com/phrazzld/bibliobuddy/internal/domain"
	"github.com/phrazzld/bibliobuddy/internal/domain/mastery"
)

// Outcome tells the caller whether a selection produced a question.
type Outcome string

// Selection outcomes. Only OutcomeQuestion carries a question; the others
// are informational and not errors.
const (
	OutcomeQuestion          Outcome = "question"
	OutcomeNoWords           Outcome = "no-words"
	OutcomeNoMastered        Outcome = "no-mastered"
	OutcomeNotEnoughMastered Outcome = "not-enough-mastered"
)

var outcomeMessages = map[Outcome]string{
	OutcomeNoWords:           "No words available",
	OutcomeNoMastered:        "No mastered words to review.",
	OutcomeNotEnoughMastered: "Not enough mastered words to review.",
}

// Stats summarizes a mode's progress over its eligible entries.
type Stats struct {
	Mode           domain.Mode    `json:"mode"`
	Counts         mastery.Counts `json:"counts"`
	Eligible       int            `json:"eligible"`
	Tracked        int            `json:"tracked"`
	Mastered       int            `json:"mastered"`
	ActiveCap      int            `json:"active_cap"`
	CapReached     bool           `json:"cap_reached"`
	ReviewMastered bool           `json:"review_mastered"`
}

// Summary is the one-line limit summary shown beside the stats.
func (s Stats) Summary() string {
	return fmt.Sprintf("Active non-mastered: %d/%d. Mastered: %d.", s.Tracked, s.ActiveCap, s.Mastered)
}

// CapNotice is non-empty while new words are paused.
func (s Stats) CapNotice() string {
	if s.CapReached {
		return "Cap reached: new words paused"
	}
	return ""
}

// Selection is the result of choosing the next word.
type Selection struct {
	Outcome  Outcome       `json:"outcome"`
	Entry    *domain.Entry `json:"entry,omitempty"`
	Question *Question     `json:"question,omitempty"`
	Stats    Stats         `json:"stats"`
}

// Message explains a selection without a question; it is empty otherwise.
func (s Selection) Message() string {
	return outcomeMessages[s.Outcome]
}

// partition splits eligible entries by their standing in progress.
type partition struct {
	eligible      []domain.Entry
	tracked       []domain.Entry
	mastered      []domain.Entry
	unencountered []domain.Entry
	counts        mastery.Counts
}

func partitionEntries(eligible []domain.Entry, progress *domain.ModeProgress) partition {
	p := partition{eligible: eligible, counts: mastery.NewCounts()}
	for _, e := range eligible {
		score, known := progress.Score(e.Word)
		p.counts[mastery.Classify(score, known)]++
		switch {
		case mastery.IsMastered(score, known):
			p.mastered = append(p.mastered, e)
		case mastery.IsTrackedNonMastered(score, known):
			p.tracked = append(p.tracked, e)
		default:
			p.unencountered = append(p.unencountered, e)
		}
	}
	return p
}

// Selector picks the next word for a mode. Selection is uniform over the
// candidate pool; recency and score do not weight it.
type Selector struct {
	builder *Builder
	params  Params
	rng     *rand.Rand
}

// NewSelector creates a Selector. builder and the selector should share rng.
func NewSelector(builder *Builder, params Params, rng *rand.Rand) *Selector {
	if builder == nil {
		panic("builder cannot be nil")
	}
	if rng == nil {
		panic("rng cannot be nil")
	}
	return &Selector{builder: builder, params: params.withDefaults(), rng: rng}
}

// Stats computes the mode's statistics without selecting anything.
func (s *Selector) Stats(mode domain.Mode, progress *domain.ModeProgress) Stats {
	return s.stats(mode, progress, partitionEntries(s.builder.EligibleEntries(mode), progress))
}

func (s *Selector) stats(mode domain.Mode, progress *domain.ModeProgress, p partition) Stats {
	return Stats{
		Mode:           mode,
		Counts:         p.counts,
		Eligible:       len(p.eligible),
		Tracked:        len(p.tracked),
		Mastered:       len(p.mastered),
		ActiveCap:      s.params.ActiveCap,
		CapReached:     len(p.tracked) >= s.params.ActiveCap,
		ReviewMastered: progress != nil && progress.ReviewMastered,
	}
}

// SelectNext chooses an entry and builds its question.
//
// In review mode only mastered entries are candidates, and the outcome is
// OutcomeNoMastered or OutcomeNotEnoughMastered when there are none or too
// few. Otherwise tracked entries are candidates, plus unencountered ones
// while the active cap has not been reached. Mastered entries never appear
// outside review mode.
func (s *Selector) SelectNext(mode domain.Mode, progress *domain.ModeProgress) Selection {
	p := partitionEntries(s.builder.EligibleEntries(mode), progress)
	stats := s.stats(mode, progress, p)

	var pool []domain.Entry
	if stats.ReviewMastered {
		if len(p.mastered) == 0 {
			return Selection{Outcome: OutcomeNoMastered, Stats: stats}
		}
		if len(p.mastered) < s.params.ReviewMinimum {
			return Selection{Outcome: OutcomeNotEnoughMastered, Stats: stats}
		}
		pool = p.mastered
	} else if stats.CapReached {
		pool = p.tracked
	} else {
		pool = make([]domain.Entry, 0, len(p.tracked)+len(p.unencountered))
		pool = append(pool, p.tracked...)
		pool = append(pool, p.unencountered...)
	}

	entry, question := s.pick(mode, pool)
	if question == nil {
		return Selection{Outcome: OutcomeNoWords, Stats: stats}
	}
	return Selection{Outcome: OutcomeQuestion, Entry: &entry, Question: question, Stats: stats}
}

// pick draws uniformly from pool until an entry yields a question. An entry
// that cannot be built is dropped from the draw.
func (s *Selector) pick(mode domain.Mode, pool []domain.Entry) (domain.Entry, *Question) {
	candidates := append([]domain.Entry(nil), pool...)
	for len(candidates) > 0 {
		i := s.rng.IntN(len(candidates))
		entry := candidates[i]
		if q := s.builder.Build(mode, entry); q != nil {
			return entry, q
		}
		last := len(candidates) - 1
		candidates[i] = candidates[last]
		candidates = candidates[:last]
	}
	return domain.Entry{}, nil
}
