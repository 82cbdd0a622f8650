package quiz

import (
	"math/rand/v2"
	"regexp"
	"slices"

	"github.com/google/uuid"
	"github.com/phrazzld/bibliobuddy/internal/domain"
)

// BlankMarker replaces the target word in fill-in-the-blank prompts.
const BlankMarker = "____"

// fillInBlankTitle is shown instead of the word, which would give the answer away.
const fillInBlankTitle = "Complete the sentence"

// Corpus is the read-only view of the vocabulary the engine needs.
// *corpus.Index implements it.
type Corpus interface {
	Entries() []domain.Entry
	ByPOS(pos domain.PartOfSpeech) []domain.Entry
	Lookup(word string) (domain.Entry, bool)
	Synonyms(word string) (domain.SynonymRecord, bool)
}

// Option is one answer choice.
type Option struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Question is a multiple-choice prompt about one entry. Exactly one option
// is correct and no two options share display text.
type Question struct {
	ID      uuid.UUID           `json:"id"`
	Mode    domain.Mode         `json:"mode"`
	Word    string              `json:"word"`
	POS     domain.PartOfSpeech `json:"pos"`
	Title   string              `json:"title"`
	Prompt  string              `json:"prompt"`
	Options []Option            `json:"options"`
}

// CorrectIndex is the position of the correct option, or -1.
func (q *Question) CorrectIndex() int {
	for i, o := range q.Options {
		if o.IsCorrect {
			return i
		}
	}
	return -1
}

// Builder assembles questions from corpus entries. It is not safe for
// concurrent use because it shares the caller's random source.
type Builder struct {
	corpus      Corpus
	rng         *rand.Rand
	optionCount int
}

// NewBuilder creates a Builder producing at most optionCount options per question.
func NewBuilder(c Corpus, rng *rand.Rand, optionCount int) *Builder {
	if c == nil {
		panic("corpus cannot be nil")
	}
	if rng == nil {
		panic("rng cannot be nil")
	}
	if optionCount < 2 {
		optionCount = DefaultParams().OptionCount
	}
	return &Builder{corpus: c, rng: rng, optionCount: optionCount}
}

// Eligible reports whether entry has the data mode needs. Every entry can
// back a definitions question; synonyms needs at least one synonym and
// fill-in-the-blank at least one example sentence.
func (b *Builder) Eligible(mode domain.Mode, entry domain.Entry) bool {
	switch mode {
	case domain.ModeDefinitions:
		return true
	case domain.ModeSynonyms:
		rec, ok := b.corpus.Synonyms(entry.Word)
		return ok && rec.HasSynonyms()
	case domain.ModeFillInBlank:
		rec, ok := b.corpus.Synonyms(entry.Word)
		return ok && rec.HasSentences()
	default:
		return false
	}
}

// EligibleEntries returns the entries eligible for mode in corpus order.
func (b *Builder) EligibleEntries(mode domain.Mode) []domain.Entry {
	all := b.corpus.Entries()
	if mode == domain.ModeDefinitions {
		return all
	}
	out := make([]domain.Entry, 0, len(all))
	for _, e := range all {
		if b.Eligible(mode, e) {
			out = append(out, e)
		}
	}
	return out
}

// Build creates a question about entry, or returns nil when entry is not
// eligible for mode. The returned question has no ID yet.
func (b *Builder) Build(mode domain.Mode, entry domain.Entry) *Question {
	switch mode {
	case domain.ModeDefinitions:
		return b.buildDefinition(entry)
	case domain.ModeSynonyms:
		return b.buildSynonym(entry)
	case domain.ModeFillInBlank:
		return b.buildFillInBlank(entry)
	default:
		return nil
	}
}

func (b *Builder) buildDefinition(entry domain.Entry) *Question {
	samePOS := b.corpus.ByPOS(entry.POS)
	pool := make([]string, 0, len(samePOS))
	for _, e := range samePOS {
		pool = append(pool, e.Definition)
	}

	return b.question(domain.ModeDefinitions, entry, entry.Word, domain.ModeDefinitions.Prompt(), entry.Definition, pool)
}

func (b *Builder) buildSynonym(entry domain.Entry) *Question {
	rec, ok := b.corpus.Synonyms(entry.Word)
	if !ok || !rec.HasSynonyms() {
		return nil
	}

	correct := rec.Synonyms[b.rng.IntN(len(rec.Synonyms))]

	var pool []string
	for _, e := range b.corpus.ByPOS(entry.POS) {
		if e.Word == entry.Word || e.Word == correct || slices.Contains(rec.Synonyms, e.Word) {
			continue
		}
		pool = append(pool, e.Word)
	}

	return b.question(domain.ModeSynonyms, entry, entry.Word, domain.ModeSynonyms.Prompt(), correct, pool)
}

func (b *Builder) buildFillInBlank(entry domain.Entry) *Question {
	rec, ok := b.corpus.Synonyms(entry.Word)
	if !ok || !rec.HasSentences() {
		return nil
	}

	sentence := rec.Sentences[b.rng.IntN(len(rec.Sentences))]

	var pool []string
	for _, e := range b.corpus.ByPOS(entry.POS) {
		if e.Word != entry.Word {
			pool = append(pool, e.Word)
		}
	}

	return b.question(domain.ModeFillInBlank, entry, fillInBlankTitle, BlankSentence(sentence, entry.Word), entry.Word, pool)
}

func (b *Builder) question(mode domain.Mode, entry domain.Entry, title, prompt, correct string, pool []string) *Question {
	texts := uniqueOptions(b.rng, correct, pool, b.optionCount)
	b.rng.Shuffle(len(texts), func(i, j int) { texts[i], texts[j] = texts[j], texts[i] })

	options := make([]Option, len(texts))
	for i, text := range texts {
		options[i] = Option{Text: text, IsCorrect: text == correct}
	}

	return &Question{
		Mode:    mode,
		Word:    entry.Word,
		POS:     entry.POS,
		Title:   title,
		Prompt:  prompt,
		Options: options,
	}
}

// uniqueOptions returns correct followed by up to count-1 distinct
// distractors drawn from a shuffled copy of pool. Pool items equal to
// correct or to an earlier pick are skipped.
func uniqueOptions(rng *rand.Rand, correct string, pool []string, count int) []string {
	out := make([]string, 0, count)
	out = append(out, correct)
	seen := map[string]struct{}{correct: {}}

	shuffled := slices.Clone(pool)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	for _, item := range shuffled {
		if len(out) >= count {
			break
		}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// BlankSentence replaces the first case-insensitive whole-word occurrence
// of word in sentence, including a trailing 's, ’s or s, with BlankMarker.
// Without a match the marker is appended after a space.
func BlankSentence(sentence, word string) string {
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(word) + `(?:['’]s|s)?\b`)
	if err != nil {
		return sentence + " " + BlankMarker
	}

	loc := re.FindStringIndex(sentence)
	if loc == nil {
		return sentence + " " + BlankMarker
	}
	return sentence[:loc[0]] + BlankMarker + sentence[loc[1]:]
}
