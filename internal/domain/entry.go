package domain

import "strings"

// PartOfSpeech is the coarse grammatical class used to group entries
// when sourcing distractors.
type PartOfSpeech string

// Supported parts of speech.
const (
	PartOfSpeechVerb      PartOfSpeech = "verb"
	PartOfSpeechNoun      PartOfSpeech = "noun"
	PartOfSpeechAdjective PartOfSpeech = "adj"
	PartOfSpeechAdverb    PartOfSpeech = "adv"
	PartOfSpeechOther     PartOfSpeech = "other"
)

// NormalizePartOfSpeech maps a free-text dictionary type such as "v.",
// "n. pl." or "adj." to a PartOfSpeech. Markers are checked in order
// verb, noun, adjective, adverb; the first substring hit wins.
func NormalizePartOfSpeech(rawType string) PartOfSpeech {
	value := strings.ToLower(rawType)
	switch {
	case strings.Contains(value, "v."):
		return PartOfSpeechVerb
	case strings.Contains(value, "n."):
		return PartOfSpeechNoun
	case strings.Contains(value, "adj."):
		return PartOfSpeechAdjective
	case strings.Contains(value, "adv."):
		return PartOfSpeechAdverb
	default:
		return PartOfSpeechOther
	}
}

// RawRecord is a word record as it appears in the corpus file.
type RawRecord struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Type       string `json:"type"`
}

// Entry is a normalized vocabulary word. Entries are immutable once loaded.
type Entry struct {
	Word       string       `json:"word"`
	Definition string       `json:"definition"`
	POS        PartOfSpeech `json:"pos"`
	RawType    string       `json:"raw_type"`
}

// NewEntry normalizes a raw record. The boolean is false when the record
// has no word or no definition after trimming.
func NewEntry(raw RawRecord) (Entry, bool) {
	word := strings.TrimSpace(raw.Word)
	definition := strings.TrimSpace(raw.Definition)
	if word == "" || definition == "" {
		return Entry{}, false
	}

	return Entry{
		Word:       word,
		Definition: definition,
		POS:        NormalizePartOfSpeech(raw.Type),
		RawType:    raw.Type,
	}, true
}

// SynonymRecord holds the optional synonym and example-sentence data for a word.
type SynonymRecord struct {
	Synonyms  []string `json:"synonyms"`
	Sentences []string `json:"sentences"`
}

// HasSynonyms reports whether the record can back a synonyms question.
func (r SynonymRecord) HasSynonyms() bool { return len(r.Synonyms) > 0 }

// HasSentences reports whether the record can back a fill-in-the-blank question.
func (r SynonymRecord) HasSentences() bool { return len(r.Sentences) > 0 }
