package corpus

import (
	"github.com/phrazzld/bibliobuddy/internal/domain"
)

// Index is the normalized corpus. It is safe for concurrent reads.
type Index struct {
	entries  []domain.Entry
	byPOS    map[domain.PartOfSpeech][]domain.Entry
	byWord   map[string]domain.Entry
	synonyms map[string]domain.SynonymRecord
}

// New normalizes records into an Index. Records without a word or a
// definition are dropped. Duplicate words are kept in the ordered lists;
// Lookup returns the last one.
func New(records []domain.RawRecord, synonyms map[string]domain.SynonymRecord) *Index {
	idx := &Index{
		entries:  make([]domain.Entry, 0, len(records)),
		byPOS:    make(map[domain.PartOfSpeech][]domain.Entry),
		byWord:   make(map[string]domain.Entry, len(records)),
		synonyms: make(map[string]domain.SynonymRecord, len(synonyms)),
	}

	for _, raw := range records {
		entry, ok := domain.NewEntry(raw)
		if !ok {
			continue
		}
		idx.entries = append(idx.entries, entry)
		idx.byPOS[entry.POS] = append(idx.byPOS[entry.POS], entry)
		idx.byWord[entry.Word] = entry
	}

	for word, rec := range synonyms {
		idx.synonyms[word] = rec
	}

	return idx
}

// Entries returns all entries in corpus order. The slice must not be modified.
func (i *Index) Entries() []domain.Entry {
	return i.entries
}

// ByPOS returns the entries with the given part of speech in corpus order.
func (i *Index) ByPOS(pos domain.PartOfSpeech) []domain.Entry {
	return i.byPOS[pos]
}

// Lookup finds the entry for word.
func (i *Index) Lookup(word string) (domain.Entry, bool) {
	e, ok := i.byWord[word]
	return e, ok
}

// Synonyms returns the synonym record for word, if the corpus has one.
func (i *Index) Synonyms(word string) (domain.SynonymRecord, bool) {
	rec, ok := i.synonyms[word]
	return rec, ok
}

// Len is the number of entries.
func (i *Index) Len() int {
	return len(i.entries)
}
