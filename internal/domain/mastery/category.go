// Package mastery classifies per-word scores into ordered mastery categories.
//
// Classification is a pure function of the score. Nothing else, including
// when the word was last seen, influences the category.
package mastery

// Category is one of six ordered mastery labels.
type Category string

// Categories from least to most mastered.
const (
	NotEncountered Category = "not-encountered"
	WorkNeeded     Category = "work-needed"
	KeepTrying     Category = "keep-trying"
	GettingThere   Category = "getting-there"
	NearlyMastered Category = "nearly-mastered"
	Mastered       Category = "mastered"
)

// MasteredAbove is the highest score that still counts as tracked;
// anything above it is mastered.
const MasteredAbove = 10

var labels = map[Category]string{
	NotEncountered: "Not encountered yet",
	WorkNeeded:     "Work needed",
	KeepTrying:     "Keep trying",
	GettingThere:   "Getting there",
	NearlyMastered: "Nearly mastered",
	Mastered:       "Mastered",
}

// All returns every category in display order.
func All() []Category {
	return []Category{NotEncountered, WorkNeeded, KeepTrying, GettingThere, NearlyMastered, Mastered}
}

// Label is the display text for c.
func (c Category) Label() string { return labels[c] }

// Classify maps a score to its category. known is false for a word
// that has never been answered.
//
//	not known  -> not-encountered
//	< 0        -> work-needed
//	0..2       -> keep-trying
//	3..5       -> getting-there
//	6..10      -> nearly-mastered
//	> 10       -> mastered
func Classify(score int, known bool) Category {
	switch {
	case !known:
		return NotEncountered
	case score < 0:
		return WorkNeeded
	case score <= 2:
		return KeepTrying
	case score <= 5:
		return GettingThere
	case score <= MasteredAbove:
		return NearlyMastered
	default:
		return Mastered
	}
}

// IsTrackedNonMastered reports whether an encountered word still counts
// against the active cap.
func IsTrackedNonMastered(score int, known bool) bool {
	return known && score <= MasteredAbove
}

// IsMastered reports whether a word has graduated out of the tracked set.
func IsMastered(score int, known bool) bool {
	return known && score > MasteredAbove
}

// Counts tallies words per category. Every category is present in the result.
type Counts map[Category]int

// NewCounts returns a Counts with every category at zero.
func NewCounts() Counts {
	c := make(Counts, len(labels))
	for _, cat := range All() {
		c[cat] = 0
	}
	return c
}
