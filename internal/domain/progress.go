package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// ModeProgress is a learner's history for one quiz mode.
//
// A word missing from Scores has not been encountered. Each correct answer
// adds one and each incorrect answer subtracts one; the score is unbounded.
type ModeProgress struct {
	Scores         map[string]int
	LastSeen       map[string]time.Time
	ReviewMastered bool
}

// NewModeProgress returns empty progress.
func NewModeProgress() *ModeProgress {
	return &ModeProgress{
		Scores:   make(map[string]int),
		LastSeen: make(map[string]time.Time),
	}
}

// Score returns the word's score and whether it has been encountered.
func (p *ModeProgress) Score(word string) (int, bool) {
	if p == nil {
		return 0, false
	}
	score, ok := p.Scores[word]
	return score, ok
}

// RecordAnswer applies one answer to word and returns the resulting score.
// A first encounter starts from zero. The mutation is in memory only;
// callers persist the progress afterwards.
func (p *ModeProgress) RecordAnswer(word string, correct bool, now time.Time) int {
	if p.Scores == nil {
		p.Scores = make(map[string]int)
	}
	if p.LastSeen == nil {
		p.LastSeen = make(map[string]time.Time)
	}

	if correct {
		p.Scores[word]++
	} else {
		p.Scores[word]--
	}
	p.LastSeen[word] = now
	return p.Scores[word]
}

// Clone returns a deep copy of p.
func (p *ModeProgress) Clone() *ModeProgress {
	c := NewModeProgress()
	if p == nil {
		return c
	}
	for w, s := range p.Scores {
		c.Scores[w] = s
	}
	for w, t := range p.LastSeen {
		c.LastSeen[w] = t
	}
	c.ReviewMastered = p.ReviewMastered
	return c
}

// persistedProgress is the stored JSON shape. Timestamps are Unix milliseconds
// so exported bundles stay compatible with the browser build of the quiz.
type persistedProgress struct {
	Scores         map[string]int   `json:"scores"`
	LastSeen       map[string]int64 `json:"lastSeen"`
	ReviewMastered bool             `json:"reviewMastered"`
}

// MarshalJSON encodes the progress in its persisted form.
func (p ModeProgress) MarshalJSON() ([]byte, error) {
	out := persistedProgress{
		Scores:         make(map[string]int, len(p.Scores)),
		LastSeen:       make(map[string]int64, len(p.LastSeen)),
		ReviewMastered: p.ReviewMastered,
	}
	for w, s := range p.Scores {
		out.Scores[w] = s
	}
	for w, t := range p.LastSeen {
		out.LastSeen[w] = t.UnixMilli()
	}
	return json.Marshal(out)
}

// DecodeModeProgress decodes stored progress field by field. Anything it
// cannot make sense of is replaced by its empty default, so the returned
// progress is always usable. The error, wrapping ErrMalformedProgress,
// only reports that something was dropped.
func DecodeModeProgress(data []byte) (*ModeProgress, error) {
	p := NewModeProgress()

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return p, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return p, fmt.Errorf("%w: %v", ErrMalformedProgress, err)
	}

	var dropped []string

	if raw, ok := fields["scores"]; ok && !isNull(raw) {
		var scores map[string]json.RawMessage
		if err := json.Unmarshal(raw, &scores); err != nil {
			dropped = append(dropped, "scores")
		}
		for word, value := range scores {
			score, ok := decodeInt(value)
			if !ok {
				dropped = append(dropped, "scores."+word)
				continue
			}
			p.Scores[word] = score
		}
	}

	if raw, ok := fields["lastSeen"]; ok && !isNull(raw) {
		var seen map[string]json.RawMessage
		if err := json.Unmarshal(raw, &seen); err != nil {
			dropped = append(dropped, "lastSeen")
		}
		for word, value := range seen {
			ts, ok := decodeTimestamp(value)
			if !ok {
				dropped = append(dropped, "lastSeen."+word)
				continue
			}
			p.LastSeen[word] = ts
		}
	}

	if raw, ok := fields["reviewMastered"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &p.ReviewMastered); err != nil {
			p.ReviewMastered = false
			dropped = append(dropped, "reviewMastered")
		}
	}

	if len(dropped) > 0 {
		return p, fmt.Errorf("%w: dropped %v", ErrMalformedProgress, dropped)
	}
	return p, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// maxExactScore is the largest magnitude a JSON number carries without
// losing integer precision.
const maxExactScore = 1 << 53

func decodeInt(raw json.RawMessage) (int, bool) {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	if f != math.Trunc(f) || math.Abs(f) > maxExactScore || f > math.MaxInt || f < math.MinInt {
		return 0, false
	}
	return int(f), true
}

// decodeTimestamp accepts Unix milliseconds or an RFC 3339 string.
func decodeTimestamp(raw json.RawMessage) (time.Time, bool) {
	var ms float64
	if err := json.Unmarshal(raw, &ms); err == nil {
		return time.UnixMilli(int64(ms)).UTC(), true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return ts.UTC(), true
}
