package api

import (
	"github.com/phrazzld/bibliobuddy/internal/domain"
	"github.com/phrazzld/bibliobuddy/internal/domain/mastery"
	"github.com/phrazzld/bibliobuddy/internal/quiz"
)

// Placeholder lines shown when a word has no synonym or sentence data.
const (
	NoSynonymsMessage  = "No synonyms available."
	NoSentencesMessage = "No example sentences available."
)

// AnswerRequest defines the payload for submitting an answer.
type AnswerRequest struct {
	QuestionID  string `json:"question_id"  validate:"required,uuid"`
	OptionIndex *int   `json:"option_index" validate:"required,min=0"`
}

// ReviewRequest defines the payload for toggling review mode.
type ReviewRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// OptionResponse is an answer choice without its correctness flag.
type OptionResponse struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// QuestionResponse is a question as shown to the learner.
type QuestionResponse struct {
	ID      string           `json:"id"`
	Mode    domain.Mode      `json:"mode"`
	Title   string           `json:"title"`
	Prompt  string           `json:"prompt"`
	POS     string           `json:"pos"`
	Options []OptionResponse `json:"options"`
}

// CategoryCount is one row of the category breakdown.
type CategoryCount struct {
	Category mastery.Category `json:"category"`
	Label    string           `json:"label"`
	Count    int              `json:"count"`
}

// StatsResponse is the stats panel of a mode.
type StatsResponse struct {
	Mode           domain.Mode     `json:"mode"`
	Categories     []CategoryCount `json:"categories"`
	Eligible       int             `json:"eligible"`
	Tracked        int             `json:"tracked"`
	Mastered       int             `json:"mastered"`
	ActiveCap      int             `json:"active_cap"`
	CapReached     bool            `json:"cap_reached"`
	ReviewMastered bool            `json:"review_mastered"`
	Summary        string          `json:"summary"`
	Notice         string          `json:"notice,omitempty"`
}

// SelectionResponse is the result of asking for the next question.
// Question is absent when Outcome is not "question"; Message says why.
type SelectionResponse struct {
	Outcome  quiz.Outcome      `json:"outcome"`
	Message  string            `json:"message,omitempty"`
	Question *QuestionResponse `json:"question,omitempty"`
	Stats    StatsResponse     `json:"stats"`
}

// WordDetailsResponse is the study card of a word.
type WordDetailsResponse struct {
	Word       string   `json:"word"`
	POS        string   `json:"pos"`
	Definition string   `json:"definition"`
	Synonyms   []string `json:"synonyms"`
	Sentences  []string `json:"sentences"`
}

// AnswerResponse reports the scored answer.
type AnswerResponse struct {
	IsCorrect    bool                `json:"is_correct"`
	CorrectIndex int                 `json:"correct_index"`
	NewScore     int                 `json:"new_score"`
	NewCategory  mastery.Category    `json:"new_category"`
	Feedback     string              `json:"feedback"`
	Details      WordDetailsResponse `json:"details"`
	Stats        StatsResponse       `json:"stats"`
}

// SnapshotGroupResponse lists the words of one category.
type SnapshotGroupResponse struct {
	Category mastery.Category `json:"category"`
	Label    string           `json:"label"`
	Count    int              `json:"count"`
	Words    []string         `json:"words"`
}

// SnapshotResponse groups a mode's words by category.
type SnapshotResponse struct {
	Mode   domain.Mode             `json:"mode"`
	Groups []SnapshotGroupResponse `json:"groups"`
	Stats  StatsResponse           `json:"stats"`
}

// ModeResponse describes one quiz mode.
type ModeResponse struct {
	Mode   domain.Mode `json:"mode"`
	Label  string      `json:"label"`
	Prompt string      `json:"prompt"`
}

// ImportResponse reports which bundle keys were written.
type ImportResponse struct {
	Imported      []string `json:"imported"`
	Skipped       []string `json:"skipped"`
	ImportedCount int      `json:"imported_count"`
	SkippedCount  int      `json:"skipped_count"`
}

func statsToResponse(s quiz.Stats) StatsResponse {
	categories := make([]CategoryCount, 0, len(mastery.All()))
	for _, c := range mastery.All() {
		categories = append(categories, CategoryCount{Category: c, Label: c.Label(), Count: s.Counts[c]})
	}

	return StatsResponse{
		Mode:           s.Mode,
		Categories:     categories,
		Eligible:       s.Eligible,
		Tracked:        s.Tracked,
		Mastered:       s.Mastered,
		ActiveCap:      s.ActiveCap,
		CapReached:     s.CapReached,
		ReviewMastered: s.ReviewMastered,
		Summary:        s.Summary(),
		Notice:         s.CapNotice(),
	}
}

func questionToResponse(q *quiz.Question) *QuestionResponse {
	options := make([]OptionResponse, len(q.Options))
	for i, o := range q.Options {
		options[i] = OptionResponse{Index: i, Text: o.Text}
	}

	return &QuestionResponse{
		ID:      q.ID.String(),
		Mode:    q.Mode,
		Title:   q.Title,
		Prompt:  q.Prompt,
		POS:     string(q.POS),
		Options: options,
	}
}

func selectionToResponse(sel *quiz.Selection) SelectionResponse {
	resp := SelectionResponse{
		Outcome: sel.Outcome,
		Message: sel.Message(),
		Stats:   statsToResponse(sel.Stats),
	}
	if sel.Question != nil {
		resp.Question = questionToResponse(sel.Question)
	}
	return resp
}

func detailsToResponse(d quiz.WordDetails) WordDetailsResponse {
	synonyms := d.Synonyms
	if len(synonyms) == 0 {
		synonyms = []string{NoSynonymsMessage}
	}
	sentences := d.Sentences
	if len(sentences) == 0 {
		sentences = []string{NoSentencesMessage}
	}

	return WordDetailsResponse{
		Word:       d.Word,
		POS:        string(d.POS),
		Definition: d.Definition,
		Synonyms:   synonyms,
		Sentences:  sentences,
	}
}

func answerToResponse(a *quiz.AnswerResult) AnswerResponse {
	feedback := "Incorrect"
	if a.IsCorrect {
		feedback = "Correct"
	}

	return AnswerResponse{
		IsCorrect:    a.IsCorrect,
		CorrectIndex: a.CorrectIndex,
		NewScore:     a.NewScore,
		NewCategory:  a.NewCategory,
		Feedback:     feedback,
		Details:      detailsToResponse(a.Details),
		Stats:        statsToResponse(a.Stats),
	}
}

func snapshotToResponse(s *quiz.Snapshot) SnapshotResponse {
	groups := make([]SnapshotGroupResponse, len(s.Groups))
	for i, g := range s.Groups {
		groups[i] = SnapshotGroupResponse{
			Category: g.Category,
			Label:    g.Label,
			Count:    g.Count,
			Words:    g.Words,
		}
	}

	return SnapshotResponse{
		Mode:   s.Mode,
		Groups: groups,
		Stats:  statsToResponse(s.Stats),
	}
}
