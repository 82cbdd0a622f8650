package quiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/bibliobuddy/internal/domain"
	"github.com/phrazzld/bibliobuddy/internal/domain/mastery"
	"github.com/phrazzld/bibliobuddy/internal/store"
)

// ModeInfo describes a quiz mode for display.
type ModeInfo struct {
	Mode   domain.Mode `json:"mode"`
	Label  string      `json:"label"`
	Prompt string      `json:"prompt"`
}

// WordDetails is the study card shown for a word after it is answered.
type WordDetails struct {
	Word       string              `json:"word"`
	POS        domain.PartOfSpeech `json:"pos"`
	Definition string              `json:"definition"`
	Synonyms   []string            `json:"synonyms"`
	Sentences  []string            `json:"sentences"`
}

// AnswerResult is the outcome of a submitted answer.
type AnswerResult struct {
	QuestionID   uuid.UUID        `json:"question_id"`
	Word         string           `json:"word"`
	IsCorrect    bool             `json:"is_correct"`
	CorrectIndex int              `json:"correct_index"`
	NewScore     int              `json:"new_score"`
	NewCategory  mastery.Category `json:"new_category"`
	Details      WordDetails      `json:"details"`
	Stats        Stats            `json:"stats"`
}

// SnapshotGroup lists the words of one category, sorted alphabetically.
type SnapshotGroup struct {
	Category mastery.Category `json:"category"`
	Label    string           `json:"label"`
	Count    int              `json:"count"`
	Words    []string         `json:"words"`
}

// Snapshot groups a mode's eligible words by category in category order.
type Snapshot struct {
	Mode   domain.Mode     `json:"mode"`
	Groups []SnapshotGroup `json:"groups"`
	Stats  Stats           `json:"stats"`
}

// Service is the quiz engine. Implementations serialize their operations,
// so a Service may be shared between goroutines.
type Service interface {
	// Modes lists the available quiz modes in display order.
	Modes() []ModeInfo

	// GetNextQuestion selects the next word for mode and builds its question.
	// A selection without a question is not an error: its Outcome says why.
	// The returned question replaces any question still pending for mode.
	GetNextQuestion(ctx context.Context, mode domain.Mode) (*Selection, error)

	// SubmitAnswer scores optionIndex against the pending question and
	// persists the new score before returning.
	//
	// Returns ErrQuestionNotFound when questionID is not the pending question
	// for mode, and ErrInvalidOption when optionIndex is out of range.
	SubmitAnswer(ctx context.Context, mode domain.Mode, questionID uuid.UUID, optionIndex int) (*AnswerResult, error)

	// GetStats returns category counts and cap state for mode.
	GetStats(ctx context.Context, mode domain.Mode) (*Stats, error)

	// SetReviewMastered toggles review mode and persists the flag.
	SetReviewMastered(ctx context.Context, mode domain.Mode, enabled bool) (*Stats, error)

	// ResetMode deletes all progress for mode. Other modes are untouched.
	ResetMode(ctx context.Context, mode domain.Mode) error

	// Snapshot returns the eligible words of mode grouped by category.
	Snapshot(ctx context.Context, mode domain.Mode) (*Snapshot, error)

	// WordDetails returns the study card for word, or ErrWordNotFound.
	WordDetails(ctx context.Context, word string) (*WordDetails, error)

	// Export returns every persisted key as a portable bundle.
	Export(ctx context.Context) (*store.Bundle, error)

	// Import writes a bundle produced by Export and drops pending questions.
	Import(ctx context.Context, raw []byte) (*store.ImportReport, error)
}

// Common error types for Service
var (
	// ErrQuestionNotFound indicates the question is not pending: it was never
	// issued, was already answered, or was replaced by a newer one.
	ErrQuestionNotFound = errors.New("question not found")

	// ErrInvalidOption indicates an option index outside the question's options.
	ErrInvalidOption = errors.New("invalid option")

	// ErrWordNotFound indicates the word is not in the corpus.
	ErrWordNotFound = errors.New("word not found")
)

// ServiceError wraps errors from the quiz service with the failing operation.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "submit_answer", "reset_mode")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError returns a ServiceError for operation.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
