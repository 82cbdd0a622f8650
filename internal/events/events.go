package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the quiz engine.
const (
	TypeAnswerRecorded   = "answer.recorded"
	TypeProgressReset    = "progress.reset"
	TypeReviewToggled    = "review.toggled"
	TypeProgressImported = "progress.imported"
)

// ProgressEvent describes one change to persisted progress.
type ProgressEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// Mode is the quiz mode affected; empty for events spanning modes
	Mode string `json:"mode,omitempty"`

	// Payload contains the type-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// AnswerRecordedPayload is the payload of TypeAnswerRecorded.
type AnswerRecordedPayload struct {
	Word      string `json:"word"`
	IsCorrect bool   `json:"is_correct"`
	NewScore  int    `json:"new_score"`
	Category  string `json:"category"`
}

// ReviewToggledPayload is the payload of TypeReviewToggled.
type ReviewToggledPayload struct {
	Enabled bool `json:"enabled"`
}

// ProgressImportedPayload is the payload of TypeProgressImported.
type ProgressImportedPayload struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *ProgressEvent) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewProgressEvent creates an event of eventType for mode, stamped at now.
func NewProgressEvent(eventType, mode string, payload any, now time.Time) (*ProgressEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &ProgressEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Mode:      mode,
		Payload:   payloadBytes,
		CreatedAt: now,
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *ProgressEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *ProgressEvent) error
}
