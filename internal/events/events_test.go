package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProgressEvent(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	payload := AnswerRecordedPayload{Word: "abate", IsCorrect: true, NewScore: 3, Category: "getting-there"}

	event, err := NewProgressEvent(TypeAnswerRecorded, "definitions", payload, now)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TypeAnswerRecorded, event.Type)
	assert.Equal(t, "definitions", event.Mode)
	assert.Equal(t, now, event.CreatedAt)

	var decoded AnswerRecordedPayload
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, payload, decoded)
}

func TestNewProgressEventRejectsUnencodablePayload(t *testing.T) {
	_, err := NewProgressEvent(TypeReviewToggled, "fitb", make(chan int), time.Now())
	assert.Error(t, err)
}

// MockEventHandler implements the EventHandler interface for testing
type MockEventHandler struct {
	// The last event received by this handler
	LastEvent *ProgressEvent
	// Error to return from HandleEvent
	HandlerError error
	// Number of times HandleEvent was called
	HandledCount int
}

// HandleEvent records the event and returns the configured error.
func (m *MockEventHandler) HandleEvent(ctx context.Context, event *ProgressEvent) error {
	m.LastEvent = event
	m.HandledCount++
	return m.HandlerError
}
