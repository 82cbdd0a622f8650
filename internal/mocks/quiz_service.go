package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/bibliobuddy/internal/domain"
	"github.com/phrazzld/bibliobuddy/internal/quiz"
	"github.com/phrazzld/bibliobuddy/internal/store"
)

// MockQuizService implements quiz.Service for testing.
type MockQuizService struct {
	ModesFn             func() []quiz.ModeInfo
	GetNextQuestionFn   func(ctx context.Context, mode domain.Mode) (*quiz.Selection, error)
	SubmitAnswerFn      func(ctx context.Context, mode domain.Mode, questionID uuid.UUID, optionIndex int) (*quiz.AnswerResult, error)
	GetStatsFn          func(ctx context.Context, mode domain.Mode) (*quiz.Stats, error)
	SetReviewMasteredFn func(ctx context.Context, mode domain.Mode, enabled bool) (*quiz.Stats, error)
	ResetModeFn         func(ctx context.Context, mode domain.Mode) error
	SnapshotFn          func(ctx context.Context, mode domain.Mode) (*quiz.Snapshot, error)
	WordDetailsFn       func(ctx context.Context, word string) (*quiz.WordDetails, error)
	ExportFn            func(ctx context.Context) (*store.Bundle, error)
	ImportFn            func(ctx context.Context, raw []byte) (*store.ImportReport, error)

	mu    sync.Mutex
	calls map[string]int
}

var _ quiz.Service = (*MockQuizService)(nil)

func (m *MockQuizService) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[name]++
}

// CallCount returns how often the named method was called.
func (m *MockQuizService) CallCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

// Modes implements quiz.Service.
func (m *MockQuizService) Modes() []quiz.ModeInfo {
	m.record("Modes")
	if m.ModesFn != nil {
		return m.ModesFn()
	}
	return nil
}

// GetNextQuestion implements quiz.Service.
func (m *MockQuizService) GetNextQuestion(ctx context.Context, mode domain.Mode) (*quiz.Selection, error) {
	m.record("GetNextQuestion")
	if m.GetNextQuestionFn != nil {
		return m.GetNextQuestionFn(ctx, mode)
	}
	return &quiz.Selection{Outcome: quiz.OutcomeNoWords, Stats: quiz.Stats{Mode: mode}}, nil
}

// SubmitAnswer implements quiz.Service.
func (m *MockQuizService) SubmitAnswer(
	ctx context.Context,
	mode domain.Mode,
	questionID uuid.UUID,
	optionIndex int,
) (*quiz.AnswerResult, error) {
	m.record("SubmitAnswer")
	if m.SubmitAnswerFn != nil {
		return m.SubmitAnswerFn(ctx, mode, questionID, optionIndex)
	}
	return nil, quiz.ErrQuestionNotFound
}

// GetStats implements quiz.Service.
func (m *MockQuizService) GetStats(ctx context.Context, mode domain.Mode) (*quiz.Stats, error) {
	m.record("GetStats")
	if m.GetStatsFn != nil {
		return m.GetStatsFn(ctx, mode)
	}
	return &quiz.Stats{Mode: mode}, nil
}

// SetReviewMastered implements quiz.Service.
func (m *MockQuizService) SetReviewMastered(ctx context.Context, mode domain.Mode, enabled bool) (*quiz.Stats, error) {
	m.record("SetReviewMastered")
	if m.SetReviewMasteredFn != nil {
		return m.SetReviewMasteredFn(ctx, mode, enabled)
	}
	return &quiz.Stats{Mode: mode, ReviewMastered: enabled}, nil
}

// ResetMode implements quiz.Service.
func (m *MockQuizService) ResetMode(ctx context.Context, mode domain.Mode) error {
	m.record("ResetMode")
	if m.ResetModeFn != nil {
		return m.ResetModeFn(ctx, mode)
	}
	return nil
}

// Snapshot implements quiz.Service.
func (m *MockQuizService) Snapshot(ctx context.Context, mode domain.Mode) (*quiz.Snapshot, error) {
	m.record("Snapshot")
	if m.SnapshotFn != nil {
		return m.SnapshotFn(ctx, mode)
	}
	return &quiz.Snapshot{Mode: mode}, nil
}

// WordDetails implements quiz.Service.
func (m *MockQuizService) WordDetails(ctx context.Context, word string) (*quiz.WordDetails, error) {
	m.record("WordDetails")
	if m.WordDetailsFn != nil {
		return m.WordDetailsFn(ctx, word)
	}
	return nil, quiz.ErrWordNotFound
}

// Export implements quiz.Service.
func (m *MockQuizService) Export(ctx context.Context) (*store.Bundle, error) {
	m.record("Export")
	if m.ExportFn != nil {
		return m.ExportFn(ctx)
	}
	return &store.Bundle{Version: store.BundleVersion, Data: map[string]string{}}, nil
}

// Import implements quiz.Service.
func (m *MockQuizService) Import(ctx context.Context, raw []byte) (*store.ImportReport, error) {
	m.record("Import")
	if m.ImportFn != nil {
		return m.ImportFn(ctx, raw)
	}
	return &store.ImportReport{Imported: []string{}, Skipped: []string{}}, nil
}
