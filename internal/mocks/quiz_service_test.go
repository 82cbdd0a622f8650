package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/bibliobuddy/internal/domain"
	"github.com/phrazzld/bibliobuddy/internal/quiz"
	"github.com/phrazzld/bibliobuddy/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockQuizServiceDefaults(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := &MockQuizService{}

	sel, err := m.GetNextQuestion(ctx, domain.ModeSynonyms)
	require.NoError(t, err)
	assert.Equal(t, quiz.OutcomeNoWords, sel.Outcome)

	_, err = m.SubmitAnswer(ctx, domain.ModeSynonyms, uuid.New(), 0)
	assert.ErrorIs(t, err, quiz.ErrQuestionNotFound)

	_, err = m.WordDetails(ctx, "abate")
	assert.ErrorIs(t, err, quiz.ErrWordNotFound)

	bundle, err := m.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.BundleVersion, bundle.Version)

	assert.Equal(t, 1, m.CallCount("GetNextQuestion"))
	assert.Equal(t, 0, m.CallCount("ResetMode"))
}

func TestMockQuizServiceCustomBehavior(t *testing.T) {
	t.Parallel()

	m := &MockQuizService{
		ResetModeFn: func(_ context.Context, mode domain.Mode) error {
			if mode == domain.ModeFillInBlank {
				return store.ErrDeleteFailed
			}
			return nil
		},
	}

	assert.NoError(t, m.ResetMode(context.Background(), domain.ModeDefinitions))
	assert.ErrorIs(t, m.ResetMode(context.Background(), domain.ModeFillInBlank), store.ErrDeleteFailed)
	assert.Equal(t, 2, m.CallCount("ResetMode"))
}

func TestMockKVStoreDefaults(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := &MockKVStore{}

	_, err := m.Get(ctx, "biblioBuddy.v1.fitb")
	assert.ErrorIs(t, err, store.ErrNotFound)

	data, err := m.List(ctx, "biblioBuddy.v1")
	require.NoError(t, err)
	assert.Empty(t, data)
}
