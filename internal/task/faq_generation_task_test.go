package task

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafysite/faqreator/internal/domain"
)

// mockFAQService records calls and returns canned results.
type mockFAQService struct {
	calls   []int64
	created []domain.CreatedFAQ
	err     error
}

func (m *mockFAQService) GenerateForPost(ctx context.Context, postID int64) ([]domain.CreatedFAQ, error) {
	m.calls = append(m.calls, postID)
	return m.created, m.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewFAQGenerationTaskValidation(t *testing.T) {
	svc := &mockFAQService{}

	_, err := NewFAQGenerationTask(42, time.Time{}, nil, testLogger())
	assert.ErrorIs(t, err, ErrNilFAQService)

	_, err = NewFAQGenerationTask(42, time.Time{}, svc, nil)
	assert.ErrorIs(t, err, ErrNilLogger)

	_, err = NewFAQGenerationTask(0, time.Time{}, svc, testLogger())
	assert.ErrorIs(t, err, ErrInvalidPostID)

	task, err := NewFAQGenerationTask(42, time.Time{}, svc, testLogger())
	require.NoError(t, err)
	assert.Equal(t, TaskTypeFAQGeneration, task.Type())
	assert.Equal(t, TaskStatusPending, task.Status())
}

func TestFAQGenerationTaskPayload(t *testing.T) {
	task, err := NewFAQGenerationTask(42, time.Time{}, &mockFAQService{}, testLogger())
	require.NoError(t, err)

	var payload struct {
		PostID int64 `json:"post_id"`
	}
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, int64(42), payload.PostID)
}

func TestFAQGenerationTaskExecuteDelegatesToService(t *testing.T) {
	svc := &mockFAQService{
		created: []domain.CreatedFAQ{{QuestionID: 7, Title: "Como funciona?"}},
	}
	task, err := NewFAQGenerationTask(42, time.Time{}, svc, testLogger())
	require.NoError(t, err)

	require.NoError(t, task.Execute(context.Background()))
	assert.Equal(t, []int64{42}, svc.calls)
	assert.Equal(t, TaskStatusCompleted, task.Status())
}

func TestFAQGenerationTaskExecuteFailure(t *testing.T) {
	svc := &mockFAQService{err: assert.AnError}
	task, err := NewFAQGenerationTask(42, time.Time{}, svc, testLogger())
	require.NoError(t, err)

	err = task.Execute(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, TaskStatusFailed, task.Status())
}

func TestFAQGenerationTaskExecuteCancelledContext(t *testing.T) {
	svc := &mockFAQService{}
	task, err := NewFAQGenerationTask(42, time.Time{}, svc, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = task.Execute(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, svc.calls)
}

func TestFAQGenerationTaskFactoryResolveTask(t *testing.T) {
	svc := &mockFAQService{}
	factory := NewFAQGenerationTaskFactory(svc, testLogger())

	runAt := time.Now().Add(time.Minute).Truncate(time.Second)
	original, err := factory.CreateTask(42, runAt)
	require.NoError(t, err)

	record := &TaskRecord{
		ID:      original.ID(),
		Type:    original.Type(),
		Payload: original.Payload(),
		Status:  TaskStatusPending,
		RunAt:   runAt,
	}

	resolved, err := factory.ResolveTask(record)
	require.NoError(t, err)
	assert.Equal(t, original.ID(), resolved.ID())
	assert.Equal(t, runAt, resolved.RunAt())

	require.NoError(t, resolved.Execute(context.Background()))
	assert.Equal(t, []int64{42}, svc.calls)
}

func TestFAQGenerationTaskFactoryRejectsUnknownType(t *testing.T) {
	factory := NewFAQGenerationTaskFactory(&mockFAQService{}, testLogger())

	_, err := factory.ResolveTask(&TaskRecord{
		ID:      uuid.New(),
		Type:    "unknown_type",
		Payload: []byte(`{}`),
	})
	assert.Error(t, err)
}

func TestFAQGenerationTaskFactoryRejectsMalformedPayload(t *testing.T) {
	factory := NewFAQGenerationTaskFactory(&mockFAQService{}, testLogger())

	_, err := factory.ResolveTask(&TaskRecord{
		ID:      uuid.New(),
		Type:    TaskTypeFAQGeneration,
		Payload: []byte(`not json`),
	})
	assert.Error(t, err)
}
