package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafysite/faqreator/internal/service"
)

// mockScheduler returns a canned scheduling result.
type mockScheduler struct {
	result *service.ScheduleResult
	err    error
	calls  int
}

func (m *mockScheduler) ScheduleAll(ctx context.Context) (*service.ScheduleResult, error) {
	m.calls++
	return m.result, m.err
}

func TestScheduleFAQsSuccess(t *testing.T) {
	scheduler := &mockScheduler{result: &service.ScheduleResult{Scheduled: 3}}
	handler := NewScheduleHandler(scheduler, handlerMessages())

	req := httptest.NewRequest(http.MethodGet, "/schedule-faqs", nil)
	rec := httptest.NewRecorder()

	handler.ScheduleFAQs(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, scheduler.calls)

	assert.JSONEq(t, `{"scheduled":3}`, rec.Body.String())
}

func TestScheduleFAQsNoPosts(t *testing.T) {
	scheduler := &mockScheduler{result: &service.ScheduleResult{Message: "No posts found."}}
	handler := NewScheduleHandler(scheduler, handlerMessages())

	req := httptest.NewRequest(http.MethodGet, "/schedule-faqs", nil)
	rec := httptest.NewRecorder()

	handler.ScheduleFAQs(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	// The no-posts body is a bare message with no scheduled count.
	assert.JSONEq(t, `{"message":"No posts found."}`, rec.Body.String())
}

func TestScheduleFAQsFailure(t *testing.T) {
	scheduler := &mockScheduler{err: assert.AnError}
	handler := NewScheduleHandler(scheduler, handlerMessages())

	req := httptest.NewRequest(http.MethodGet, "/schedule-faqs", nil)
	rec := httptest.NewRecorder()

	handler.ScheduleFAQs(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
