package api

import (
	"context"
	"net/http"

	"github.com/rafysite/faqreator/internal/api/shared"
	"github.com/rafysite/faqreator/internal/config"
	"github.com/rafysite/faqreator/internal/platform/logger"
	"github.com/rafysite/faqreator/internal/service"
)

// Scheduler defines the batch scheduling operation the handler needs.
// Satisfied by service.ScheduleService.
type Scheduler interface {
	ScheduleAll(ctx context.Context) (*service.ScheduleResult, error)
}

// ScheduleHandler serves the batch scheduling endpoint.
//
// The endpoint is deliberately unauthenticated, mirroring the upstream
// contract; operators are expected to shield it at the network layer.
type ScheduleHandler struct {
	scheduler Scheduler
	messages  config.MessageConfig
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduler Scheduler, messages config.MessageConfig) *ScheduleHandler {
	return &ScheduleHandler{
		scheduler: scheduler,
		messages:  messages,
	}
}

// ScheduleFAQs handles GET /schedule-faqs. Every published source post gets
// one generation job; consecutive jobs are spaced by the configured interval.
func (h *ScheduleHandler) ScheduleFAQs(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	result, err := h.scheduler.ScheduleAll(r.Context())
	if err != nil {
		log.Error("batch scheduling failed", "error", err)
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			CodeInternalError, "An unexpected error occurred", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
