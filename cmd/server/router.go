package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rafysite/faqreator/internal/api"
	apiMiddleware "github.com/rafysite/faqreator/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	faqHandler := api.NewFAQHandler(app.faqService, app.config.Auth.Token, app.config.Messages)
	scheduleHandler := api.NewScheduleHandler(app.scheduleService, app.config.Messages)

	r.Route("/faqreator/v1", func(r chi.Router) {
		// Token-protected generation endpoint
		r.Get("/generate-faqs", faqHandler.GenerateFAQs)

		// Unauthenticated batch scheduling endpoint
		r.Get("/schedule-faqs", scheduleHandler.ScheduleFAQs)

		// Public FAQ listing
		r.Get("/faqs", faqHandler.ListFAQs)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
