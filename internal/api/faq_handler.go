package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/rafysite/faqreator/internal/api/shared"
	"github.com/rafysite/faqreator/internal/config"
	"github.com/rafysite/faqreator/internal/domain"
	"github.com/rafysite/faqreator/internal/platform/logger"
)

// FAQGenerator defines the generation and read operations the handler needs.
// Satisfied by service.FAQService.
type FAQGenerator interface {
	GenerateForPost(ctx context.Context, postID int64) ([]domain.CreatedFAQ, error)
	ListFAQsForPost(ctx context.Context, postID int64) ([]*domain.Post, error)
}

// GenerateFAQsResponse is the success body of the generation endpoint.
type GenerateFAQsResponse struct {
	FAQs []domain.CreatedFAQ `json:"faqs"`
}

// FAQItem is one question/answer pair in the FAQ listing.
type FAQItem struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ListFAQsResponse is the body of the FAQ listing endpoint. Message is set
// when no FAQ entries exist for the post.
type ListFAQsResponse struct {
	FAQs    []FAQItem `json:"faqs"`
	Message string    `json:"message,omitempty"`
}

// FAQHandler serves the generation and listing endpoints.
type FAQHandler struct {
	faqService FAQGenerator
	authToken  string
	messages   config.MessageConfig
}

// NewFAQHandler creates a new FAQHandler with the given dependencies.
func NewFAQHandler(faqService FAQGenerator, authToken string, messages config.MessageConfig) *FAQHandler {
	return &FAQHandler{
		faqService: faqService,
		authToken:  authToken,
		messages:   messages,
	}
}

// GenerateFAQs handles GET /generate-faqs?post_id=<id>&token=<token>.
// The token is checked before any other work; a mismatch forbids the request
// without touching the store or the upstream API.
func (h *FAQHandler) GenerateFAQs(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if r.URL.Query().Get("token") != h.authToken {
		log.Warn("generation request with invalid token")
		respondWithMappedError(w, r, domain.ErrForbidden, h.messages)
		return
	}

	postID, err := parsePostID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, CodeInvalidCheck, h.messages.InvalidCheck)
		return
	}

	created, err := h.faqService.GenerateForPost(r.Context(), postID)
	if err != nil {
		respondWithMappedError(w, r, err, h.messages)
		return
	}

	if created == nil {
		created = []domain.CreatedFAQ{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GenerateFAQsResponse{FAQs: created})
}

// ListFAQs handles GET /faqs?post_id=<id>, the public read surface listing
// the FAQ entries linked to a source post.
func (h *FAQHandler) ListFAQs(w http.ResponseWriter, r *http.Request) {
	postID, err := parsePostID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, CodeInvalidCheck, h.messages.InvalidCheck)
		return
	}

	posts, err := h.faqService.ListFAQsForPost(r.Context(), postID)
	if err != nil {
		respondWithMappedError(w, r, err, h.messages)
		return
	}

	items := make([]FAQItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, FAQItem{
			ID:       p.ID,
			Question: p.Title,
			Answer:   p.Body,
		})
	}

	resp := ListFAQsResponse{FAQs: items}
	if len(items) == 0 {
		resp.Message = h.messages.NoFAQsFound
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// parsePostID extracts and validates the post_id query parameter.
func parsePostID(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("post_id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidID
	}

	return id, nil
}

// respondWithMappedError translates a service error into the mapped status,
// code and configured message.
func respondWithMappedError(w http.ResponseWriter, r *http.Request, err error, messages config.MessageConfig) {
	shared.RespondWithErrorAndLog(w, r,
		MapErrorToStatusCode(err),
		ErrorCode(err),
		GetSafeErrorMessage(err, messages),
		err)
}
