package api

import (
	"errors"
	"net/http"

	"github.com/rafysite/faqreator/internal/config"
	"github.com/rafysite/faqreator/internal/domain"
	"github.com/rafysite/faqreator/internal/generation"
	"github.com/rafysite/faqreator/internal/service"
)

// Machine-readable error codes carried in error responses alongside the
// configured message templates.
const (
	CodeForbidden     = "forbidden"
	CodeInvalidCheck  = "invalid_check"
	CodeAPIError      = "api_error"
	CodeJSONError     = "json_error"
	CodeInternalError = "internal_error"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, service.ErrInvalidPost),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	// Upstream failures surface as server errors: the client did nothing wrong.
	case errors.Is(err, generation.ErrTransportFailure),
		errors.Is(err, generation.ErrParseFailure),
		errors.Is(err, generation.ErrSchemaViolation):
		return http.StatusInternalServerError

	default:
		return http.StatusInternalServerError
	}
}

// ErrorCode returns the machine-readable code for the error type.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return CodeForbidden

	case errors.Is(err, service.ErrInvalidPost),
		errors.Is(err, domain.ErrInvalidID):
		return CodeInvalidCheck

	case errors.Is(err, generation.ErrTransportFailure):
		return CodeAPIError

	case errors.Is(err, generation.ErrParseFailure),
		errors.Is(err, generation.ErrSchemaViolation):
		return CodeJSONError

	default:
		return CodeInternalError
	}
}

// GetSafeErrorMessage returns the configured user-facing message for the
// error type. Raw error strings never reach the client.
func GetSafeErrorMessage(err error, messages config.MessageConfig) string {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return "Invalid token."

	case errors.Is(err, service.ErrInvalidPost),
		errors.Is(err, domain.ErrInvalidID):
		return messages.InvalidCheck

	case errors.Is(err, generation.ErrTransportFailure):
		return messages.APIError

	case errors.Is(err, generation.ErrParseFailure),
		errors.Is(err, generation.ErrSchemaViolation):
		return messages.JSONError

	default:
		return "An unexpected error occurred"
	}
}
