package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrTransportFailure is returned when the upstream API cannot be reached,
	// times out, or answers with a non-2xx status.
	ErrTransportFailure = errors.New("API request failed")

	// ErrParseFailure is returned when the upstream payload, or the model
	// content embedded in it, cannot be decoded as JSON.
	ErrParseFailure = errors.New("invalid JSON response")

	// ErrSchemaViolation is returned when the decoded content does not carry
	// the expected question list shape.
	ErrSchemaViolation = errors.New("response does not match expected schema")

	// ErrInvalidConfig is returned when the generator configuration is invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
