package generation

import "context"

// Request carries everything needed for one generation call.
// It is built fresh per job and never persisted.
type Request struct {
	// Model is the upstream model identifier.
	Model string

	// SystemPrompt fixes the expected output JSON shape.
	SystemPrompt string

	// UserPrompt is the built instruction for this post.
	UserPrompt string

	// Temperature controls output randomness.
	Temperature float64

	// MaxTokens caps the generated output length.
	MaxTokens int
}

// Generator defines the boundary between the application core and the
// external language-model service.
type Generator interface {
	// Generate performs exactly one upstream call and returns the decoded
	// model content as a generic JSON object.
	//
	// Returns ErrTransportFailure for network, timeout and non-2xx failures,
	// and ErrParseFailure when the envelope or the embedded content is not
	// valid JSON. No retries are attempted; retry policy, if any, belongs to
	// the scheduling layer.
	Generate(ctx context.Context, req Request) (map[string]any, error)
}
