package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rafysite/faqreator/internal/config"
	"github.com/rafysite/faqreator/internal/generation"
)

// completionsPath is the chat completions endpoint under the API base URL.
const completionsPath = "/v1/chat/completions"

// Client implements the generation.Generator interface using an
// OpenAI-compatible chat completions API.
type Client struct {
	logger     *slog.Logger
	config     config.OpenAIConfig
	httpClient *http.Client
}

// Ensure Client implements generation.Generator
var _ generation.Generator = (*Client)(nil)

// NewClient creates a new chat completions client from the given configuration.
// The request timeout is enforced by the underlying HTTP client.
func NewClient(logger *slog.Logger, cfg config.OpenAIConfig) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("%w: timeout must be positive", generation.ErrInvalidConfig)
	}

	return &Client{
		logger: logger.With(slog.String("component", "openai_client")),
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// Generate performs exactly one chat completions call and returns the decoded
// model content. An empty API key is sent as-is; the upstream auth rejection
// then surfaces as a transport failure, matching the documented contract.
func (c *Client) Generate(ctx context.Context, req generation.Request) (map[string]any, error) {
	body := chatRequest{
		Model: req.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		Temperature:    req.Temperature,
		MaxTokens:      req.MaxTokens,
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	url := strings.TrimSuffix(c.config.BaseURL, "/") + completionsPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	c.logger.DebugContext(ctx, "calling chat completions API",
		slog.String("model", req.Model),
		slog.Int("max_tokens", req.MaxTokens))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.ErrorContext(ctx, "chat completions call failed",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", generation.ErrTransportFailure, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.WarnContext(ctx, "failed to close response body",
				slog.String("error", closeErr.Error()))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.ErrorContext(ctx, "chat completions API returned error status",
			slog.Int("status_code", resp.StatusCode))
		return nil, fmt.Errorf("%w: unexpected status %d", generation.ErrTransportFailure, resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %v", generation.ErrTransportFailure, err)
	}

	var envelope chatResponse
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decoding envelope: %v", generation.ErrParseFailure, err)
	}

	if len(envelope.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", generation.ErrParseFailure)
	}

	content := envelope.Choices[0].Message.Content

	var decoded map[string]any
	if err := json.Unmarshal([]byte(content), &decoded); err != nil {
		c.logger.ErrorContext(ctx, "model content is not valid JSON",
			slog.Int("content_length", len(content)))
		return nil, fmt.Errorf("%w: decoding model content: %v", generation.ErrParseFailure, err)
	}

	c.logger.DebugContext(ctx, "chat completions call succeeded",
		slog.Int("content_length", len(content)))

	return decoded, nil
}
