package openai

// chatMessage is one entry of the request conversation.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// responseFormat hints the API at JSON-object-shaped output.
type responseFormat struct {
	Type string `json:"type"`
}

// chatRequest is the wire body of a chat completions call.
type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens"`
	ResponseFormat responseFormat `json:"response_format"`
}

// chatResponse is the subset of the completions envelope we consume:
// the first choice's message content, which is itself expected to be a
// JSON-encoded object.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
