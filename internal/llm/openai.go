package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the OpenAI API root. Overridable for tests.
const DefaultBaseURL = "https://api.openai.com/v1"

// ErrTruncated indicates the completion hit the token limit and the returned
// content may be cut off mid-structure.
var ErrTruncated = fmt.Errorf("llm: completion truncated at token limit")

// Client is a thin OpenAI chat-completions client shared by every engine.
// One long-lived instance is constructed at startup and injected everywhere.
type Client struct {
	HTTPClient *http.Client
	APIKey     string
	Model      string
	BaseURL    string
}

// Request describes a single completion call.
type Request struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
	JSON        bool // request a json_object response
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionsRequest struct {
	Model               string          `json:"model"`
	Messages            []chatMessage   `json:"messages"`
	MaxCompletionTokens int             `json:"max_completion_tokens,omitempty"`
	Temperature         float64         `json:"temperature,omitempty"`
	ResponseFormat      *responseFormat `json:"response_format,omitempty"`
}

type chatChoice struct {
	Index        int         `json:"index"`
	FinishReason string      `json:"finish_reason"`
	Message      chatMessage `json:"message"`
}

type chatCompletionsResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
}

// NewClient constructs a Client for the given API key and model.
func NewClient(apiKey, model string) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
		APIKey:     apiKey,
		Model:      model,
		BaseURL:    DefaultBaseURL,
	}
}

// Complete performs one chat completion and returns the assistant content.
// A finish_reason of "length" returns the partial content with ErrTruncated.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("openai api key missing")
	}
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	endpoint := base + "/chat/completions"

	body := chatCompletionsRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         req.Temperature,
	}
	if req.JSON {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	reqBody, _ := json.Marshal(body)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("openai error: status=%d body=%s", resp.StatusCode, string(b))
	}
	var cr chatCompletionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("openai: empty choices")
	}
	choice := cr.Choices[0]
	content := strings.TrimSpace(choice.Message.Content)
	if choice.FinishReason == "length" {
		return content, ErrTruncated
	}
	return content, nil
}
