package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody bounds how much of an error response is kept
const maxErrorBody = 2048

// ChatClient speaks the OpenAI-compatible chat-completions protocol (Groq, OpenAI).
type ChatClient struct {
	config     ProviderConfig
	opts       Options
	httpClient *http.Client
}

// NewChatClient creates a chat-completions client. Timeouts come from the caller's context.
func NewChatClient(pc ProviderConfig, opts Options) *ChatClient {
	return &ChatClient{
		config:     pc,
		opts:       opts,
		httpClient: &http.Client{},
	}
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete posts the messages and extracts choices[0].message.content
func (c *ChatClient) Complete(ctx context.Context, messages []Message) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.config.Model,
		Messages:    messages,
		MaxTokens:   c.opts.MaxTokens,
		Temperature: c.opts.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &StatusError{Provider: c.config.Provider, Status: resp.StatusCode, Body: string(errBody)}
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &ResponseError{Message: "failed to decode response", Cause: err}
	}
	return extractChatContent(&result)
}

// extractChatContent pulls the first choice's text; anything else is an extraction failure
func extractChatContent(resp *chatResponse) (string, error) {
	if len(resp.Choices) == 0 {
		return "", &ResponseError{Message: "no choices in response"}
	}
	content := resp.Choices[0].Message.Content
	if content == nil {
		return "", &ResponseError{Message: "no message content in first choice"}
	}
	text := CleanCompletion(*content)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

// Provider implements Client
func (c *ChatClient) Provider() Provider {
	return c.config.Provider
}

// Close implements Client
func (c *ChatClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
