package summarize

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Summarizer produces a bounded-length abstractive summary of a text span.
type Summarizer interface {
	Summarize(ctx context.Context, text string, minWords, maxWords int) (string, error)
}

// Client drives an OpenAI-compatible chat-completions server (LM Studio,
// vLLM, or the hosted API) as the summarization capability.
type Client struct {
	client *openai.Client
	model  string
	stats  *Stats
}

// NewClient builds a summarization client against baseURL. Local model
// servers ignore the API key, so a placeholder is fine.
func NewClient(baseURL, model string, timeout time.Duration, stats *Stats) *Client {
	cfg := openai.DefaultConfig("not-needed")
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		stats:  stats,
	}
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Summarize asks the model for a summary of text between minWords and
// maxWords long. Rate-limit and server errors come back as *RetryableError.
func (c *Client) Summarize(ctx context.Context, text string, minWords, maxWords int) (string, error) {
	prompt := fmt.Sprintf(
		"Summarize the following text in %d to %d words. Respond with the summary only, no preamble.\n\n%s",
		minWords, maxWords, text,
	)

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0,
	})
	if c.stats != nil {
		c.stats.Record(time.Since(start).Milliseconds())
	}
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) &&
			(apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= 500) {
			return "", &RetryableError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
		}
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
