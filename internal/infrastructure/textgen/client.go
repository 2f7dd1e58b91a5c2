// Package textgen implements the text-generation port against an
// OpenAI-compatible chat completions API.
package textgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrEmptyCompletion is returned when the API responds without any
// usable choice.
var ErrEmptyCompletion = errors.New("textgen: empty completion")

// Client calls an OpenAI-compatible chat completions endpoint.
type Client struct {
	http  *resty.Client
	model string
}

// NewClient creates a Client. Transient failures are retried twice with
// backoff; every call is bounded by the client timeout.
func NewClient(baseURL, apiKey, model string) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() == 429 || r.StatusCode() >= 500
		})
	return &Client{http: httpClient, model: model}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GenerateText returns the completion for the given system and user
// prompts.
func (c *Client) GenerateText(ctx context.Context, system, prompt string) (string, error) {
	return c.complete(ctx, system, prompt, nil)
}

// GenerateJSON asks for a JSON object completion and unmarshals it into
// the target. A malformed completion is returned as an error for the
// caller to degrade on.
func (c *Client) GenerateJSON(ctx context.Context, system, prompt string, into any) error {
	raw, err := c.complete(ctx, system, prompt, &responseFormat{Type: "json_object"})
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), into); err != nil {
		return fmt.Errorf("textgen: unparsable completion: %w", err)
	}
	return nil
}

func (c *Client) complete(ctx context.Context, system, prompt string, format *responseFormat) (string, error) {
	var result chatResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model: c.model,
			Messages: []chatMessage{
				{Role: "system", Content: system},
				{Role: "user", Content: prompt},
			},
			Temperature:    0.7,
			ResponseFormat: format,
		}).
		SetResult(&result).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("textgen: request failed: %w", err)
	}
	if resp.IsError() {
		if result.Error != nil {
			return "", fmt.Errorf("textgen: api error %d: %s", resp.StatusCode(), result.Error.Message)
		}
		return "", fmt.Errorf("textgen: api error %d", resp.StatusCode())
	}
	if len(result.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	content := strings.TrimSpace(result.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyCompletion
	}
	return content, nil
}
