package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// LLMClient talks to an OpenAI-compatible chat-completions endpoint.
// It is rate limited process-wide and retries once-per-backoff on 429s.
type LLMClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	limiter *rate.Limiter
}

func NewLLMClient(baseURL, apiKey, model string, requestsPerMinute int) *LLMClient {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 20
	}
	return &LLMClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 1),
	}
}

// Model returns the configured model name.
func (c *LLMClient) Model() string { return c.model }

// Configured reports whether an API key is present.
func (c *LLMClient) Configured() bool { return c.apiKey != "" }

// Request body for the chat completions endpoint
type completionRequest struct {
	Model     string              `json:"model"`
	Messages  []completionMessage `json:"messages"`
	MaxTokens int                 `json:"max_tokens"`
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Response from the chat completions endpoint
type completionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

const (
	completionMaxRetries = 3
	completionBaseDelay  = 2 * time.Second
)

// Complete sends one prompt and returns the first choice's content.
func (c *LLMClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("completion API key not configured")
	}

	var lastErr error
	for attempt := 0; attempt <= completionMaxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}

		content, retryable, err := c.complete(ctx, prompt)
		if err == nil {
			return content, nil
		}
		lastErr = err
		if !retryable || attempt == completionMaxRetries {
			return "", err
		}

		// Exponential backoff before hitting the endpoint again
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(completionBaseDelay * time.Duration(1<<attempt)):
		}
	}
	return "", lastErr
}

func (c *LLMClient) complete(ctx context.Context, prompt string) (content string, retryable bool, err error) {
	reqBody := completionRequest{
		Model: c.model,
		Messages: []completionMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens: 2000,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", false, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("failed to call completion API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", true, fmt.Errorf("completion API rate limited (status 429)")
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", false, fmt.Errorf("completion API error (status %d): %s", resp.StatusCode, string(body))
	}

	var completion completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", false, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", false, fmt.Errorf("no response choices from completion API")
	}

	return completion.Choices[0].Message.Content, false, nil
}
