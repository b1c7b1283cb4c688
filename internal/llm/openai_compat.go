package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// chatClient implements Client for OpenAI-compatible chat completion APIs.
// Both OpenRouter and Groq speak this dialect; neither accepts media.
type chatClient struct {
	httpClient  *http.Client
	name        string
	baseURL     string
	apiKey      string
	model       string
	temperature float64
}

func newChatClient(name, baseURL, apiKey, model string) *chatClient {
	return &chatClient{
		name:        name,
		baseURL:     baseURL,
		apiKey:      apiKey,
		model:       model,
		temperature: 0.4,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (c *chatClient) Name() string { return c.name }

func (c *chatClient) SupportsMultimodal() bool { return false }

// Analyze sends one chat completion request. An empty API key means the
// provider was never configured; the dispatcher treats that like any other
// failure and advances.
func (c *chatClient) Analyze(ctx context.Context, req AnalyzeRequest) (string, error) {
	if c.apiKey == "" {
		return "", newProviderError(c.name, ErrAuthMissing, fmt.Errorf("API key not configured"))
	}
	if req.HasMedia() {
		return "", newProviderError(c.name, ErrUnsupportedInput, fmt.Errorf("text-only provider given media"))
	}

	requestBody := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": req.SystemPrompt},
			{"role": "user", "content": req.Text},
		},
		"temperature":     c.temperature,
		"response_format": map[string]string{"type": "json_object"},
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", newProviderError(c.name, ErrTransport, fmt.Errorf("failed to marshal request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", strings.NewReader(string(jsonBody)))
	if err != nil {
		return "", newProviderError(c.name, ErrTransport, fmt.Errorf("failed to create request: %w", err))
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", newProviderError(c.name, ErrTransport, fmt.Errorf("request failed: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newProviderError(c.name, ErrTransport, fmt.Errorf("failed to read response: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", newProviderError(c.name, ErrRateLimited, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body)))
	case resp.StatusCode != http.StatusOK:
		return "", newProviderError(c.name, ErrTransport, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body)))
	}

	var response chatCompletionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", newProviderError(c.name, ErrTransport, fmt.Errorf("failed to parse response: %w", err))
	}

	if len(response.Choices) == 0 {
		return "", newProviderError(c.name, ErrTransport, fmt.Errorf("no completion choices returned"))
	}

	return response.Choices[0].Message.Content, nil
}

// chatCompletionResponse represents the OpenAI-compatible response structure.
type chatCompletionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
		Index        int    `json:"index"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Created int64 `json:"created"`
}
