package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// geminiClient implements Client for the Google Generative Language REST API.
// It is the only provider that accepts image and audio input.
type geminiClient struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	model       string
	temperature float64
}

// NewGeminiClient creates the tertiary, multimodal provider.
func NewGeminiClient(apiKey, model string) Client {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &geminiClient{
		baseURL:     geminiBaseURL,
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

func (c *geminiClient) Name() string { return "gemini" }

func (c *geminiClient) SupportsMultimodal() bool { return true }

// Analyze sends one generateContent request. Image bytes are sent as JPEG and
// audio bytes as OGG, matching what the chat transport hands over.
func (c *geminiClient) Analyze(ctx context.Context, req AnalyzeRequest) (string, error) {
	if c.apiKey == "" {
		return "", newProviderError(c.Name(), ErrAuthMissing, fmt.Errorf("API key not configured"))
	}

	parts := make([]geminiPart, 0, 3)
	if req.Text != "" {
		parts = append(parts, geminiPart{Text: req.Text})
	}
	if len(req.ImageBytes) > 0 {
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{
			MimeType: "image/jpeg",
			Data:     base64.StdEncoding.EncodeToString(req.ImageBytes),
		}})
	}
	if len(req.AudioBytes) > 0 {
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{
			MimeType: "audio/ogg",
			Data:     base64.StdEncoding.EncodeToString(req.AudioBytes),
		}})
	}

	requestBody := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: req.SystemPrompt}}},
		Contents:          []geminiContent{{Parts: parts}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:      c.temperature,
			ResponseMimeType: "application/json",
		},
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", newProviderError(c.Name(), ErrTransport, fmt.Errorf("failed to marshal request: %w", err))
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(jsonBody)))
	if err != nil {
		return "", newProviderError(c.Name(), ErrTransport, fmt.Errorf("failed to create request: %w", err))
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", newProviderError(c.Name(), ErrTransport, fmt.Errorf("request failed: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newProviderError(c.Name(), ErrTransport, fmt.Errorf("failed to read response: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", newProviderError(c.Name(), ErrRateLimited, fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(body)))
	case resp.StatusCode != http.StatusOK:
		return "", newProviderError(c.Name(), ErrTransport, fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(body)))
	}

	var response geminiResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", newProviderError(c.Name(), ErrTransport, fmt.Errorf("failed to parse response: %w", err))
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", newProviderError(c.Name(), ErrTransport, fmt.Errorf("no candidates in response"))
	}

	return response.Candidates[0].Content.Parts[0].Text, nil
}

type geminiRequest struct {
	SystemInstruction *geminiContent         `json:"system_instruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
	Text       string            `json:"text,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string  `json:"response_mime_type"`
	Temperature      float64 `json:"temperature"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}
