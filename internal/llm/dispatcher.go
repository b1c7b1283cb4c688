package llm

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/casamontes/mayordomo/internal/model"
)

const defaultClassifyTimeout = 45 * time.Second

// Classifier routes one user payload to the configured providers. Text-only
// input cascades through the priority list; media routes straight to the
// multimodal provider with no fallback, because no other provider could honor
// the request.
//
// Classify never fails: every terminal state is a raw response string, canned
// if it has to be. One attempt per provider, no intra-provider retries.
type Classifier struct {
	logger     *slog.Logger
	multimodal Client
	clients    []Client
	timeout    time.Duration
}

// NewClassifier builds a dispatcher over clients in priority order. The first
// client flagged multimodal handles all media requests.
func NewClassifier(clients []Client, timeout time.Duration, logger *slog.Logger) *Classifier {
	if timeout <= 0 {
		timeout = defaultClassifyTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Classifier{
		clients: clients,
		timeout: timeout,
		logger:  logger,
	}
	for _, client := range clients {
		if client.SupportsMultimodal() {
			c.multimodal = client
			break
		}
	}
	return c
}

// Classify returns the raw provider output for one payload. The wall-clock
// timeout covers every cascaded attempt together.
func (c *Classifier) Classify(ctx context.Context, payload model.MediaPayload) string {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := AnalyzeRequest{
		SystemPrompt: SystemInstruction,
		Text:         payload.Text,
		ImageBytes:   payload.ImageBytes,
		AudioBytes:   payload.AudioBytes,
	}

	if payload.HasMedia() {
		return c.classifyMedia(ctx, req)
	}
	return c.classifyText(ctx, req)
}

func (c *Classifier) classifyMedia(ctx context.Context, req AnalyzeRequest) string {
	if c.multimodal == nil {
		c.logger.Warn("media received but no multimodal provider configured")
		return cannedResponse(MsgMediaFailed)
	}

	raw, err := c.multimodal.Analyze(ctx, req)
	if err != nil {
		if deadlineExceeded(ctx, err) {
			c.logger.Warn("multimodal classification timed out", "provider", c.multimodal.Name())
			return cannedResponse(MsgTimeout)
		}
		c.logger.Error("multimodal provider failed", "provider", c.multimodal.Name(), "error", err)
		return cannedResponse(MsgMediaFailed)
	}
	return raw
}

func (c *Classifier) classifyText(ctx context.Context, req AnalyzeRequest) string {
	for _, client := range c.clients {
		raw, err := client.Analyze(ctx, req)
		if err == nil {
			c.logger.Info("classification succeeded", "provider", client.Name())
			return raw
		}

		if deadlineExceeded(ctx, err) {
			c.logger.Warn("classification timed out", "provider", client.Name())
			return cannedResponse(MsgTimeout)
		}

		// An unconfigured provider is skipped exactly like a failed one.
		var provErr *ProviderError
		if errors.As(err, &provErr) && provErr.Kind == ErrAuthMissing {
			c.logger.Debug("provider not configured, skipping", "provider", client.Name())
			continue
		}
		c.logger.Error("provider failed, advancing cascade", "provider", client.Name(), "error", err)
	}

	c.logger.Warn("all providers exhausted, returning degraded response")
	return cannedResponse(MsgDegradedService)
}

// cannedResponse wraps a fixed user message in the same JSON contract the
// providers use, so the parser downstream has a single input shape.
func cannedResponse(message string) string {
	out, err := json.Marshal(map[string]any{
		"category": string(model.CategoryOther),
		"data":     map[string]any{},
		"response": message,
	})
	if err != nil {
		// Marshal of a flat string map cannot fail; keep the contract anyway.
		return `{"category":"OTHER","data":{},"response":""}`
	}
	return string(out)
}

func deadlineExceeded(ctx context.Context, err error) bool {
	return errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded)
}
