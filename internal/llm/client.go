package llm

import (
	"context"
	"fmt"
)

// AnalyzeRequest carries one user turn to a provider. Image and audio bytes
// are only honored by multimodal providers.
type AnalyzeRequest struct {
	SystemPrompt string
	Text         string
	ImageBytes   []byte
	AudioBytes   []byte
}

// HasMedia reports whether the request carries non-text input.
func (r AnalyzeRequest) HasMedia() bool {
	return len(r.ImageBytes) > 0 || len(r.AudioBytes) > 0
}

// Client defines the interface for AI providers. Implementations must not
// mutate shared state; their only side effect is the outbound call.
type Client interface {
	// Name identifies the provider in logs.
	Name() string
	// SupportsMultimodal reports whether the provider accepts image/audio input.
	SupportsMultimodal() bool
	// Analyze sends one request and returns the raw response text.
	Analyze(ctx context.Context, req AnalyzeRequest) (string, error)
}

// ErrorKind classifies provider failures for logging and tests. Every kind is
// handled the same way by the dispatcher: log and advance the cascade.
type ErrorKind string

// Provider error kinds.
const (
	ErrAuthMissing      ErrorKind = "AUTH_MISSING"
	ErrRateLimited      ErrorKind = "RATE_LIMITED"
	ErrTransport        ErrorKind = "TRANSPORT"
	ErrUnsupportedInput ErrorKind = "UNSUPPORTED_INPUT"
)

// ProviderError is the failure type every adapter returns. It never escapes
// the dispatcher.
type ProviderError struct {
	Err      error
	Provider string
	Kind     ErrorKind
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Kind)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func newProviderError(provider string, kind ErrorKind, err error) *ProviderError {
	return &ProviderError{Provider: provider, Kind: kind, Err: err}
}
