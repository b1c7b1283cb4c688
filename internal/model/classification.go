// Package model defines the core domain models used throughout the application.
package model

// Classification is the parsed result of one provider response. It is built
// once by the contract parser, is immutable afterwards, and is consumed
// exactly once by the action dispatcher. It is never persisted itself; only
// the records derived from it are.
type Classification struct {
	Fields       map[string]any
	Category     Category
	Confirmation string
}

// MediaPayload carries the raw user input for the duration of a single
// classification call. It is never persisted.
type MediaPayload struct {
	Text       string
	ImageBytes []byte
	AudioBytes []byte
}

// HasMedia reports whether the payload carries an image or a voice note,
// which forces routing to the multimodal provider.
func (p MediaPayload) HasMedia() bool {
	return len(p.ImageBytes) > 0 || len(p.AudioBytes) > 0
}
