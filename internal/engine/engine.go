// Package engine turns one inbound message into a reply: classify the
// payload, parse the structured contract, apply the category's persistence
// action and kick a background dashboard rebuild.
package engine

import (
	"context"
	"log/slog"

	"github.com/casamontes/mayordomo/internal/dashboard"
	"github.com/casamontes/mayordomo/internal/llm"
	"github.com/casamontes/mayordomo/internal/model"
	"github.com/casamontes/mayordomo/internal/service"
)

// Classifier produces the raw provider output for one payload.
type Classifier interface {
	Classify(ctx context.Context, payload model.MediaPayload) string
}

// Rebuilder triggers a best-effort dashboard regeneration.
type Rebuilder interface {
	TryRebuild(ctx context.Context) dashboard.Result
}

// Reply is what the transport sends back to the user.
type Reply struct {
	Text     string
	Category model.Category
}

// Engine is the per-message pipeline. Process never returns an error; every
// failure mode downstream degrades to some user-visible reply text.
type Engine struct {
	classifier Classifier
	store      service.Storage
	rebuilder  Rebuilder
	logger     *slog.Logger
}

// New wires the pipeline together.
func New(classifier Classifier, store service.Storage, rebuilder Rebuilder, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		classifier: classifier,
		store:      store,
		rebuilder:  rebuilder,
		logger:     logger,
	}
}

// Process runs the full pipeline for one message. Persistence happens before
// the reply is returned; the dashboard rebuild is fire-and-forget and must
// survive the request context, hence WithoutCancel.
func (e *Engine) Process(ctx context.Context, ownerID int64, payload model.MediaPayload) Reply {
	raw := e.classifier.Classify(ctx, payload)
	classification := llm.ParseClassification(raw)

	e.logger.Info("message classified",
		"owner_id", ownerID,
		"category", classification.Category)

	text, persisted := e.apply(ctx, ownerID, payload, classification)

	if persisted && e.rebuilder != nil {
		e.rebuilder.TryRebuild(context.WithoutCancel(ctx))
	}

	return Reply{Text: text, Category: classification.Category}
}
