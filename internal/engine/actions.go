package engine

import (
	"context"

	"github.com/casamontes/mayordomo/internal/model"
)

// Per-branch persistence failure replies. Each category reports its own
// message so the user knows which kind of record was lost.
const (
	msgExpenseSaveFailed = "Error al guardar el gasto. Por favor, intenta de nuevo."
	msgTaskSaveFailed    = "Error al guardar la tarea. Por favor, intenta de nuevo."
	msgNoteSaveFailed    = "Error al guardar la nota. Por favor, intenta de nuevo."
)

// Defaults applied when the provider omits a field.
const (
	defaultDescription = "No description"
	defaultCurrency    = "USD"
)

// apply runs the persistence action for the classified category and returns
// the reply text plus whether a record was written. Branches are
// fault-isolated: a failed insert turns into that branch's failure message
// and never affects another message's action. PLANNING and OTHER are
// reply-only.
func (e *Engine) apply(ctx context.Context, ownerID int64, payload model.MediaPayload, c model.Classification) (string, bool) {
	if !c.Category.Persistable() {
		return c.Confirmation, false
	}

	switch c.Category {
	case model.CategoryExpense:
		return e.applyExpense(ctx, ownerID, c)
	case model.CategoryTask:
		return e.applyTask(ctx, ownerID, c)
	case model.CategoryNote:
		return e.applyNote(ctx, ownerID, payload, c)
	default:
		return c.Confirmation, false
	}
}

func (e *Engine) applyExpense(ctx context.Context, ownerID int64, c model.Classification) (string, bool) {
	description, ok := stringField(c.Fields, descriptionKeys)
	if !ok {
		description = defaultDescription
	}
	currency, ok := stringField(c.Fields, currencyKeys)
	if !ok {
		currency = defaultCurrency
	}

	record := &model.ExpenseRecord{
		OwnerID:     ownerID,
		Amount:      amountField(c.Fields),
		Description: description,
		Currency:    currency,
	}
	if err := e.store.InsertExpense(ctx, record); err != nil {
		e.logger.Error("failed to save expense", "owner_id", ownerID, "error", err)
		return msgExpenseSaveFailed, false
	}
	return c.Confirmation, true
}

func (e *Engine) applyTask(ctx context.Context, ownerID int64, c model.Classification) (string, bool) {
	description, ok := stringField(c.Fields, descriptionKeys)
	if !ok {
		description = defaultDescription
	}

	record := &model.TaskRecord{
		OwnerID:     ownerID,
		Description: description,
	}
	if deadline, ok := stringField(c.Fields, deadlineKeys); ok {
		record.Deadline = &deadline
	}
	if err := e.store.InsertTask(ctx, record); err != nil {
		e.logger.Error("failed to save task", "owner_id", ownerID, "error", err)
		return msgTaskSaveFailed, false
	}
	return c.Confirmation, true
}

func (e *Engine) applyNote(ctx context.Context, ownerID int64, payload model.MediaPayload, c model.Classification) (string, bool) {
	content, ok := stringField(c.Fields, contentKeys)
	if !ok {
		// The original message text is a better note than nothing.
		content = payload.Text
	}

	record := &model.NoteRecord{
		OwnerID: ownerID,
		Content: content,
	}
	if err := e.store.InsertNote(ctx, record); err != nil {
		e.logger.Error("failed to save note", "owner_id", ownerID, "error", err)
		return msgNoteSaveFailed, false
	}
	return c.Confirmation, true
}
