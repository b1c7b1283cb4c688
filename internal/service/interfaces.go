// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/casamontes/mayordomo/internal/model"
)

// Storage defines the contract for the persistence layer.
type Storage interface {
	// Record inserts, one per persistable category.
	InsertExpense(ctx context.Context, expense *model.ExpenseRecord) error
	InsertTask(ctx context.Context, task *model.TaskRecord) error
	InsertNote(ctx context.Context, note *model.NoteRecord) error

	// Reads used by reminders and the dashboard generator.
	GetPendingTasks(ctx context.Context, ownerID int64) ([]model.TaskRecord, error)
	GetRecentExpenses(ctx context.Context, limit int) ([]model.ExpenseRecord, error)
	GetAllTasks(ctx context.Context) ([]model.TaskRecord, error)
	GetRecentNotes(ctx context.Context, limit int) ([]model.NoteRecord, error)

	// Database management.
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
