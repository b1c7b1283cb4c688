package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaskStatus tracks the lifecycle of a task record.
type TaskStatus string

// Task status constants. New tasks always start pending.
const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// ExpenseRecord is a single spend entry derived from an EXPENSE classification.
type ExpenseRecord struct {
	CreatedAt   time.Time
	ID          string
	Description string
	Currency    string
	Amount      decimal.Decimal
	OwnerID     int64
}

// TaskRecord is a to-do item derived from a TASK classification. Deadline is
// free-form text as the provider phrased it ("mañana", "2026-03-01"); nil when
// the user gave none.
type TaskRecord struct {
	CreatedAt   time.Time
	Deadline    *string
	ID          string
	Description string
	Status      TaskStatus
	OwnerID     int64
}

// NoteRecord is a free-form note derived from a NOTE classification.
type NoteRecord struct {
	CreatedAt time.Time
	ID        string
	Content   string
	OwnerID   int64
}
