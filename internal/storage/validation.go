package storage

import (
	"errors"
	"fmt"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/casamontes/mayordomo/internal/model"
)

// Validation errors.
var (
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrInvalidExpense = errors.New("invalid expense")
	ErrInvalidTask    = errors.New("invalid task")
	ErrInvalidNote    = errors.New("invalid note")
	ErrInvalidOwner   = errors.New("invalid owner id")
)

// isConstraintViolation reports whether err is a SQLite constraint failure,
// such as inserting a record whose ID already exists.
func isConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateExpense(expense *model.ExpenseRecord) error {
	if expense == nil {
		return fmt.Errorf("%w: expense", ErrNilParameter)
	}
	if expense.OwnerID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidOwner, expense.OwnerID)
	}
	if expense.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidExpense)
	}
	if strings.TrimSpace(expense.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidExpense)
	}
	return nil
}

func validateTask(task *model.TaskRecord) error {
	if task == nil {
		return fmt.Errorf("%w: task", ErrNilParameter)
	}
	if task.OwnerID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidOwner, task.OwnerID)
	}
	if strings.TrimSpace(task.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidTask)
	}
	switch task.Status {
	case model.TaskStatusPending, model.TaskStatusCompleted:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTask, task.Status)
	}
	return nil
}

func validateNote(note *model.NoteRecord) error {
	if note == nil {
		return fmt.Errorf("%w: note", ErrNilParameter)
	}
	if note.OwnerID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidOwner, note.OwnerID)
	}
	if strings.TrimSpace(note.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrInvalidNote)
	}
	return nil
}
