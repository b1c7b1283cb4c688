package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/casamontes/mayordomo/internal/common"
	"github.com/casamontes/mayordomo/internal/model"
)

// InsertExpense persists a single expense record. The ID and creation time
// are assigned here when the caller left them empty; the currency defaults
// to USD.
func (s *SQLiteStorage) InsertExpense(ctx context.Context, expense *model.ExpenseRecord) error {
	if err := validateExpense(expense); err != nil {
		return err
	}

	if expense.ID == "" {
		expense.ID = uuid.NewString()
	}
	if expense.Currency == "" {
		expense.Currency = "USD"
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (id, user_id, amount, description, currency, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, expense.ID, expense.OwnerID, expense.Amount.String(), expense.Description, expense.Currency, expense.CreatedAt)
	if err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("%w: expense %s", common.ErrDuplicateEntry, expense.ID)
		}
		return fmt.Errorf("%w: expense: %v", common.ErrSaveFailed, err)
	}

	return nil
}

// GetRecentExpenses returns the newest expenses across all owners, newest
// first. The dashboard generator is the only caller; it caps the window so
// the artifact stays bounded.
func (s *SQLiteStorage) GetRecentExpenses(ctx context.Context, limit int) ([]model.ExpenseRecord, error) {
	if limit <= 0 {
		limit = 200
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, amount, description, currency, created_at
		FROM expenses
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var expenses []model.ExpenseRecord
	for rows.Next() {
		var expense model.ExpenseRecord
		var amount string
		if err := rows.Scan(&expense.ID, &expense.OwnerID, &amount, &expense.Description, &expense.Currency, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("%w: bad amount %q for expense %s", common.ErrDatabaseCorrupted, amount, expense.ID)
		}
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}
