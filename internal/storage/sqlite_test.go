package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casamontes/mayordomo/internal/common"
	"github.com/casamontes/mayordomo/internal/model"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestInsertExpense_RoundTrip(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	expense := &model.ExpenseRecord{
		OwnerID:     42,
		Amount:      decimal.RequireFromString("12.5"),
		Description: "coffee",
	}
	require.NoError(t, store.InsertExpense(ctx, expense))

	assert.NotEmpty(t, expense.ID)
	assert.Equal(t, "USD", expense.Currency, "currency defaults when absent")
	assert.False(t, expense.CreatedAt.IsZero())

	expenses, err := store.GetRecentExpenses(ctx, 10)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.True(t, expenses[0].Amount.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, "coffee", expenses[0].Description)
	assert.Equal(t, int64(42), expenses[0].OwnerID)
}

func TestInsertExpense_RejectsNegativeAmount(t *testing.T) {
	store := newTestStorage(t)

	err := store.InsertExpense(context.Background(), &model.ExpenseRecord{
		OwnerID:     42,
		Amount:      decimal.RequireFromString("-3"),
		Description: "refund?",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidExpense)
}

func TestInsertTask_DefaultsToPending(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	task := &model.TaskRecord{
		OwnerID:     42,
		Description: "llamar al médico",
	}
	require.NoError(t, store.InsertTask(ctx, task))
	assert.Equal(t, model.TaskStatusPending, task.Status)

	pending, err := store.GetPendingTasks(ctx, 42)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "llamar al médico", pending[0].Description)
	assert.Nil(t, pending[0].Deadline)
}

func TestGetPendingTasks_FiltersByOwnerAndStatus(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	deadline := "2026-09-01"
	require.NoError(t, store.InsertTask(ctx, &model.TaskRecord{OwnerID: 1, Description: "a", Deadline: &deadline}))
	require.NoError(t, store.InsertTask(ctx, &model.TaskRecord{OwnerID: 1, Description: "b", Status: model.TaskStatusCompleted}))
	require.NoError(t, store.InsertTask(ctx, &model.TaskRecord{OwnerID: 2, Description: "c"}))

	pending, err := store.GetPendingTasks(ctx, 1)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "a", pending[0].Description)
	require.NotNil(t, pending[0].Deadline)
	assert.Equal(t, "2026-09-01", *pending[0].Deadline)
}

func TestInsertNote_RoundTrip(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.InsertNote(ctx, &model.NoteRecord{OwnerID: 42, Content: "una idea"}))

	notes, err := store.GetRecentNotes(ctx, 10)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "una idea", notes[0].Content)
}

func TestInsertExpense_DuplicateIDReportsDuplicate(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	expense := &model.ExpenseRecord{
		OwnerID:     42,
		Amount:      decimal.RequireFromString("5"),
		Description: "pan",
	}
	require.NoError(t, store.InsertExpense(ctx, expense))

	dup := &model.ExpenseRecord{
		ID:          expense.ID,
		OwnerID:     42,
		Amount:      decimal.RequireFromString("5"),
		Description: "pan",
	}
	err := store.InsertExpense(ctx, dup)

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)
	assert.NotErrorIs(t, err, common.ErrSaveFailed)
}

func TestInsertTask_DuplicateIDReportsDuplicate(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	task := &model.TaskRecord{OwnerID: 1, Description: "regar plantas"}
	require.NoError(t, store.InsertTask(ctx, task))

	err := store.InsertTask(ctx, &model.TaskRecord{ID: task.ID, OwnerID: 1, Description: "regar plantas"})

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)
}

func TestInsertFailure_DoesNotAffectOtherKinds(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	// An invalid expense must not poison a later, unrelated task insert.
	err := store.InsertExpense(ctx, &model.ExpenseRecord{OwnerID: 1, Amount: decimal.Zero, Description: ""})
	require.Error(t, err)

	require.NoError(t, store.InsertTask(ctx, &model.TaskRecord{OwnerID: 1, Description: "sigue funcionando"}))

	tasks, err := store.GetAllTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestMigrate_Idempotent(t *testing.T) {
	store := newTestStorage(t)
	require.NoError(t, store.Migrate(context.Background()))
	require.NoError(t, store.Migrate(context.Background()))
}
