package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/casamontes/mayordomo/internal/common"
	"github.com/casamontes/mayordomo/internal/model"
)

// InsertTask persists a single task record. New tasks always enter pending.
func (s *SQLiteStorage) InsertTask(ctx context.Context, task *model.TaskRecord) error {
	if task != nil && task.Status == "" {
		task.Status = model.TaskStatusPending
	}
	if err := validateTask(task); err != nil {
		return err
	}

	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, user_id, description, deadline, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, task.ID, task.OwnerID, task.Description, task.Deadline, task.Status, task.CreatedAt)
	if err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("%w: task %s", common.ErrDuplicateEntry, task.ID)
		}
		return fmt.Errorf("%w: task: %v", common.ErrSaveFailed, err)
	}

	return nil
}

// GetPendingTasks returns the pending tasks for one owner, oldest first, for
// reminder summaries.
func (s *SQLiteStorage) GetPendingTasks(ctx context.Context, ownerID int64) ([]model.TaskRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, description, deadline, status, created_at
		FROM tasks
		WHERE user_id = ? AND status = ?
		ORDER BY created_at ASC
	`, ownerID, model.TaskStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanTasks(rows)
}

// GetAllTasks returns every task across all owners, newest first.
func (s *SQLiteStorage) GetAllTasks(ctx context.Context) ([]model.TaskRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, description, deadline, status, created_at
		FROM tasks
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanTasks(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanTasks(rows rowScanner) ([]model.TaskRecord, error) {
	var tasks []model.TaskRecord
	for rows.Next() {
		var task model.TaskRecord
		if err := rows.Scan(&task.ID, &task.OwnerID, &task.Description, &task.Deadline, &task.Status, &task.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}
