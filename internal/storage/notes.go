package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/casamontes/mayordomo/internal/common"
	"github.com/casamontes/mayordomo/internal/model"
)

// InsertNote persists a single note record.
func (s *SQLiteStorage) InsertNote(ctx context.Context, note *model.NoteRecord) error {
	if err := validateNote(note); err != nil {
		return err
	}

	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (id, user_id, content, created_at)
		VALUES (?, ?, ?, ?)
	`, note.ID, note.OwnerID, note.Content, note.CreatedAt)
	if err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("%w: note %s", common.ErrDuplicateEntry, note.ID)
		}
		return fmt.Errorf("%w: note: %v", common.ErrSaveFailed, err)
	}

	return nil
}

// GetRecentNotes returns the newest notes across all owners, newest first.
func (s *SQLiteStorage) GetRecentNotes(ctx context.Context, limit int) ([]model.NoteRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, content, created_at
		FROM notes
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var notes []model.NoteRecord
	for rows.Next() {
		var note model.NoteRecord
		if err := rows.Scan(&note.ID, &note.OwnerID, &note.Content, &note.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}

	return notes, nil
}
