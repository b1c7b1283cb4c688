package dashboard

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casamontes/mayordomo/internal/model"
)

// stubStorage serves canned record sets to the generator.
type stubStorage struct {
	expenses []model.ExpenseRecord
	tasks    []model.TaskRecord
	notes    []model.NoteRecord
	err      error
}

func (s *stubStorage) InsertExpense(ctx context.Context, e *model.ExpenseRecord) error { return nil }
func (s *stubStorage) InsertTask(ctx context.Context, t *model.TaskRecord) error       { return nil }
func (s *stubStorage) InsertNote(ctx context.Context, n *model.NoteRecord) error       { return nil }

func (s *stubStorage) GetPendingTasks(ctx context.Context, ownerID int64) ([]model.TaskRecord, error) {
	return s.tasks, s.err
}

func (s *stubStorage) GetRecentExpenses(ctx context.Context, limit int) ([]model.ExpenseRecord, error) {
	return s.expenses, s.err
}

func (s *stubStorage) GetAllTasks(ctx context.Context) ([]model.TaskRecord, error) {
	return s.tasks, s.err
}

func (s *stubStorage) GetRecentNotes(ctx context.Context, limit int) ([]model.NoteRecord, error) {
	return s.notes, s.err
}

func (s *stubStorage) Migrate(ctx context.Context) error { return nil }
func (s *stubStorage) Close() error                      { return nil }

func fixedClock() time.Time {
	return time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
}

func testRecords() *stubStorage {
	day := func(d int) time.Time { return time.Date(2026, 3, d, 12, 0, 0, 0, time.UTC) }
	deadline := "2026-04-01"
	return &stubStorage{
		expenses: []model.ExpenseRecord{
			{Amount: decimal.RequireFromString("12.50"), Description: "café", CreatedAt: day(14)},
			{Amount: decimal.RequireFromString("30.00"), Description: "supermercado", CreatedAt: day(14)},
			{Amount: decimal.RequireFromString("7.25"), Description: "café", CreatedAt: day(13)},
		},
		tasks: []model.TaskRecord{
			{Description: "llamar al médico", Status: model.TaskStatusPending, Deadline: &deadline},
			{Description: "ya hecho", Status: model.TaskStatusCompleted},
		},
		notes: []model.NoteRecord{
			{Content: "idea para regalo", CreatedAt: day(12)},
		},
	}
}

func newTestGenerator(t *testing.T, store *stubStorage) (*Generator, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dashboard.html")
	gen := NewGenerator(store, path, nil)
	gen.now = fixedClock
	return gen, path
}

func TestGenerate_WritesArtifact(t *testing.T) {
	gen, path := newTestGenerator(t, testRecords())

	require.NoError(t, gen.Generate(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)

	assert.Contains(t, html, "49.75", "total across all expenses")
	assert.Contains(t, html, "llamar al médico")
	assert.Contains(t, html, "2026-04-01")
	assert.NotContains(t, html, "ya hecho", "completed tasks stay off the dashboard")
	assert.Contains(t, html, "idea para regalo")
	assert.Contains(t, html, "2026-03-15 10:30")
}

func TestGenerate_IdenticalDataRendersIdenticalBytes(t *testing.T) {
	gen, path := newTestGenerator(t, testRecords())

	require.NoError(t, gen.Generate(context.Background()))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, gen.Generate(context.Background()))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second, "unchanged data must render byte-identical output")
}

func TestGenerate_EmptyStateRenders(t *testing.T) {
	gen, path := newTestGenerator(t, &stubStorage{})

	require.NoError(t, gen.Generate(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, "Sin tareas pendientes")
	assert.Contains(t, html, "Sin notas todavía")
	assert.Contains(t, html, "0.00")
}

func TestGenerate_FetchFailureKeepsPreviousArtifact(t *testing.T) {
	store := testRecords()
	gen, path := newTestGenerator(t, store)

	require.NoError(t, gen.Generate(context.Background()))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	store.err = assert.AnError
	require.Error(t, gen.Generate(context.Background()))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "a failed rebuild must leave the old artifact in place")
}

func TestGenerate_LeavesNoTempFiles(t *testing.T) {
	gen, path := newTestGenerator(t, testRecords())
	require.NoError(t, gen.Generate(context.Background()))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".dashboard-"), "temp file %s left behind", e.Name())
	}
}

func TestBuildView_TopCategoriesAndDailyWindow(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 3, d, 12, 0, 0, 0, time.UTC) }
	var expenses []model.ExpenseRecord
	labels := []string{"a", "b", "c", "d", "e", "f", "g"}
	for i, label := range labels {
		expenses = append(expenses, model.ExpenseRecord{
			Amount:      decimal.NewFromInt(int64(10 * (i + 1))),
			Description: label,
			CreatedAt:   day(i + 1),
		})
	}

	view := buildView(expenses, nil, nil, fixedClock())

	require.Len(t, view.Categories, topCategories)
	assert.Equal(t, "g", view.Categories[0].Label, "largest category first")
	assert.Len(t, view.Daily, 7)
	assert.Equal(t, "2026-03-01", view.Daily[0].Date)
}
