package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/casamontes/mayordomo/internal/model"
	"github.com/casamontes/mayordomo/internal/service"
)

// Fetch windows. The artifact is fully regenerated each cycle, so these only
// bound its size, not its correctness.
const (
	expenseWindow = 200
	noteWindow    = 50
	topCategories = 5
	dailyDays     = 7
)

// Generator rebuilds the dashboard artifact from the full current record
// sets. Output depends only on the fetched records and the injected clock,
// so unchanged data renders byte-identical HTML.
type Generator struct {
	store  service.Storage
	logger *slog.Logger
	now    func() time.Time
	path   string
}

// NewGenerator creates a dashboard generator writing to path.
func NewGenerator(store service.Storage, path string, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		store:  store,
		path:   path,
		logger: logger,
		now:    time.Now,
	}
}

// Generate fetches all record sets concurrently, renders the HTML and
// atomically replaces the artifact. A failure leaves the previous artifact
// intact.
func (g *Generator) Generate(ctx context.Context) error {
	var (
		expenses []model.ExpenseRecord
		tasks    []model.TaskRecord
		notes    []model.NoteRecord
	)

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		var err error
		expenses, err = g.store.GetRecentExpenses(grpCtx, expenseWindow)
		return err
	})
	grp.Go(func() error {
		var err error
		tasks, err = g.store.GetAllTasks(grpCtx)
		return err
	})
	grp.Go(func() error {
		var err error
		notes, err = g.store.GetRecentNotes(grpCtx, noteWindow)
		return err
	})
	if err := grp.Wait(); err != nil {
		return fmt.Errorf("failed to fetch dashboard data: %w", err)
	}

	view := buildView(expenses, tasks, notes, g.now())

	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, view); err != nil {
		return fmt.Errorf("failed to render dashboard: %w", err)
	}

	if err := atomicWrite(g.path, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write dashboard: %w", err)
	}

	g.logger.Info("dashboard regenerated",
		"path", g.path,
		"expenses", len(expenses),
		"tasks", len(tasks),
		"notes", len(notes))
	return nil
}

// atomicWrite replaces path in one rename so a reader never sees a partial
// artifact.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".dashboard-*.html")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

// viewData is everything the template needs, pre-formatted.
type viewData struct {
	GeneratedAt  string
	TotalSpent   string
	Categories   []categorySlice
	Daily        []dailySpend
	PendingTasks []taskRow
	RecentNotes  []noteRow
	PendingCount int
	NoteCount    int
	ExpenseCount int
}

type categorySlice struct {
	Label  string
	Amount string
	Raw    float64
}

type dailySpend struct {
	Date   string
	Amount string
	Raw    float64
}

type taskRow struct {
	Description string
	Deadline    string
}

type noteRow struct {
	Content string
	Date    string
}

func buildView(expenses []model.ExpenseRecord, tasks []model.TaskRecord, notes []model.NoteRecord, now time.Time) viewData {
	total := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	byDay := make(map[string]decimal.Decimal)

	for _, e := range expenses {
		total = total.Add(e.Amount)
		byCategory[e.Description] = byCategory[e.Description].Add(e.Amount)
		day := e.CreatedAt.Format("2006-01-02")
		byDay[day] = byDay[day].Add(e.Amount)
	}

	categories := make([]categorySlice, 0, len(byCategory))
	for label, amount := range byCategory {
		f, _ := amount.Float64()
		categories = append(categories, categorySlice{Label: label, Amount: amount.StringFixed(2), Raw: f})
	}
	// Deterministic ordering: amount descending, then label.
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Raw != categories[j].Raw {
			return categories[i].Raw > categories[j].Raw
		}
		return categories[i].Label < categories[j].Label
	})
	if len(categories) > topCategories {
		categories = categories[:topCategories]
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	if len(days) > dailyDays {
		days = days[len(days)-dailyDays:]
	}
	daily := make([]dailySpend, 0, len(days))
	for _, day := range days {
		f, _ := byDay[day].Float64()
		daily = append(daily, dailySpend{Date: day, Amount: byDay[day].StringFixed(2), Raw: f})
	}

	var pendingRows []taskRow
	pendingCount := 0
	for _, task := range tasks {
		if task.Status != model.TaskStatusPending {
			continue
		}
		pendingCount++
		row := taskRow{Description: task.Description}
		if task.Deadline != nil {
			row.Deadline = *task.Deadline
		}
		pendingRows = append(pendingRows, row)
	}

	noteRows := make([]noteRow, 0, len(notes))
	for _, note := range notes {
		noteRows = append(noteRows, noteRow{
			Content: note.Content,
			Date:    note.CreatedAt.Format("2006-01-02"),
		})
	}

	return viewData{
		GeneratedAt:  now.Format("2006-01-02 15:04"),
		TotalSpent:   total.StringFixed(2),
		Categories:   categories,
		Daily:        daily,
		PendingTasks: pendingRows,
		RecentNotes:  noteRows,
		PendingCount: pendingCount,
		NoteCount:    len(notes),
		ExpenseCount: len(expenses),
	}
}
