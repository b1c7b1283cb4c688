package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/robfig/cron/v3"

	"github.com/casamontes/mayordomo/internal/model"
	"github.com/casamontes/mayordomo/internal/service"
)

// Daily reminder time, server-local.
const reminderSchedule = "0 9 * * *"

// reminderTimeout bounds one scheduled run so a hung query cannot block the
// next day's job.
const reminderTimeout = 2 * time.Minute

// sender is the single Telegram call the reminder job needs.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Reminders pushes a pending-task summary to every allowed user each morning.
type Reminders struct {
	api     sender
	store   service.Storage
	logger  *slog.Logger
	cron    *cron.Cron
	allowed []int64
}

// NewReminders builds the daily reminder scheduler.
func NewReminders(api sender, store service.Storage, allowed []int64, logger *slog.Logger) *Reminders {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reminders{
		api:     api,
		store:   store,
		logger:  logger,
		cron:    cron.New(),
		allowed: allowed,
	}
}

// Start schedules the daily job and stops it when ctx is cancelled.
func (r *Reminders) Start(ctx context.Context) error {
	_, err := r.cron.AddFunc(reminderSchedule, r.runScheduled)
	if err != nil {
		return fmt.Errorf("failed to schedule reminders: %w", err)
	}

	r.cron.Start()
	r.logger.Info("task reminders scheduled", "schedule", reminderSchedule)

	go func() {
		<-ctx.Done()
		r.cron.Stop()
	}()
	return nil
}

// runScheduled is the cron entry point. Each run gets its own deadline.
func (r *Reminders) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), reminderTimeout)
	defer cancel()
	r.SendAll(ctx)
}

// SendAll sends each allowed user their pending-task summary. Users with no
// pending tasks get nothing. A failure for one user never blocks the rest.
func (r *Reminders) SendAll(ctx context.Context) {
	for _, userID := range r.allowed {
		tasks, err := r.store.GetPendingTasks(ctx, userID)
		if err != nil {
			r.logger.Error("failed to fetch tasks for reminder", "user_id", userID, "error", err)
			continue
		}
		if len(tasks) == 0 {
			continue
		}

		msg := tgbotapi.NewMessage(userID, formatReminder(tasks))
		msg.ParseMode = tgbotapi.ModeMarkdown
		if _, err := r.api.Send(msg); err != nil {
			r.logger.Error("failed to send reminder", "user_id", userID, "error", err)
		}
	}
}

// formatReminder renders the pending-task summary sent by /remind and the
// daily job.
func formatReminder(tasks []model.TaskRecord) string {
	if len(tasks) == 0 {
		return "No tienes tareas pendientes. 🎉"
	}

	var sb strings.Builder
	sb.WriteString("🔔 *Recordatorio de Tareas Pendientes:*\n\n")
	for i, task := range tasks {
		sb.WriteString(fmt.Sprintf("%d. %s", i+1, task.Description))
		if task.Deadline != nil {
			sb.WriteString(fmt.Sprintf(" (Vence: %s)", *task.Deadline))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n¡Vamos! Tú puedes con esto. 💪")
	return sb.String()
}
