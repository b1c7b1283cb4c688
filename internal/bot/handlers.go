package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/casamontes/mayordomo/internal/common"
	"github.com/casamontes/mayordomo/internal/model"
	"github.com/casamontes/mayordomo/internal/service"
)

const startMessage = "¡Hola! Soy tu asistente de IA personal. Puedo ayudarte a rastrear gastos, tareas y notas. Escribe /help para ver qué puedo hacer."

const helpMessage = `Comandos disponibles:
/start - Iniciar el bot
/help - Mostrar este mensaje de ayuda
/remind - Ver resumen de tareas pendientes
/update_dashboard - Actualizar el dashboard manualmente

También puedes escribirme directamente: "gasté 20 en el súper", "recordame llamar al médico mañana", o enviar una foto de un recibo o una nota de voz.`

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.reply(msg.Chat.ID, startMessage)
	case "help":
		b.reply(msg.Chat.ID, helpMessage)
	case "remind":
		b.handleRemind(ctx, msg)
	case "update_dashboard":
		b.handleUpdateDashboard(ctx, msg)
	default:
		b.reply(msg.Chat.ID, "No conozco ese comando. Escribe /help para ver los disponibles.")
	}
}

func (b *Bot) handleRemind(ctx context.Context, msg *tgbotapi.Message) {
	tasks, err := b.store.GetPendingTasks(ctx, msg.From.ID)
	if err != nil {
		b.logger.Error("failed to fetch pending tasks", "user_id", msg.From.ID, "error", err)
		b.reply(msg.Chat.ID, "No pude consultar tus tareas. Intenta de nuevo.")
		return
	}

	reminder := tgbotapi.NewMessage(msg.Chat.ID, formatReminder(tasks))
	reminder.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(reminder); err != nil {
		b.logger.Error("failed to send reminder", "chat_id", msg.Chat.ID, "error", err)
	}
}

func (b *Bot) handleUpdateDashboard(ctx context.Context, msg *tgbotapi.Message) {
	b.reply(msg.Chat.ID, "🔄 Generando dashboard... Esto puede tomar unos segundos.")

	genCtx, cancel := context.WithTimeout(ctx, dashboardCommandTimeout)
	defer cancel()

	err := b.generator.Generate(genCtx)
	switch {
	case err == nil:
		b.reply(msg.Chat.ID, "✅ Dashboard actualizado correctamente. Visita /dashboard para verlo.")
	case genCtx.Err() == context.DeadlineExceeded:
		b.logger.Error("manual dashboard generation timed out")
		b.reply(msg.Chat.ID, "⏱️ El dashboard tardó demasiado en generarse. Intenta de nuevo más tarde.")
	default:
		b.logger.Error("manual dashboard generation failed", "error", err)
		b.reply(msg.Chat.ID, "❌ Error al generar el dashboard.")
	}
}

// handleMessage builds the media payload and runs the pipeline. Photos use
// the largest available size; a missing caption gets a fixed analysis prompt
// so the providers always receive some text.
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	payload := model.MediaPayload{Text: msg.Text}

	if len(msg.Photo) > 0 {
		largest := msg.Photo[len(msg.Photo)-1]
		data, err := b.downloadFile(ctx, largest.FileID)
		if err != nil {
			b.logger.Error("failed to download photo", "error", err)
			b.reply(msg.Chat.ID, "No pude descargar la imagen. Intenta de nuevo.")
			return
		}
		payload.ImageBytes = data
		payload.Text = msg.Caption
		if payload.Text == "" {
			payload.Text = "Analiza esta imagen"
		}
	}

	if msg.Voice != nil {
		data, err := b.downloadFile(ctx, msg.Voice.FileID)
		if err != nil {
			b.logger.Error("failed to download voice note", "error", err)
			b.reply(msg.Chat.ID, "No pude descargar el audio. Intenta de nuevo.")
			return
		}
		payload.AudioBytes = data
		if payload.Text == "" {
			payload.Text = "Analiza este audio"
		}
	}

	b.logger.Info("message received",
		"user_id", msg.From.ID,
		"has_media", payload.HasMedia())

	if _, err := b.api.Request(tgbotapi.NewChatAction(msg.Chat.ID, tgbotapi.ChatTyping)); err != nil {
		b.logger.Debug("failed to send typing action", "error", err)
	}

	reply := b.processor.Process(ctx, msg.From.ID, payload)
	b.reply(msg.Chat.ID, reply.Text)
}

// downloadFile fetches a Telegram file with a short retry. Media downloads
// fail transiently often enough to be worth a second attempt.
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve file URL: %w", err)
	}

	var data []byte
	err = common.WithRetry(ctx, func() error {
		var fetchErr error
		data, fetchErr = b.fetch(ctx, url)
		return fetchErr
	}, service.RetryOptions{
		MaxAttempts:  3,
		InitialDelay: 200 * time.Millisecond,
		MaxDelay:     2 * time.Second,
	})
	return data, err
}

func (b *Bot) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("file download returned status %d", resp.StatusCode)
		// Client errors (expired file reference, bad request) won't heal on
		// a retry; server errors might.
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, &common.RetryableError{Err: err, Retryable: false}
		}
		return nil, err
	}
	return io.ReadAll(resp.Body)
}
