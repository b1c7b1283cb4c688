// Package bot is the Telegram transport: it receives updates, enforces the
// user allowlist and hands message payloads to the processing engine.
package bot

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/casamontes/mayordomo/internal/engine"
	"github.com/casamontes/mayordomo/internal/model"
	"github.com/casamontes/mayordomo/internal/service"
)

// Processor runs the classification pipeline for one message.
type Processor interface {
	Process(ctx context.Context, ownerID int64, payload model.MediaPayload) engine.Reply
}

// DashboardGenerator rebuilds the dashboard artifact synchronously. Used by
// the manual /update_dashboard command, which waits for the result.
type DashboardGenerator interface {
	Generate(ctx context.Context) error
}

// telegramAPI is the slice of *tgbotapi.BotAPI the bot actually uses, split
// out so tests can fake the wire.
type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

const dashboardCommandTimeout = 30 * time.Second

// Bot wires Telegram updates to the engine.
type Bot struct {
	api       telegramAPI
	processor Processor
	store     service.Storage
	generator DashboardGenerator
	http      *http.Client
	logger    *slog.Logger
	allowed   map[int64]bool
}

// Options configures a Bot.
type Options struct {
	Processor    Processor
	Store        service.Storage
	Generator    DashboardGenerator
	Logger       *slog.Logger
	AllowedUsers []int64
}

// New connects to Telegram with the given token.
func New(token string, opts Options) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return newBot(api, opts), nil
}

func newBot(api telegramAPI, opts Options) *Bot {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	allowed := make(map[int64]bool, len(opts.AllowedUsers))
	for _, id := range opts.AllowedUsers {
		allowed[id] = true
	}

	return &Bot{
		api:       api,
		processor: opts.Processor,
		store:     opts.Store,
		generator: opts.Generator,
		http:      &http.Client{Timeout: 30 * time.Second},
		logger:    logger,
		allowed:   allowed,
	}
}

// Run long-polls Telegram until ctx is cancelled. Each update is handled in
// its own goroutine so one slow classification never blocks the next user
// message.
func (b *Bot) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	b.logger.Info("telegram bot polling for updates")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	// Channel posts and other senderless updates carry no user to authorize.
	if msg.From == nil {
		return
	}
	userID := msg.From.ID

	if !b.allowed[userID] {
		b.logger.Warn("unauthorized access attempt", "user_id", userID)
		b.reply(msg.Chat.ID, "Lo siento, no tienes permiso para usar este bot.")
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	b.handleMessage(ctx, msg)
}

// Send forwards a message to Telegram. It lets collaborators like the
// reminder scheduler share the bot's connection.
func (b *Bot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	return b.api.Send(c)
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error("failed to send reply", "chat_id", chatID, "error", err)
	}
}
