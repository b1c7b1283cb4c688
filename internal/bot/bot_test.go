package bot

import (
	"context"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casamontes/mayordomo/internal/engine"
	"github.com/casamontes/mayordomo/internal/model"
)

// fakeAPI records outbound Telegram traffic.
type fakeAPI struct {
	sent     []tgbotapi.MessageConfig
	requests []tgbotapi.Chattable
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, m)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetFileDirectURL(fileID string) (string, error) { return "", nil }

func (f *fakeAPI) GetUpdatesChan(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	ch := make(chan tgbotapi.Update)
	close(ch)
	return ch
}

func (f *fakeAPI) StopReceivingUpdates() {}

func (f *fakeAPI) lastText(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.sent, "expected at least one outbound message")
	return f.sent[len(f.sent)-1].Text
}

type stubProcessor struct {
	payloads []model.MediaPayload
	reply    engine.Reply
}

func (s *stubProcessor) Process(ctx context.Context, ownerID int64, payload model.MediaPayload) engine.Reply {
	s.payloads = append(s.payloads, payload)
	return s.reply
}

type stubGenerator struct {
	err   error
	calls int
}

func (s *stubGenerator) Generate(ctx context.Context) error {
	s.calls++
	return s.err
}

type stubStore struct {
	lastCtx context.Context
	tasks   []model.TaskRecord
	err     error
}

func (s *stubStore) InsertExpense(ctx context.Context, e *model.ExpenseRecord) error { return nil }
func (s *stubStore) InsertTask(ctx context.Context, t *model.TaskRecord) error       { return nil }
func (s *stubStore) InsertNote(ctx context.Context, n *model.NoteRecord) error       { return nil }

func (s *stubStore) GetPendingTasks(ctx context.Context, ownerID int64) ([]model.TaskRecord, error) {
	s.lastCtx = ctx
	return s.tasks, s.err
}

func (s *stubStore) GetRecentExpenses(ctx context.Context, limit int) ([]model.ExpenseRecord, error) {
	return nil, nil
}

func (s *stubStore) GetAllTasks(ctx context.Context) ([]model.TaskRecord, error) { return nil, nil }

func (s *stubStore) GetRecentNotes(ctx context.Context, limit int) ([]model.NoteRecord, error) {
	return nil, nil
}

func (s *stubStore) Migrate(ctx context.Context) error { return nil }
func (s *stubStore) Close() error                      { return nil }

func newTestBot(api *fakeAPI, processor Processor, store *stubStore, gen *stubGenerator) *Bot {
	if store == nil {
		store = &stubStore{}
	}
	if gen == nil {
		gen = &stubGenerator{}
	}
	return newBot(api, Options{
		Processor:    processor,
		Store:        store,
		Generator:    gen,
		AllowedUsers: []int64{42},
	})
}

func textUpdate(userID int64, text string) tgbotapi.Update {
	msg := &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID},
		Chat: &tgbotapi.Chat{ID: userID},
		Text: text,
	}
	if len(text) > 0 && text[0] == '/' {
		end := len(text)
		for i, r := range text {
			if r == ' ' {
				end = i
				break
			}
		}
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: end}}
	}
	return tgbotapi.Update{Message: msg}
}

func TestHandleUpdate_IgnoresSenderlessMessages(t *testing.T) {
	api := &fakeAPI{}
	processor := &stubProcessor{}
	bot := newTestBot(api, processor, nil, nil)

	update := tgbotapi.Update{Message: &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: 42},
		Text: "publicación del canal",
	}}
	bot.handleUpdate(context.Background(), update)

	assert.Empty(t, api.sent, "nothing to reply to without a sender")
	assert.Empty(t, processor.payloads)
}

func TestHandleUpdate_RejectsUnknownUser(t *testing.T) {
	api := &fakeAPI{}
	processor := &stubProcessor{}
	bot := newTestBot(api, processor, nil, nil)

	bot.handleUpdate(context.Background(), textUpdate(999, "hola"))

	assert.Contains(t, api.lastText(t), "no tienes permiso")
	assert.Empty(t, processor.payloads, "unauthorized messages never reach the engine")
}

func TestHandleUpdate_StartCommand(t *testing.T) {
	api := &fakeAPI{}
	bot := newTestBot(api, &stubProcessor{}, nil, nil)

	bot.handleUpdate(context.Background(), textUpdate(42, "/start"))

	assert.Contains(t, api.lastText(t), "asistente de IA personal")
}

func TestHandleUpdate_TextMessageFlowsToEngine(t *testing.T) {
	api := &fakeAPI{}
	processor := &stubProcessor{reply: engine.Reply{Text: "Gasto registrado.", Category: model.CategoryExpense}}
	bot := newTestBot(api, processor, nil, nil)

	bot.handleUpdate(context.Background(), textUpdate(42, "gasté 20 en el súper"))

	require.Len(t, processor.payloads, 1)
	assert.Equal(t, "gasté 20 en el súper", processor.payloads[0].Text)
	assert.False(t, processor.payloads[0].HasMedia())
	assert.Equal(t, "Gasto registrado.", api.lastText(t))
}

func TestHandleUpdate_RemindListsPendingTasks(t *testing.T) {
	api := &fakeAPI{}
	deadline := "2026-09-01"
	store := &stubStore{tasks: []model.TaskRecord{
		{Description: "llamar al médico", Deadline: &deadline},
		{Description: "regar plantas"},
	}}
	bot := newTestBot(api, &stubProcessor{}, store, nil)

	bot.handleUpdate(context.Background(), textUpdate(42, "/remind"))

	text := api.lastText(t)
	assert.Contains(t, text, "1. llamar al médico (Vence: 2026-09-01)")
	assert.Contains(t, text, "2. regar plantas")
	assert.Contains(t, text, "Recordatorio de Tareas Pendientes")
}

func TestHandleUpdate_UpdateDashboardReportsSuccess(t *testing.T) {
	api := &fakeAPI{}
	gen := &stubGenerator{}
	bot := newTestBot(api, &stubProcessor{}, nil, gen)

	bot.handleUpdate(context.Background(), textUpdate(42, "/update_dashboard"))

	assert.Equal(t, 1, gen.calls)
	assert.Contains(t, api.lastText(t), "Dashboard actualizado correctamente")
}

func TestHandleUpdate_UpdateDashboardReportsFailure(t *testing.T) {
	api := &fakeAPI{}
	gen := &stubGenerator{err: assert.AnError}
	bot := newTestBot(api, &stubProcessor{}, nil, gen)

	bot.handleUpdate(context.Background(), textUpdate(42, "/update_dashboard"))

	assert.Contains(t, api.lastText(t), "Error al generar el dashboard")
}

func TestFormatReminder_Empty(t *testing.T) {
	assert.Contains(t, formatReminder(nil), "No tienes tareas pendientes")
}

func TestSendAll_SkipsUsersWithoutTasks(t *testing.T) {
	api := &fakeAPI{}
	store := &stubStore{}
	reminders := NewReminders(api, store, []int64{42}, nil)

	reminders.SendAll(context.Background())

	assert.Empty(t, api.sent, "no reminder when there is nothing pending")
}

func TestRunScheduled_BoundsEachRun(t *testing.T) {
	store := &stubStore{}
	reminders := NewReminders(&fakeAPI{}, store, []int64{42}, nil)

	reminders.runScheduled()

	require.NotNil(t, store.lastCtx)
	deadline, ok := store.lastCtx.Deadline()
	require.True(t, ok, "scheduled runs must carry a deadline")
	assert.WithinDuration(t, time.Now().Add(reminderTimeout), deadline, 5*time.Second)
}

func TestSendAll_SendsSummary(t *testing.T) {
	api := &fakeAPI{}
	store := &stubStore{tasks: []model.TaskRecord{{Description: "pagar alquiler"}}}
	reminders := NewReminders(api, store, []int64{42}, nil)

	reminders.SendAll(context.Background())

	require.Len(t, api.sent, 1)
	assert.Equal(t, int64(42), api.sent[0].ChatID)
	assert.Contains(t, api.sent[0].Text, "pagar alquiler")
	assert.Contains(t, api.sent[0].Text, "Tú puedes con esto")
}
