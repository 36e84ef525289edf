package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/itmo-rating-bot/internal/bot/mocks"
	"github.com/vfg2006/itmo-rating-bot/internal/config"
	"github.com/vfg2006/itmo-rating-bot/internal/domain"
	"github.com/vfg2006/itmo-rating-bot/internal/notifier"
	notifiermocks "github.com/vfg2006/itmo-rating-bot/internal/notifier/mocks"
	authmocks "github.com/vfg2006/itmo-rating-bot/internal/usecases/authenticating/mocks"
	pollingmocks "github.com/vfg2006/itmo-rating-bot/internal/usecases/polling/mocks"
	"github.com/vfg2006/itmo-rating-bot/internal/usecases/subscription"
	submocks "github.com/vfg2006/itmo-rating-bot/internal/usecases/subscription/mocks"
	"go.uber.org/mock/gomock"
)

const testChatID int64 = 42

type botMocks struct {
	api         *mocks.MockAPI
	manager     *submocks.MockManager
	poller      *pollingmocks.MockPoller
	broadcaster *notifiermocks.MockBroadcaster
	auth        *authmocks.MockAuthenticator
}

// recorder guarda as mensagens enviadas pelo bot
type recorder struct {
	mu       sync.Mutex
	messages []tgbotapi.MessageConfig
	sent     chan struct{}
}

func (r *recorder) add(msg tgbotapi.MessageConfig) {
	r.mu.Lock()
	r.messages = append(r.messages, msg)
	r.mu.Unlock()

	select {
	case r.sent <- struct{}{}:
	default:
	}
}

func (r *recorder) texts() []string {
	texts := make([]string, 0, len(r.messages))
	for _, m := range r.messages {
		texts = append(texts, m.Text)
	}
	return texts
}

func (r *recorder) last() tgbotapi.MessageConfig {
	return r.messages[len(r.messages)-1]
}

func newTestBot(t *testing.T) (*Bot, botMocks, *recorder) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := botMocks{
		api:         mocks.NewMockAPI(ctrl),
		manager:     submocks.NewMockManager(ctrl),
		poller:      pollingmocks.NewMockPoller(ctrl),
		broadcaster: notifiermocks.NewMockBroadcaster(ctrl),
		auth:        authmocks.NewMockAuthenticator(ctrl),
	}

	rec := &recorder{sent: make(chan struct{}, 16)}
	m.api.EXPECT().Send(gomock.Any()).DoAndReturn(func(c tgbotapi.Chattable) (tgbotapi.Message, error) {
		msg, ok := c.(tgbotapi.MessageConfig)
		require.True(t, ok)
		rec.add(msg)
		return tgbotapi.Message{}, nil
	}).AnyTimes()

	cfg := &config.Config{Telegram: config.Telegram{UpdateTimeoutSeconds: 1}}
	return New(m.api, m.manager, m.poller, m.broadcaster, m.auth, cfg), m, rec
}

func textUpdate(text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: testChatID},
		Text: text,
	}}
}

func commandUpdate(text string) tgbotapi.Update {
	length := strings.IndexByte(text, ' ')
	if length < 0 {
		length = len(text)
	}

	update := textUpdate(text)
	update.Message.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}}
	return update
}

func intPtr(v int) *int {
	return &v
}

func TestBot_HandleUpdate(t *testing.T) {
	tests := []struct {
		name     string
		update   tgbotapi.Update
		setup    func(m botMocks)
		validate func(t *testing.T, rec *recorder)
	}{
		{
			name:   "Start registra o chat e mostra o teclado",
			update: commandUpdate("/start"),
			setup: func(m botMocks) {
				m.manager.EXPECT().Register(gomock.Any(), testChatID).Return(nil)
			},
			validate: func(t *testing.T, rec *recorder) {
				require.Len(t, rec.messages, 1)
				assert.Equal(t, textGreeting, rec.last().Text)

				keyboard, ok := rec.last().ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
				require.True(t, ok)
				require.Len(t, keyboard.Keyboard, 3)
				assert.Equal(t, buttonCheck, keyboard.Keyboard[0][0].Text)
				assert.Equal(t, buttonSubscribe, keyboard.Keyboard[1][0].Text)
				assert.Equal(t, buttonUnsubscribe, keyboard.Keyboard[2][0].Text)
			},
		},
		{
			name:   "Start responde mesmo com falha no registro",
			update: commandUpdate("/start"),
			setup: func(m botMocks) {
				m.manager.EXPECT().Register(gomock.Any(), testChatID).Return(errors.New("db down"))
			},
			validate: func(t *testing.T, rec *recorder) {
				assert.Equal(t, []string{textGreeting}, rec.texts())
			},
		},
		{
			name:   "Verificar ranking usa o ID do chat",
			update: textUpdate(buttonCheck),
			setup: func(m botMocks) {
				m.manager.EXPECT().TrackedID(gomock.Any(), testChatID).Return("777", nil)
				m.poller.EXPECT().RunCycle(gomock.Any(), "777", domain.PollTriggerUser).Return(&domain.PollEvent{
					Snapshot: domain.RatingSnapshot{
						TotalPeople:   50,
						ContractCount: 10,
						TrackedID:     "777",
						YourPosition:  intPtr(5),
						Timestamp:     time.Date(2025, 7, 20, 9, 0, 0, 0, time.UTC),
					},
				}, nil)
			},
			validate: func(t *testing.T, rec *recorder) {
				require.Len(t, rec.messages, 2)
				assert.Equal(t, textParsing, rec.messages[0].Text)
				assert.Contains(t, rec.messages[1].Text, "Ваша позиция: 5")
				assert.Contains(t, rec.messages[1].Text, "Человек с договорами: 10")
			},
		},
		{
			name:   "Falha na consulta pede para tentar depois",
			update: commandUpdate("/check"),
			setup: func(m botMocks) {
				m.manager.EXPECT().TrackedID(gomock.Any(), testChatID).Return("777", nil)
				m.poller.EXPECT().RunCycle(gomock.Any(), "777", domain.PollTriggerUser).Return(nil, errors.New("timeout"))
			},
			validate: func(t *testing.T, rec *recorder) {
				assert.Equal(t, []string{textParsing, textParseError}, rec.texts())
			},
		},
		{
			name:   "Inscrição nova",
			update: textUpdate(buttonSubscribe),
			setup: func(m botMocks) {
				m.manager.EXPECT().IsSubscribed(gomock.Any(), testChatID).Return(false, nil)
				m.manager.EXPECT().Subscribe(gomock.Any(), testChatID).Return(nil)
			},
			validate: func(t *testing.T, rec *recorder) {
				assert.Equal(t, []string{textSubscribed}, rec.texts())
			},
		},
		{
			name:   "Inscrição repetida",
			update: textUpdate(buttonSubscribe),
			setup: func(m botMocks) {
				m.manager.EXPECT().IsSubscribed(gomock.Any(), testChatID).Return(true, nil)
			},
			validate: func(t *testing.T, rec *recorder) {
				assert.Equal(t, []string{textAlreadySub}, rec.texts())
			},
		},
		{
			name:   "Cancelamento de inscrição",
			update: textUpdate(buttonUnsubscribe),
			setup: func(m botMocks) {
				m.manager.EXPECT().IsSubscribed(gomock.Any(), testChatID).Return(true, nil)
				m.manager.EXPECT().Unsubscribe(gomock.Any(), testChatID).Return(nil)
			},
			validate: func(t *testing.T, rec *recorder) {
				assert.Equal(t, []string{textUnsubscribed}, rec.texts())
			},
		},
		{
			name:   "Cancelamento sem inscrição",
			update: commandUpdate("/unsubscribe"),
			setup: func(m botMocks) {
				m.manager.EXPECT().IsSubscribed(gomock.Any(), testChatID).Return(false, nil)
			},
			validate: func(t *testing.T, rec *recorder) {
				assert.Equal(t, []string{textNotSubscribed}, rec.texts())
			},
		},
		{
			name:   "Definir ID válido",
			update: commandUpdate("/setid 123456"),
			setup: func(m botMocks) {
				m.manager.EXPECT().SetTrackedID(gomock.Any(), testChatID, "123456").Return(nil)
				m.manager.EXPECT().TrackedID(gomock.Any(), testChatID).Return("123456", nil)
			},
			validate: func(t *testing.T, rec *recorder) {
				assert.Equal(t, []string{fmt.Sprintf(textTrackedIDFormat, "123456")}, rec.texts())
			},
		},
		{
			name:   "Definir ID inválido",
			update: commandUpdate("/setid abc"),
			setup: func(m botMocks) {
				m.manager.EXPECT().SetTrackedID(gomock.Any(), testChatID, "abc").Return(subscription.ErrInvalidTrackedID)
			},
			validate: func(t *testing.T, rec *recorder) {
				assert.Equal(t, []string{textInvalidID}, rec.texts())
			},
		},
		{
			name:   "Meu ID sem padrão configurado",
			update: commandUpdate("/myid"),
			setup: func(m botMocks) {
				m.manager.EXPECT().TrackedID(gomock.Any(), testChatID).Return("", nil)
			},
			validate: func(t *testing.T, rec *recorder) {
				assert.Equal(t, []string{fmt.Sprintf(textTrackedIDFormat, "не задан")}, rec.texts())
			},
		},
		{
			name:   "Estatísticas negadas para não administrador",
			update: commandUpdate("/stats"),
			setup: func(m botMocks) {
				m.auth.EXPECT().IsAdmin(testChatID).Return(false)
			},
			validate: func(t *testing.T, rec *recorder) {
				assert.Equal(t, []string{textAdminOnly}, rec.texts())
			},
		},
		{
			name:   "Estatísticas para administrador",
			update: commandUpdate("/stats"),
			setup: func(m botMocks) {
				m.auth.EXPECT().IsAdmin(testChatID).Return(true)
				lastAt := time.Date(2025, 7, 20, 9, 0, 0, 0, time.UTC)
				m.manager.EXPECT().Stats(gomock.Any()).Return(&domain.Stats{
					TotalUsers:      10,
					Subscribers:     4,
					Snapshots:       99,
					LastSnapshotAt:  &lastAt,
					LastTotalPeople: intPtr(120),
				}, nil)
			},
			validate: func(t *testing.T, rec *recorder) {
				require.Len(t, rec.messages, 1)
				text := rec.last().Text
				assert.Contains(t, text, "Пользователей: 10")
				assert.Contains(t, text, "Подписчиков: 4")
				assert.Contains(t, text, "Снимков рейтинга: 99")
				assert.Contains(t, text, "2025-07-20 12:00:00")
				assert.Contains(t, text, "Человек в последнем снимке: 120")
			},
		},
		{
			name:   "Broadcast sem texto mostra o uso",
			update: commandUpdate("/broadcast"),
			setup: func(m botMocks) {
				m.auth.EXPECT().IsAdmin(testChatID).Return(true)
			},
			validate: func(t *testing.T, rec *recorder) {
				assert.Equal(t, []string{textBroadcastUsage}, rec.texts())
			},
		},
		{
			name:   "Broadcast envia o texto a todos",
			update: commandUpdate("/broadcast Сайт обновлён"),
			setup: func(m botMocks) {
				m.auth.EXPECT().IsAdmin(testChatID).Return(true)
				m.broadcaster.EXPECT().Broadcast(gomock.Any(), "Сайт обновлён").
					Return(notifier.Report{Recipients: 3, Sent: 2, Failed: 1}, nil)
			},
			validate: func(t *testing.T, rec *recorder) {
				assert.Equal(t, []string{"📣 Отправлено: 2 из 3 (ошибок: 1)"}, rec.texts())
			},
		},
		{
			name:   "Token emitido para administrador",
			update: commandUpdate("/token"),
			setup: func(m botMocks) {
				m.auth.EXPECT().IsAdmin(testChatID).Return(true)
				m.auth.EXPECT().IssueToken(testChatID).
					Return("jwt-token", time.Date(2025, 7, 21, 9, 0, 0, 0, time.UTC), nil)
			},
			validate: func(t *testing.T, rec *recorder) {
				require.Len(t, rec.messages, 1)
				assert.Contains(t, rec.last().Text, "jwt-token")
				assert.Contains(t, rec.last().Text, "2025-07-21 12:00:00")
			},
		},
		{
			name:   "Texto desconhecido",
			update: textUpdate("oi"),
			setup:  func(m botMocks) {},
			validate: func(t *testing.T, rec *recorder) {
				assert.Equal(t, []string{textUnknown}, rec.texts())
				_, ok := rec.last().ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
				assert.True(t, ok)
			},
		},
		{
			name:   "Atualização sem mensagem é ignorada",
			update: tgbotapi.Update{},
			setup:  func(m botMocks) {},
			validate: func(t *testing.T, rec *recorder) {
				assert.Empty(t, rec.messages)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, m, rec := newTestBot(t)
			tt.setup(m)

			b.HandleUpdate(context.Background(), tt.update)
			tt.validate(t, rec)
		})
	}
}

func TestBot_Run(t *testing.T) {
	b, m, rec := newTestBot(t)

	updates := make(chan tgbotapi.Update, 1)
	m.api.EXPECT().GetUpdatesChan(gomock.Any()).DoAndReturn(func(u tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
		assert.Equal(t, 1, u.Timeout)
		return updates
	})
	m.api.EXPECT().StopReceivingUpdates()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()

	updates <- textUpdate("oi")

	select {
	case <-rec.sent:
	case <-time.After(time.Second):
		t.Fatal("mensagem não respondida")
	}

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("bot não parou")
	}

	assert.Equal(t, []string{textUnknown}, rec.texts())
}
