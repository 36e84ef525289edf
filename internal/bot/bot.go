// Package bot implementa a interface do Telegram: menu, comandos e envio de mensagens
package bot

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/itmo-rating-bot/internal/config"
	"github.com/vfg2006/itmo-rating-bot/internal/notifier"
	"github.com/vfg2006/itmo-rating-bot/internal/usecases/authenticating"
	"github.com/vfg2006/itmo-rating-bot/internal/usecases/polling"
	"github.com/vfg2006/itmo-rating-bot/internal/usecases/subscription"
)

//go:generate mockgen -source=bot.go -destination=mocks/mock_bot.go -package=mocks

// API é o subconjunto do *tgbotapi.BotAPI usado pelo bot
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type Bot struct {
	api           API
	subscriptions subscription.Manager
	poller        polling.Poller
	broadcaster   notifier.Broadcaster
	auth          authenticating.Authenticator
	updateTimeout int
	wg            sync.WaitGroup
}

func New(
	api API,
	subscriptions subscription.Manager,
	poller polling.Poller,
	broadcaster notifier.Broadcaster,
	auth authenticating.Authenticator,
	cfg *config.Config,
) *Bot {
	return &Bot{
		api:           api,
		subscriptions: subscriptions,
		poller:        poller,
		broadcaster:   broadcaster,
		auth:          auth,
		updateTimeout: cfg.Telegram.UpdateTimeoutSeconds,
	}
}

// Run recebe as atualizações por long polling até o contexto ser cancelado.
// Cada mensagem é tratada em sua própria goroutine; Run espera as pendentes antes de retornar.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.updateTimeout

	updates := b.api.GetUpdatesChan(u)

	logrus.Info("Bot do Telegram iniciado")

	defer b.wg.Wait()

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Parando bot do Telegram")
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}

			b.wg.Add(1)
			go func() {
				defer b.wg.Done()
				b.HandleUpdate(ctx, update)
			}()
		}
	}
}

// HandleUpdate direciona uma atualização para o tratador correspondente
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}

	chatID := msg.Chat.ID

	if msg.IsCommand() {
		b.handleCommand(ctx, chatID, msg.Command(), msg.CommandArguments())
		return
	}

	switch msg.Text {
	case buttonCheck:
		b.handleCheck(ctx, chatID)
	case buttonSubscribe:
		b.handleSubscribe(ctx, chatID)
	case buttonUnsubscribe:
		b.handleUnsubscribe(ctx, chatID)
	default:
		b.replyWithKeyboard(chatID, textUnknown)
	}
}

func (b *Bot) handleCommand(ctx context.Context, chatID int64, command, args string) {
	logrus.WithFields(logrus.Fields{
		"chat_id": chatID,
		"command": command,
	}).Debug("Comando recebido")

	switch command {
	case "start":
		b.handleStart(ctx, chatID)
	case "help":
		b.replyWithKeyboard(chatID, textHelp)
	case "check":
		b.handleCheck(ctx, chatID)
	case "subscribe":
		b.handleSubscribe(ctx, chatID)
	case "unsubscribe":
		b.handleUnsubscribe(ctx, chatID)
	case "setid":
		b.handleSetID(ctx, chatID, args)
	case "myid":
		b.handleMyID(ctx, chatID)
	case "stats":
		b.adminOnly(chatID, func() { b.handleStats(ctx, chatID) })
	case "broadcast":
		b.adminOnly(chatID, func() { b.handleBroadcast(ctx, chatID, args) })
	case "token":
		b.adminOnly(chatID, func() { b.handleToken(chatID) })
	default:
		b.replyWithKeyboard(chatID, textUnknown)
	}
}

func (b *Bot) adminOnly(chatID int64, handler func()) {
	if !b.auth.IsAdmin(chatID) {
		logrus.WithField("chat_id", chatID).Warn("Comando administrativo negado")
		b.reply(chatID, textAdminOnly)
		return
	}
	handler()
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) replyWithKeyboard(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = mainKeyboard()
	b.send(msg)
}

func (b *Bot) send(msg tgbotapi.MessageConfig) {
	if _, err := b.api.Send(msg); err != nil {
		logrus.WithError(err).WithField("chat_id", msg.ChatID).Error("Erro ao responder mensagem")
	}
}
