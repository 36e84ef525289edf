package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/itmo-rating-bot/internal/domain"
	"github.com/vfg2006/itmo-rating-bot/internal/notifier"
	"github.com/vfg2006/itmo-rating-bot/internal/rating"
	"github.com/vfg2006/itmo-rating-bot/internal/usecases/subscription"
)

const (
	textGreeting = "👋 Привет! Я бот для отслеживания рейтинга ИТМО.\n\n" +
		"Доступные команды:\n" +
		"📊 Проверить рейтинг - текущая статистика\n" +
		"🔔 Подписаться на уведомления - получать уведомления об изменениях\n" +
		"🔕 Отписаться от уведомлений - отключить уведомления"
	textHelp = textGreeting + "\n\n" +
		"/setid <ID> - отслеживать другой ID (без аргумента - ID по умолчанию)\n" +
		"/myid - показать отслеживаемый ID"
	textUnknown         = "🤔 Не понимаю. Воспользуйтесь кнопками меню или /help."
	textParsing         = "🔄 Парсинг данных, подождите..."
	textParseError      = "❌ Ошибка при парсинге данных. Попробуйте позже."
	textInternalError   = "❌ Что-то пошло не так. Попробуйте позже."
	textSubscribed      = "✅ Вы подписались на уведомления!"
	textAlreadySub      = "ℹ️ Вы уже подписаны на уведомления."
	textUnsubscribed    = "✅ Вы отписались от уведомлений."
	textNotSubscribed   = "ℹ️ Вы не подписаны на уведомления."
	textInvalidID       = "❌ ID должен состоять только из цифр (не более 20 символов)."
	textAdminOnly       = "⛔ Команда доступна только администраторам."
	textBroadcastUsage  = "ℹ️ Использование: /broadcast <текст сообщения>"
	textTrackedIDFormat = "🆔 Отслеживаемый ID: %s"
)

func (b *Bot) handleStart(ctx context.Context, chatID int64) {
	if err := b.subscriptions.Register(ctx, chatID); err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Erro ao registrar chat")
	}

	b.replyWithKeyboard(chatID, textGreeting)
}

// handleCheck executa um ciclo com o ID do chat e responde com o snapshot obtido
func (b *Bot) handleCheck(ctx context.Context, chatID int64) {
	b.reply(chatID, textParsing)

	trackedID, err := b.subscriptions.TrackedID(ctx, chatID)
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Erro ao buscar ID acompanhado")
		b.reply(chatID, textInternalError)
		return
	}

	event, err := b.poller.RunCycle(ctx, trackedID, domain.PollTriggerUser)
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Erro na consulta solicitada pelo usuário")
		b.reply(chatID, textParseError)
		return
	}

	b.reply(chatID, notifier.FormatSnapshot(event.Snapshot))
}

func (b *Bot) handleSubscribe(ctx context.Context, chatID int64) {
	subscribed, err := b.subscriptions.IsSubscribed(ctx, chatID)
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Erro ao verificar inscrição")
		b.reply(chatID, textInternalError)
		return
	}

	if subscribed {
		b.reply(chatID, textAlreadySub)
		return
	}

	if err := b.subscriptions.Subscribe(ctx, chatID); err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Erro ao inscrever chat")
		b.reply(chatID, textInternalError)
		return
	}

	b.reply(chatID, textSubscribed)
}

func (b *Bot) handleUnsubscribe(ctx context.Context, chatID int64) {
	subscribed, err := b.subscriptions.IsSubscribed(ctx, chatID)
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Erro ao verificar inscrição")
		b.reply(chatID, textInternalError)
		return
	}

	if !subscribed {
		b.reply(chatID, textNotSubscribed)
		return
	}

	if err := b.subscriptions.Unsubscribe(ctx, chatID); err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Erro ao remover inscrição")
		b.reply(chatID, textInternalError)
		return
	}

	b.reply(chatID, textUnsubscribed)
}

// handleSetID troca o ID acompanhado pelo chat; sem argumento volta ao padrão
func (b *Bot) handleSetID(ctx context.Context, chatID int64, args string) {
	err := b.subscriptions.SetTrackedID(ctx, chatID, args)
	if errors.Is(err, subscription.ErrInvalidTrackedID) {
		b.reply(chatID, textInvalidID)
		return
	}
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Erro ao definir ID acompanhado")
		b.reply(chatID, textInternalError)
		return
	}

	b.handleMyID(ctx, chatID)
}

func (b *Bot) handleMyID(ctx context.Context, chatID int64) {
	trackedID, err := b.subscriptions.TrackedID(ctx, chatID)
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Erro ao buscar ID acompanhado")
		b.reply(chatID, textInternalError)
		return
	}

	if trackedID == "" {
		trackedID = "не задан"
	}

	b.reply(chatID, fmt.Sprintf(textTrackedIDFormat, trackedID))
}

func (b *Bot) handleStats(ctx context.Context, chatID int64) {
	stats, err := b.subscriptions.Stats(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao calcular estatísticas")
		b.reply(chatID, textInternalError)
		return
	}

	b.reply(chatID, formatStats(stats))
}

func (b *Bot) handleBroadcast(ctx context.Context, chatID int64, args string) {
	text := strings.TrimSpace(args)
	if text == "" {
		b.reply(chatID, textBroadcastUsage)
		return
	}

	report, err := b.broadcaster.Broadcast(ctx, text)
	if err != nil {
		logrus.WithError(err).Error("Erro ao enviar broadcast")
		b.reply(chatID, textInternalError)
		return
	}

	b.reply(chatID, fmt.Sprintf("📣 Отправлено: %d из %d (ошибок: %d)", report.Sent, report.Recipients, report.Failed))
}

func (b *Bot) handleToken(chatID int64) {
	token, expiresAt, err := b.auth.IssueToken(chatID)
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Erro ao emitir token")
		b.reply(chatID, textInternalError)
		return
	}

	b.reply(chatID, fmt.Sprintf("🔑 Токен для API (действует до %s):\n\n%s", rating.FormatTimestamp(expiresAt), token))
}

func formatStats(stats *domain.Stats) string {
	var sb strings.Builder

	sb.WriteString("📊 Статистика бота\n\n")
	fmt.Fprintf(&sb, "👥 Пользователей: %d\n", stats.TotalUsers)
	fmt.Fprintf(&sb, "🔔 Подписчиков: %d\n", stats.Subscribers)
	fmt.Fprintf(&sb, "🗂 Снимков рейтинга: %d\n", stats.Snapshots)

	if stats.LastSnapshotAt != nil {
		fmt.Fprintf(&sb, "🕐 Последний снимок: %s\n", rating.FormatTimestamp(*stats.LastSnapshotAt))
	}
	if stats.LastTotalPeople != nil {
		fmt.Fprintf(&sb, "📈 Человек в последнем снимке: %d\n", *stats.LastTotalPeople)
	}

	return sb.String()
}
