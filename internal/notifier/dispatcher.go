// Package notifier entrega as notificações de mudança aos inscritos
package notifier

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/itmo-rating-bot/internal/config"
	"github.com/vfg2006/itmo-rating-bot/internal/domain"
	"github.com/vfg2006/itmo-rating-bot/internal/metrics"
	"github.com/vfg2006/itmo-rating-bot/internal/usecases/subscription"
	"github.com/vfg2006/itmo-rating-bot/pkg/utils"
	"golang.org/x/time/rate"
)

//go:generate mockgen -source=dispatcher.go -destination=mocks/mock_dispatcher.go -package=mocks

// ErrRecipientGone indica que o chat não aceita mais mensagens (bot bloqueado ou chat removido)
var ErrRecipientGone = errors.New("destinatário indisponível")

// Sender envia uma mensagem de texto para um chat
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// Broadcaster envia um texto livre a todos os chats conhecidos
type Broadcaster interface {
	Broadcast(ctx context.Context, text string) (Report, error)
}

// Report resume uma rodada de envios
type Report struct {
	BatchID    string `json:"batch_id"`
	Recipients int    `json:"recipients"`
	Sent       int    `json:"sent"`
	Failed     int    `json:"failed"`
}

type Dispatcher struct {
	sender        Sender
	subscriptions subscription.Manager
	metrics       *metrics.Metrics
	limiter       *rate.Limiter
}

func NewDispatcher(
	sender Sender,
	subscriptions subscription.Manager,
	m *metrics.Metrics,
	cfg *config.Config,
) *Dispatcher {
	limit := rate.Inf
	if cfg.Telegram.SendIntervalMilliseconds > 0 {
		limit = rate.Every(time.Duration(cfg.Telegram.SendIntervalMilliseconds) * time.Millisecond)
	}

	return &Dispatcher{
		sender:        sender,
		subscriptions: subscriptions,
		metrics:       m,
		limiter:       rate.NewLimiter(limit, 1),
	}
}

// Run consome os eventos até o contexto ser cancelado ou o canal fechado
func (d *Dispatcher) Run(ctx context.Context, events <-chan domain.PollEvent) {
	logrus.Info("Despachante de notificações iniciado")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Parando despachante de notificações")
			return
		case event, ok := <-events:
			if !ok {
				logrus.Info("Canal de eventos fechado, parando despachante de notificações")
				return
			}

			if _, err := d.Notify(ctx, event); err != nil {
				logrus.WithError(err).WithField("run_id", event.RunID).Error("Erro ao notificar inscritos")
			}
		}
	}
}

// Notify envia a notificação do evento a todos os inscritos
func (d *Dispatcher) Notify(ctx context.Context, event domain.PollEvent) (Report, error) {
	if event.Changes.IsEmpty() {
		return Report{}, nil
	}

	chatIDs, err := d.subscriptions.SubscribedChatIDs(ctx)
	if err != nil {
		return Report{}, err
	}

	report := d.deliver(ctx, chatIDs, FormatChanges(event))

	logrus.WithFields(logrus.Fields{
		"run_id":     event.RunID,
		"batch_id":   report.BatchID,
		"recipients": report.Recipients,
		"sent":       report.Sent,
		"failed":     report.Failed,
	}).Info("Notificação de mudança enviada")

	return report, nil
}

// Broadcast envia um texto livre a todos os chats conhecidos
func (d *Dispatcher) Broadcast(ctx context.Context, text string) (Report, error) {
	chatIDs, err := d.subscriptions.AllChatIDs(ctx)
	if err != nil {
		return Report{}, err
	}

	report := d.deliver(ctx, chatIDs, text)

	logrus.WithFields(logrus.Fields{
		"batch_id":   report.BatchID,
		"recipients": report.Recipients,
		"sent":       report.Sent,
		"failed":     report.Failed,
	}).Info("Mensagem de broadcast enviada")

	return report, nil
}

// deliver envia em sequência, respeitando o intervalo entre mensagens. Falha em um
// destinatário é registrada e não interrompe os demais.
func (d *Dispatcher) deliver(ctx context.Context, chatIDs []int64, text string) Report {
	batchID, _ := utils.GenerateID()
	report := Report{BatchID: batchID, Recipients: len(chatIDs)}

	for i, chatID := range chatIDs {
		if err := d.limiter.Wait(ctx); err != nil {
			// contexto encerrado: os restantes contam como falha
			remaining := len(chatIDs) - i
			report.Failed += remaining
			for j := 0; j < remaining; j++ {
				d.metrics.NotificationFailed()
			}
			logrus.WithError(err).WithField("pending", remaining).Warn("Envio interrompido")
			return report
		}

		if err := d.sender.SendText(ctx, chatID, text); err != nil {
			report.Failed++
			d.metrics.NotificationFailed()
			d.handleFailure(ctx, chatID, err)
			continue
		}

		report.Sent++
		d.metrics.NotificationSent()
	}

	return report
}

func (d *Dispatcher) handleFailure(ctx context.Context, chatID int64, err error) {
	logger := logrus.WithError(err).WithField("chat_id", chatID)

	if !errors.Is(err, ErrRecipientGone) {
		logger.Warn("Erro ao enviar mensagem")
		return
	}

	logger.Info("Chat indisponível, removendo inscrição")
	if err := d.subscriptions.Unsubscribe(ctx, chatID); err != nil {
		logger.WithError(err).Error("Erro ao remover inscrição de chat indisponível")
	}
}
