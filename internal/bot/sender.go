package bot

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/itmo-rating-bot/internal/notifier"
)

// maxRetryAfter limita a espera pedida pelo Telegram em respostas 429
const maxRetryAfter = 30 * time.Second

// Sender entrega as notificações pelo Telegram
type Sender struct {
	api API
}

func NewSender(api API) *Sender {
	return &Sender{api: api}
}

// SendText envia o texto ao chat. Chats que bloquearam o bot ou não existem mais
// retornam notifier.ErrRecipientGone. Um 429 é repetido uma vez após a espera indicada.
func (s *Sender) SendText(ctx context.Context, chatID int64, text string) error {
	err := s.send(chatID, text)

	retryAfter, ok := retryAfterOf(err)
	if !ok {
		return classify(err)
	}

	logrus.WithFields(logrus.Fields{
		"chat_id":     chatID,
		"retry_after": retryAfter,
	}).Warn("Limite do Telegram atingido, aguardando para reenviar")

	timer := time.NewTimer(retryAfter)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	return classify(s.send(chatID, text))
}

func (s *Sender) send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true

	_, err := s.api.Send(msg)
	return err
}

func retryAfterOf(err error) (time.Duration, bool) {
	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) || apiErr.Code != http.StatusTooManyRequests || apiErr.RetryAfter <= 0 {
		return 0, false
	}

	wait := time.Duration(apiErr.RetryAfter) * time.Second
	if wait > maxRetryAfter {
		wait = maxRetryAfter
	}

	return wait, true
}

func classify(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	switch {
	case apiErr.Code == http.StatusForbidden:
		return fmt.Errorf("%w: %s", notifier.ErrRecipientGone, apiErr.Message)
	case apiErr.Code == http.StatusBadRequest && strings.Contains(strings.ToLower(apiErr.Message), "chat not found"):
		return fmt.Errorf("%w: %s", notifier.ErrRecipientGone, apiErr.Message)
	}

	return err
}
