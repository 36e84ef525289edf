package bot

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

const (
	buttonCheck       = "📊 Проверить рейтинг"
	buttonSubscribe   = "🔔 Подписаться на уведомления"
	buttonUnsubscribe = "🔕 Отписаться от уведомлений"
)

func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(buttonCheck)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(buttonSubscribe)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(buttonUnsubscribe)),
	)
}
