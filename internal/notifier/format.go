package notifier

import (
	"fmt"
	"strings"

	"github.com/vfg2006/itmo-rating-bot/internal/domain"
	"github.com/vfg2006/itmo-rating-bot/internal/rating"
)

// Textos exibidos no Telegram (em russo, como o público do bot)
var counterLabels = map[domain.CounterName]string{
	domain.CounterContract:       "Человек с договорами",
	domain.CounterContractPaid:   "Договоров оплачено",
	domain.CounterContractUnpaid: "Договоров не оплачено",
}

const textCheckHint = "🔍 Свою позицию можно узнать кнопкой «Проверить рейтинг»"

// FormatSnapshot monta a resposta do "verificar ranking"
func FormatSnapshot(s domain.RatingSnapshot) string {
	var b strings.Builder

	b.WriteString("📈 Статистика рейтинга ИТМО\n\n")
	b.WriteString(formatCounters(s))
	b.WriteString("\n")
	b.WriteString(formatPositions(s))

	fmt.Fprintf(&b, "\n🕐 Обновлено: %s", rating.FormatTimestamp(s.Timestamp))

	return b.String()
}

func formatCounters(s domain.RatingSnapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "👥 Всего человек в списке: %d\n", s.TotalPeople)
	fmt.Fprintf(&b, "📝 Человек с договорами: %d\n", s.ContractCount)
	fmt.Fprintf(&b, "💳 Из них оплачено: %d\n", s.ContractPaidCount)
	fmt.Fprintf(&b, "⏳ Из них не оплачено: %d\n", s.ContractUnpaidCount)

	return b.String()
}

func formatPositions(s domain.RatingSnapshot) string {
	var b strings.Builder

	if s.TrackedID == "" {
		b.WriteString("🆔 ID не задан\n")
		return b.String()
	}

	fmt.Fprintf(&b, "🆔 ID: %s\n", s.TrackedID)

	if s.YourPosition == nil {
		b.WriteString("❌ Ваш ID не найден\n")
		return b.String()
	}

	fmt.Fprintf(&b, "🎯 Ваша позиция: %d\n", *s.YourPosition)

	if s.YourContractPosition == nil {
		b.WriteString("💼 У вас нет договора\n")
		return b.String()
	}

	fmt.Fprintf(&b, "💼 Ваша позиция среди договоров: %d\n", *s.YourContractPosition)

	switch {
	case s.YourPaidPosition != nil:
		fmt.Fprintf(&b, "💳 Ваша позиция среди оплаченных: %d\n", *s.YourPaidPosition)
	case s.YourUnpaidPosition != nil:
		fmt.Fprintf(&b, "⏳ Ваша позиция среди неоплаченных: %d\n", *s.YourUnpaidPosition)
	}

	return b.String()
}

// FormatChanges monta a notificação de mudança: os contadores alterados, com
// valor anterior, novo e variação, seguidos dos contadores atuais. A mesma
// mensagem vai para todos os inscritos, então não leva ID nem posições.
func FormatChanges(event domain.PollEvent) string {
	var b strings.Builder

	b.WriteString("🚨 ОБНОВЛЕНИЕ РЕЙТИНГА\n\n")

	for _, name := range domain.CounterNames {
		change, ok := event.Changes[name]
		if !ok {
			continue
		}

		fmt.Fprintf(&b, "📝 %s: %d → %d (%s)\n", counterLabels[name], change.Old, change.New, signed(change.Delta()))
	}

	b.WriteString("\n📈 Статистика рейтинга ИТМО\n\n")
	b.WriteString(formatCounters(event.Snapshot))
	fmt.Fprintf(&b, "\n🕐 Обновлено: %s\n", rating.FormatTimestamp(event.Snapshot.Timestamp))
	b.WriteString(textCheckHint)

	return b.String()
}

func signed(v int) string {
	if v > 0 {
		return fmt.Sprintf("+%d", v)
	}
	return fmt.Sprintf("%d", v)
}
