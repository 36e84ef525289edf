package rating

import "github.com/vfg2006/itmo-rating-bot/internal/domain"

// Diff compara os contadores anteriores com o snapshot atual.
// Sem histórico (previous nil) não há mudança a notificar. total_people e as
// posições nunca entram na comparação.
func Diff(previous *domain.Counters, current domain.RatingSnapshot) domain.ChangeSet {
	changes := domain.ChangeSet{}
	if previous == nil {
		return changes
	}

	compare(changes, domain.CounterContract, previous.ContractCount, current.ContractCount)

	// registros antigos não têm a divisão pago/não pago
	if previous.SubtypesMissing {
		return changes
	}

	compare(changes, domain.CounterContractPaid, previous.ContractPaidCount, current.ContractPaidCount)
	compare(changes, domain.CounterContractUnpaid, previous.ContractUnpaidCount, current.ContractUnpaidCount)

	return changes
}

func compare(changes domain.ChangeSet, name domain.CounterName, oldValue, newValue int) {
	if oldValue == newValue {
		return
	}

	changes[name] = domain.CounterChange{Old: oldValue, New: newValue}
}
