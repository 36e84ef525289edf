// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

// RatingSnapshot é uma leitura completa da página de ranking em um instante.
// Os campos Your* são nil quando o ID acompanhado não foi informado ou não foi encontrado.
type RatingSnapshot struct {
	ID                   int64     `json:"id,omitempty"`
	RunID                string    `json:"run_id,omitempty"`
	TotalPeople          int       `json:"total_people"`
	ContractCount        int       `json:"contract_count"`
	ContractPaidCount    int       `json:"contract_paid_count"`
	ContractUnpaidCount  int       `json:"contract_unpaid_count"`
	TrackedID            string    `json:"tracked_id,omitempty"`
	YourPosition         *int      `json:"your_position"`
	YourContractPosition *int      `json:"your_contract_position"`
	YourPaidPosition     *int      `json:"your_paid_position"`
	YourUnpaidPosition   *int      `json:"your_unpaid_position"`
	Timestamp            time.Time `json:"timestamp"`
}

// Counters retorna os três contadores usados na comparação entre snapshots
func (s RatingSnapshot) Counters() Counters {
	return Counters{
		ContractCount:       s.ContractCount,
		ContractPaidCount:   s.ContractPaidCount,
		ContractUnpaidCount: s.ContractUnpaidCount,
	}
}

// Counters são os últimos valores conhecidos dos contadores de contrato.
// SubtypesMissing indica um registro antigo, gravado antes da divisão pago/não pago.
type Counters struct {
	ContractCount       int  `json:"contract_count"`
	ContractPaidCount   int  `json:"contract_paid_count"`
	ContractUnpaidCount int  `json:"contract_unpaid_count"`
	SubtypesMissing     bool `json:"subtypes_missing,omitempty"`
}

// CounterName identifica um contador comparável
type CounterName string

const (
	CounterContract       CounterName = "contract_count"
	CounterContractPaid   CounterName = "contract_paid_count"
	CounterContractUnpaid CounterName = "contract_unpaid_count"
)

// CounterNames lista os contadores na ordem de exibição
var CounterNames = []CounterName{
	CounterContract,
	CounterContractPaid,
	CounterContractUnpaid,
}

// CounterChange guarda o valor anterior e o novo de um contador
type CounterChange struct {
	Old int `json:"old"`
	New int `json:"new"`
}

// Delta retorna a variação do contador (positivo = aumentou)
func (c CounterChange) Delta() int {
	return c.New - c.Old
}

// ChangeSet contém apenas os contadores cujo valor mudou
type ChangeSet map[CounterName]CounterChange

// IsEmpty indica que nenhuma notificação deve ser enviada
func (c ChangeSet) IsEmpty() bool {
	return len(c) == 0
}
