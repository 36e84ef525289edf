package rating

// Valores atuais da página de ranking do ITMO. Qualquer mudança de layout no site
// quebra a extração silenciosamente (snapshot zerado); nesse caso basta ajustar
// estes marcadores via configuração, sem tocar na lógica.
const (
	DefaultEntryClass     = "RatingPage_table__item__qMY0F"
	DefaultPositionClass  = "RatingPage_table__position__uYWvi"
	DefaultContractMarker = "Договор: да"
	DefaultPaidClass      = "RatingPage_table__item_green__InEVk"
	DefaultUnpaidClass    = "RatingPage_table__item_yellow__lbs7n"
)

// Markers descreve a estrutura fixa da página de ranking
type Markers struct {
	// EntryClass identifica o container de cada linha do ranking
	EntryClass string
	// PositionClass identifica o elemento cujo primeiro <span> contém o número do requerimento
	PositionClass string
	// ContractMarker é o texto que indica "possui contrato"
	ContractMarker string
	PaidClass      string
	UnpaidClass    string
}

// DefaultMarkers retorna os marcadores da página atual
func DefaultMarkers() Markers {
	return Markers{
		EntryClass:     DefaultEntryClass,
		PositionClass:  DefaultPositionClass,
		ContractMarker: DefaultContractMarker,
		PaidClass:      DefaultPaidClass,
		UnpaidClass:    DefaultUnpaidClass,
	}
}

// withDefaults preenche marcadores vazios com os valores padrão
func (m Markers) withDefaults() Markers {
	d := DefaultMarkers()
	if m.EntryClass == "" {
		m.EntryClass = d.EntryClass
	}
	if m.PositionClass == "" {
		m.PositionClass = d.PositionClass
	}
	if m.ContractMarker == "" {
		m.ContractMarker = d.ContractMarker
	}
	if m.PaidClass == "" {
		m.PaidClass = d.PaidClass
	}
	if m.UnpaidClass == "" {
		m.UnpaidClass = d.UnpaidClass
	}
	return m
}
