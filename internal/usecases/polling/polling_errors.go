package polling

import "errors"

// Erros específicos do ciclo de consulta
var (
	// ErrFetchFailed indica que a página não foi obtida; o ciclo é descartado
	ErrFetchFailed = errors.New("falha ao buscar a página de ranking")
	// ErrStoreRead indica falha ao ler os últimos contadores
	ErrStoreRead = errors.New("falha ao ler o histórico de snapshots")
	// ErrStoreAppend indica que o snapshot não foi gravado; nada é notificado
	ErrStoreAppend = errors.New("falha ao gravar o snapshot")
)
