package subscription

import "errors"

var (
	// ErrInvalidTrackedID indica um número de requerimento fora do formato numérico
	ErrInvalidTrackedID = errors.New("ID de requerimento inválido")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)
