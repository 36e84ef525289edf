package authenticating

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidToken          = errors.New("token inválido")
	ErrExpiredToken          = errors.New("token expirado")
	ErrInsufficientPrivilege = errors.New("privilégios insuficientes")
	ErrNoAdminPrivileges     = errors.New("apenas administradores podem emitir tokens")

	// ErrAuthDisabled indica que AUTH_SECRET não foi configurado
	ErrAuthDisabled = errors.New("autenticação desabilitada: AUTH_SECRET não configurado")
)

// AuthError liga uma recusa ao chat que a causou. ChatID é zero quando o token nem foi lido.
type AuthError struct {
	Err     error
	ChatID  int64
	Details string
}

func (e *AuthError) Error() string {
	msg := e.Err.Error()
	if e.ChatID != 0 {
		msg = fmt.Sprintf("%s (chat %d)", msg, e.ChatID)
	}
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	return msg
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// IsAuthorizationError separa a recusa do token (401/403) de falhas de configuração
func IsAuthorizationError(err error) bool {
	return errors.Is(err, ErrInsufficientPrivilege) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrNoAdminPrivileges)
}

func NewAuthError(baseErr error, details string) *AuthError {
	return &AuthError{Err: baseErr, Details: details}
}

func NewChatAuthError(baseErr error, chatID int64) *AuthError {
	return &AuthError{Err: baseErr, ChatID: chatID}
}
