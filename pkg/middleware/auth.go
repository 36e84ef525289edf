package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/itmo-rating-bot/internal/usecases/authenticating"
	"github.com/vfg2006/itmo-rating-bot/pkg/apiErrors"
	"github.com/vfg2006/itmo-rating-bot/pkg/log"
)

type contextKey string

const (
	ContextKeyUser contextKey = "user"
)

// publicPaths não exigem token
var publicPaths = map[string]bool{
	"/healthcheck": true,
	"/metrics":     true,
}

func AuthMiddleware(authService authenticating.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apiErrors.WriteError(w, apiErrors.ErrMissingToken, "Cabeçalho Authorization é obrigatório", nil)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				apiErrors.WriteError(w, apiErrors.ErrMissingToken, "Token Bearer é obrigatório", nil)
				return
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil {
				logger := log.ForContext(r.Context()).WithError(err)
				var authErr *authenticating.AuthError
				if errors.As(err, &authErr) && authErr.ChatID != 0 {
					logger = logger.WithField("chat_id", authErr.ChatID)
				}
				logger.Warn("Token rejeitado")

				writeAuthError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeAuthError(w http.ResponseWriter, err error) {
	if !authenticating.IsAuthorizationError(err) {
		if errors.Is(err, authenticating.ErrAuthDisabled) {
			apiErrors.WriteError(w, apiErrors.ErrUnavailable, "Autenticação não configurada", nil)
			return
		}
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao validar token", nil)
		return
	}

	switch {
	case errors.Is(err, authenticating.ErrExpiredToken):
		apiErrors.WriteError(w, apiErrors.ErrExpiredToken, "Token expirado", nil)
	case errors.Is(err, authenticating.ErrInsufficientPrivilege), errors.Is(err, authenticating.ErrNoAdminPrivileges):
		apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Token inválido", nil)
	}
}
