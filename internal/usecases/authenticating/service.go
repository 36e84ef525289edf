// Package authenticating emite e valida os tokens da API administrativa.
// Um token só é emitido para chats listados em TELEGRAM_ADMIN_IDS.
package authenticating

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/itmo-rating-bot/internal/config"
	"github.com/vfg2006/itmo-rating-bot/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

type Authenticator interface {
	IssueToken(chatID int64) (string, time.Time, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	IsAdmin(chatID int64) bool
}

type Service struct {
	cfg *config.Config
	now func() time.Time
}

func NewService(cfg *config.Config) Authenticator {
	return &Service{
		cfg: cfg,
		now: time.Now,
	}
}

func (s *Service) IsAdmin(chatID int64) bool {
	return s.cfg.Telegram.IsAdmin(chatID)
}

// IssueToken gera um token de administrador para o chat
func (s *Service) IssueToken(chatID int64) (string, time.Time, error) {
	if s.cfg.Auth.Secret == "" {
		return "", time.Time{}, ErrAuthDisabled
	}

	if !s.IsAdmin(chatID) {
		return "", time.Time{}, NewChatAuthError(ErrNoAdminPrivileges, chatID)
	}

	expiresAt := s.now().Add(time.Duration(s.cfg.Auth.TokenTTLHours) * time.Hour)

	token, err := generateJWT(chatID, expiresAt, s.now(), s.cfg.Auth.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("erro ao assinar token: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"chat_id":    chatID,
		"expires_at": expiresAt.Format(time.RFC3339),
	}).Info("Token administrativo emitido")

	return token, expiresAt, nil
}

func generateJWT(chatID int64, expiresAt, issuedAt time.Time, secretKey string) (string, error) {
	claims := domain.Claims{
		ChatID: chatID,
		Admin:  true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(chatID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	if s.cfg.Auth.Secret == "" {
		return nil, ErrAuthDisabled
	}

	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, err.Error())
		}
		return nil, NewAuthError(ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	// o chat pode ter sido removido da lista de administradores depois da emissão
	if !claims.Admin || !s.IsAdmin(claims.ChatID) {
		return nil, NewChatAuthError(ErrInsufficientPrivilege, claims.ChatID)
	}

	return claims, nil
}
