package domain

import "github.com/golang-jwt/jwt/v5"

// Claims são os dados do token de acesso à API administrativa
type Claims struct {
	ChatID int64 `json:"chat_id"`
	Admin  bool  `json:"admin"`
	jwt.RegisteredClaims
}
