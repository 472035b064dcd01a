package auth

import "errors"

// ErrUnauthorized: token ausente, inválido o vencido.
var ErrUnauthorized = errors.New("unauthorized")

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
}
