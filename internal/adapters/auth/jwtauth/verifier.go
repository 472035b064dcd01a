// Package jwtauth verifica access tokens HS256 firmados por el proveedor de identidad
// con el secreto compartido del proyecto.
package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-care-journal/internal/ports/auth"

	"github.com/golang-jwt/jwt/v4"
)

var ErrSecretRequired = errors.New("jwt secret is required")

type userClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Verifier implementa auth.AuthVerifier. El user id sale de "sub".
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewVerifier(secret string) (*Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrSecretRequired
	}
	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}, nil
}

func (v *Verifier) keyFunc(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return v.secret, nil
}

func (v *Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, auth.ErrUnauthorized
	}

	var c userClaims
	t, err := v.parser.ParseWithClaims(token, &c, v.keyFunc)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrUnauthorized, err)
	}
	if !t.Valid {
		return auth.Claims{}, auth.ErrUnauthorized
	}

	sub := strings.TrimSpace(c.Subject)
	if sub == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing sub", auth.ErrUnauthorized)
	}
	return auth.Claims{UserID: sub, Email: strings.TrimSpace(c.Email)}, nil
}
