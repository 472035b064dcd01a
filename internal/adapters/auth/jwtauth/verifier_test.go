package jwtauth

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-care-journal/internal/ports/auth"

	"github.com/golang-jwt/jwt/v4"
)

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestVerify(t *testing.T) {
	v, err := NewVerifier("secret")
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}
	ctx := context.Background()

	ok := sign(t, jwt.SigningMethodHS256, []byte("secret"), userClaims{
		Email: "ana@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	claims, err := v.Verify(ctx, ok)
	if err != nil || claims.UserID != "user-1" || claims.Email != "ana@example.com" {
		t.Fatalf("Verify = %+v, %v", claims, err)
	}

	bad := []string{
		"",
		"not-a-jwt",
		sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.RegisteredClaims{Subject: "user-1"}),
		sign(t, jwt.SigningMethodHS256, []byte("secret"), jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))}),
		sign(t, jwt.SigningMethodHS512, []byte("secret"), jwt.RegisteredClaims{Subject: "user-1"}),
		sign(t, jwt.SigningMethodHS256, []byte("secret"), jwt.RegisteredClaims{}),
	}
	for i, tok := range bad {
		if _, err := v.Verify(ctx, tok); !errors.Is(err, auth.ErrUnauthorized) {
			t.Fatalf("case %d: expected ErrUnauthorized, got %v", i, err)
		}
	}
}

func TestNewVerifier_RequiresSecret(t *testing.T) {
	if _, err := NewVerifier(" "); !errors.Is(err, ErrSecretRequired) {
		t.Fatalf("expected ErrSecretRequired, got %v", err)
	}
}
