package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-care-journal/internal/ports/auth"
)

func TestVerify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != userPath || r.Header.Get("apikey") != "anon" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		switch r.Header.Get("Authorization") {
		case "Bearer good":
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "user-1", "email": "ana@example.com"})
		case "Bearer empty":
			_ = json.NewEncoder(w).Encode(map[string]string{})
		case "Bearer broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	v, err := NewVerifier(Config{BaseURL: srv.URL, APIKey: "anon"})
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}
	ctx := context.Background()

	claims, err := v.Verify(ctx, "good")
	if err != nil || claims.UserID != "user-1" || claims.Email != "ana@example.com" {
		t.Fatalf("Verify = %+v, %v", claims, err)
	}
	for _, tok := range []string{"", "expired"} {
		if _, err := v.Verify(ctx, tok); !errors.Is(err, auth.ErrUnauthorized) {
			t.Fatalf("%q: expected ErrUnauthorized, got %v", tok, err)
		}
	}
	for _, tok := range []string{"broken", "empty"} {
		if _, err := v.Verify(ctx, tok); !errors.Is(err, ErrUpstream) {
			t.Fatalf("%q: expected ErrUpstream, got %v", tok, err)
		}
	}
}

func TestNewVerifier_RequiresBaseURL(t *testing.T) {
	if _, err := NewVerifier(Config{}); err == nil {
		t.Fatalf("expected error without base url")
	}
}
