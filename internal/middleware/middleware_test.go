package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pet-care-journal/internal/platform/logger"
	"pet-care-journal/internal/ports/auth"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if token == "good" {
		return auth.Claims{UserID: "user-1"}, nil
	}
	return auth.Claims{}, auth.ErrUnauthorized
}

func whoAmI(w http.ResponseWriter, r *http.Request) {
	c, ok := GetClaims(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	_, _ = w.Write([]byte(c.UserID))
}

func TestAuthContext_DevMode(t *testing.T) {
	h := AuthContext(nil)(http.HandlerFunc(whoAmI))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(DebugUserHeader, "dev-user")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "dev-user" {
		t.Fatalf("dev header: status=%d body=%q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected no claims without header, got %d", rec.Code)
	}
}

func TestAuthContext_Verifier(t *testing.T) {
	h := AuthContext(stubVerifier{})(http.HandlerFunc(whoAmI))

	cases := map[string]int{
		"Bearer good": http.StatusOK,
		"bearer good": http.StatusOK,
		"Bearer bad":  http.StatusUnauthorized,
		"Basic good":  http.StatusUnauthorized,
		"":            http.StatusUnauthorized,
	}
	for header, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		// El header de debug se ignora si hay verifier.
		req.Header.Set(DebugUserHeader, "intruder")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Fatalf("%q: expected %d, got %d", header, want, rec.Code)
		}
	}
}

func TestRequestLoggerAndRecover(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatText, Output: &buf, Now: func() time.Time { return time.Unix(0, 0) }})

	h := chimw.RequestID(RequestLogger(log)(Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(errors.New("boom"))
	}))))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pets", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	out := buf.String()
	for _, want := range []string{"panic recovered", "request_id=", "status=500", "path=/pets"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}
