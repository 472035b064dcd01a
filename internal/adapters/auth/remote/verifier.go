// Package remote valida el token contra el endpoint de usuario del proveedor de identidad.
package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-care-journal/internal/platform/httpclient"
	"pet-care-journal/internal/ports/auth"
)

var ErrUpstream = errors.New("identity provider upstream error")

const userPath = "/auth/v1/user"

// Config del verificador. APIKey es la clave pública del proyecto (header "apikey").
type Config struct {
	BaseURL string
	APIKey  string

	// Opcional: nombre del header donde se manda la API key.
	// Si está vacío, se usa "apikey".
	APIKeyHeader string

	Timeout time.Duration
}

type Verifier struct {
	client *httpclient.Client
}

func NewVerifier(cfg Config) (*Verifier, error) {
	c, err := httpclient.New(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	if c.BaseURL == "" {
		return nil, errors.New("identity provider base url is required")
	}

	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "apikey"
	}
	if key := strings.TrimSpace(cfg.APIKey); key != "" {
		c.DefaultHeaders[h] = key
	}
	return &Verifier{client: c}, nil
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, auth.ErrUnauthorized
	}

	var out userResponse
	err := v.client.DoJSON(ctx, http.MethodGet, userPath, map[string]string{
		"Authorization": "Bearer " + token,
	}, nil, &out)
	if err != nil {
		switch httpclient.StatusCode(err) {
		case http.StatusUnauthorized, http.StatusForbidden:
			return auth.Claims{}, auth.ErrUnauthorized
		default:
			return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
	}

	out.ID = strings.TrimSpace(out.ID)
	if out.ID == "" {
		return auth.Claims{}, fmt.Errorf("%w: response missing user id", ErrUpstream)
	}
	return auth.Claims{UserID: out.ID, Email: strings.TrimSpace(out.Email)}, nil
}
