package photos

import (
	"context"
	"errors"
)

// ErrUnavailable se devuelve cuando no hay storage de fotos configurado.
var ErrUnavailable = errors.New("photo storage unavailable")

// Store sube archivos al bucket de fotos y resuelve su URL pública.
type Store interface {
	Upload(ctx context.Context, path, contentType string, data []byte) (publicURL string, err error)
	PublicURL(path string) string
}
