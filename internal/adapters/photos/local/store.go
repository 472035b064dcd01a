// Package local guarda las fotos en disco y las sirve bajo un prefijo HTTP.
package local

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DefaultBaseURL es el prefijo con el que el router monta Handler.
const DefaultBaseURL = "/media"

var ErrInvalidPath = errors.New("invalid photo path")

type Store struct {
	dir     string
	baseURL string
}

func New(dir, baseURL string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("photo dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create photo dir: %w", err)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Store{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *Store) Upload(ctx context.Context, p, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	full, err := s.resolve(p)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create photo folder: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write photo: %w", err)
	}
	return s.PublicURL(p), nil
}

func (s *Store) PublicURL(p string) string {
	return s.baseURL + "/" + strings.TrimLeft(p, "/")
}

// Handler sirve los archivos subidos. Se monta con http.StripPrefix.
func (s *Store) Handler() http.Handler {
	return http.FileServer(http.Dir(s.dir))
}

func (s *Store) resolve(p string) (string, error) {
	clean := path.Clean("/" + p)
	if clean == "/" || strings.Contains(p, "..") {
		return "", ErrInvalidPath
	}
	return filepath.Join(s.dir, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}
