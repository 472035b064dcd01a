package pets

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// Authorizer lo usan los módulos hijos (health, diary, reminders) para validar
// que la mascota existe y pertenece al usuario autenticado.
type Authorizer interface {
	Authorize(ctx context.Context, petID, userID string) (Pet, error)
}

// OwnerOf expone el ownerUserID de una mascota.
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.OwnerUserID, nil
}

// Authorize: solo el dueño accede. Devuelve ErrNotFound o ErrForbidden.
func (s *Service) Authorize(ctx context.Context, petID, userID string) (Pet, error) {
	if strings.TrimSpace(userID) == "" {
		return Pet{}, ErrForbidden
	}
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if p.OwnerUserID != userID {
		return Pet{}, ErrForbidden
	}
	return p, nil
}

// AccessStatus traduce un error de Authorize a status HTTP.
func AccessStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "pet not found"
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest, "invalid pet id"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
