package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-care-journal/internal/platform/imaging"
	"pet-care-journal/internal/ports/photos"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
	ErrForbidden    = errors.New("forbidden")
)

type Service struct {
	repo   Repository
	photos photos.Store
	now    func() time.Time
}

// NewService: store puede ser nil (sin fotos de perfil).
func NewService(repo Repository, store photos.Store) *Service {
	return &Service{
		repo:   repo,
		photos: store,
		now:    time.Now,
	}
}

type CreateInput struct {
	Name      string
	Species   string
	Breed     string
	Gender    string
	BirthDate *time.Time
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Species) == "" {
		return Pet{}, ErrInvalidInput
	}
	g := Gender(strings.TrimSpace(in.Gender))
	if !g.Valid() {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		Species:     Species(strings.TrimSpace(in.Species)),
		Breed:       strings.TrimSpace(in.Breed),
		Gender:      g,
		BirthDate:   in.BirthDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// PatchDate distingue "no enviado" (Present=false) de null (Present=true, Value=nil).
type PatchDate struct {
	Present bool
	Value   *time.Time
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	Name      *string
	Species   *string
	Breed     *string
	Gender    *string
	BirthDate PatchDate
}

func (s *Service) Update(ctx context.Context, petID string, in UpdateInput) (Pet, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		if v == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = v
	}
	if in.Species != nil {
		v := strings.TrimSpace(*in.Species)
		if v == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Species = Species(v)
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Gender != nil {
		g := Gender(strings.TrimSpace(*in.Gender))
		if !g.Valid() {
			return Pet{}, ErrInvalidInput
		}
		p.Gender = g
	}
	if in.BirthDate.Present {
		p.BirthDate = in.BirthDate.Value
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Delete borra la mascota y, vía repositorio, todo lo que cuelga de ella.
func (s *Service) Delete(ctx context.Context, petID string) error {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, petID)
}

// SetPhoto sube la foto de perfil y guarda su URL pública.
func (s *Service) SetPhoto(ctx context.Context, petID string, data []byte) (Pet, error) {
	if s.photos == nil {
		return Pet{}, photos.ErrUnavailable
	}
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}

	info, err := imaging.Inspect(data)
	if err != nil {
		return Pet{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	path := fmt.Sprintf("pets/%s/profile-%s%s", p.ID, uuid.NewString(), info.Ext)
	url, err := s.photos.Upload(ctx, path, info.ContentType, data)
	if err != nil {
		return Pet{}, fmt.Errorf("upload pet photo: %w", err)
	}

	p.PhotoURL = url
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}
