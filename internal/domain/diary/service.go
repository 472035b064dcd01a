package diary

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
	ErrNotFound     = errors.New("diary entry not found")
)

// MaxPhotosPerEntry limita photo_urls por entrada.
const MaxPhotosPerEntry = 20

type Service struct {
	repo   Repository
	photos photos.Store
	now    func() time.Time
}

// NewService: store puede ser nil; UploadPhoto devuelve photos.ErrUnavailable.
func NewService(repo Repository, store photos.Store) *Service {
	return &Service{
		repo:   repo,
		photos: store,
		now:    time.Now,
	}
}

type CreateInput struct {
	Date      time.Time
	Content   string
	PhotoURLs []string
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func cleanURLs(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	for _, u := range in {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		out = append(out, u)
	}
	if len(out) > MaxPhotosPerEntry {
		return nil, ErrInvalidInput
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (Entry, error) {
	if strings.TrimSpace(petID) == "" || in.Date.IsZero() || strings.TrimSpace(in.Content) == "" {
		return Entry{}, ErrInvalidInput
	}
	urls, err := cleanURLs(in.PhotoURLs)
	if err != nil {
		return Entry{}, err
	}

	now := s.now()
	e := Entry{
		ID:        uuid.NewString(),
		PetID:     petID,
		Date:      calendarDay(in.Date),
		Content:   strings.TrimSpace(in.Content),
		PhotoURLs: urls,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// GetByID devuelve ErrNotFound si la entrada no pertenece a petID.
func (s *Service) GetByID(ctx context.Context, petID, id string) (Entry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Entry{}, ErrInvalidInput
	}
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Entry{}, err
	}
	if e.PetID != petID {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Entry, error) {
	return s.repo.ListByPet(ctx, petID)
}

// UpdateInput: nil = no tocar. PhotoURLs reemplaza la lista completa.
type UpdateInput struct {
	Date      *time.Time
	Content   *string
	PhotoURLs *[]string
}

func (s *Service) Update(ctx context.Context, petID, id string, in UpdateInput) (Entry, error) {
	e, err := s.GetByID(ctx, petID, id)
	if err != nil {
		return Entry{}, err
	}

	if in.Date != nil {
		if in.Date.IsZero() {
			return Entry{}, ErrInvalidInput
		}
		e.Date = calendarDay(*in.Date)
	}
	if in.Content != nil {
		c := strings.TrimSpace(*in.Content)
		if c == "" {
			return Entry{}, ErrInvalidInput
		}
		e.Content = c
	}
	if in.PhotoURLs != nil {
		urls, err := cleanURLs(*in.PhotoURLs)
		if err != nil {
			return Entry{}, err
		}
		e.PhotoURLs = urls
	}

	e.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, petID, id string) error {
	if _, err := s.GetByID(ctx, petID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// UploadPhoto guarda la imagen en pets/<petID>/<yyyymmdd>-<uuid><ext> y devuelve su URL
// pública. La URL se agrega luego a una entrada vía Create/Update.
func (s *Service) UploadPhoto(ctx context.Context, petID string, data []byte) (string, error) {
	if s.photos == nil {
		return "", photos.ErrUnavailable
	}
	if strings.TrimSpace(petID) == "" {
		return "", ErrInvalidInput
	}

	info, err := imaging.Inspect(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	path := fmt.Sprintf("pets/%s/%s-%s%s", petID, s.now().Format("20060102"), uuid.NewString(), info.Ext)
	url, err := s.photos.Upload(ctx, path, info.ContentType, data)
	if err != nil {
		return "", fmt.Errorf("upload diary photo: %w", err)
	}
	return url, nil
}

// Calendar devuelve los badges del mes para la mascota.
func (s *Service) Calendar(ctx context.Context, petID string, year int, month time.Month) ([]Summary, error) {
	entries, err := s.repo.ListByPet(ctx, petID)
	if err != nil {
		return nil, err
	}
	return MonthSummaries(entries, year, month), nil
}

// Day devuelve las entradas de un día (detalle bajo el calendario).
func (s *Service) Day(ctx context.Context, petID string, day DayKey) ([]Entry, error) {
	entries, err := s.repo.ListByPet(ctx, petID)
	if err != nil {
		return nil, err
	}
	return DayDetail(entries, day), nil
}
