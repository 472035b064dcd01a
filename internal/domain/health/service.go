package health

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("health record not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Date     time.Time
	WeightKg float64
	Notes    string
}

// validWeight: numérico, finito y no negativo.
func validWeight(w float64) bool {
	return !math.IsNaN(w) && !math.IsInf(w, 0) && w >= 0
}

// calendarDay trunca al día usando los campos propios del valor (sin convertir zona).
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (Record, error) {
	if strings.TrimSpace(petID) == "" || in.Date.IsZero() || !validWeight(in.WeightKg) {
		return Record{}, ErrInvalidInput
	}

	now := s.now()
	rec := Record{
		ID:        uuid.NewString(),
		PetID:     petID,
		Date:      calendarDay(in.Date),
		WeightKg:  in.WeightKg,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// GetByID devuelve ErrNotFound si el registro no pertenece a petID.
func (s *Service) GetByID(ctx context.Context, petID, id string) (Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, ErrInvalidInput
	}
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if rec.PetID != petID {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (s *Service) ListByPet(ctx context.Context, petID string, order Order) ([]Record, error) {
	if order == "" {
		order = OrderDateDesc
	}
	return s.repo.ListByPet(ctx, petID, order)
}

type UpdateInput struct {
	Date     *time.Time
	WeightKg *float64
	Notes    *string
}

func (s *Service) Update(ctx context.Context, petID, id string, in UpdateInput) (Record, error) {
	rec, err := s.GetByID(ctx, petID, id)
	if err != nil {
		return Record{}, err
	}

	if in.Date != nil {
		if in.Date.IsZero() {
			return Record{}, ErrInvalidInput
		}
		rec.Date = calendarDay(*in.Date)
	}
	if in.WeightKg != nil {
		if !validWeight(*in.WeightKg) {
			return Record{}, ErrInvalidInput
		}
		rec.WeightKg = *in.WeightKg
	}
	if in.Notes != nil {
		rec.Notes = strings.TrimSpace(*in.Notes)
	}

	rec.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *Service) Delete(ctx context.Context, petID, id string) error {
	if _, err := s.GetByID(ctx, petID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// WeightSeries devuelve los pesos en orden cronológico ascendente.
func (s *Service) WeightSeries(ctx context.Context, petID string) ([]WeightPoint, error) {
	items, err := s.repo.ListByPet(ctx, petID, OrderDateAsc)
	if err != nil {
		return nil, err
	}
	out := make([]WeightPoint, 0, len(items))
	for _, rec := range items {
		out = append(out, WeightPoint{Date: rec.Date, WeightKg: rec.WeightKg})
	}
	return out, nil
}
