package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"pet-care-journal/internal/domain/health"
)

type healthRepo struct {
	s *Store
}

func (r *healthRepo) Create(ctx context.Context, rec health.Record) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("health record id required")
	}
	if _, ok := r.s.pets[rec.PetID]; !ok {
		return errors.New("pet does not exist")
	}
	r.s.health[rec.ID] = rec
	return nil
}

func (r *healthRepo) GetByID(ctx context.Context, id string) (health.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.health[id]
	if !ok {
		return health.Record{}, health.ErrNotFound
	}
	return rec, nil
}

func (r *healthRepo) ListByPet(ctx context.Context, petID string, order health.Order) ([]health.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]health.Record, 0)
	for _, rec := range r.s.health {
		if rec.PetID == petID {
			out = append(out, rec)
		}
	}

	asc := order == health.OrderDateAsc
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date.Equal(b.Date) {
			if asc {
				return a.Date.Before(b.Date)
			}
			return a.Date.After(b.Date)
		}
		if asc {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return out, nil
}

func (r *healthRepo) Update(ctx context.Context, rec health.Record) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.health[rec.ID]; !ok {
		return health.ErrNotFound
	}
	r.s.health[rec.ID] = rec
	return nil
}

func (r *healthRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.health[id]; !ok {
		return health.ErrNotFound
	}
	delete(r.s.health, id)
	return nil
}
