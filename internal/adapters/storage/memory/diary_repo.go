package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"pet-care-journal/internal/domain/diary"
)

type diaryRepo struct {
	s *Store
}

// cloneEntry evita compartir el slice de fotos con el llamador.
func cloneEntry(e diary.Entry) diary.Entry {
	e.PhotoURLs = append([]string(nil), e.PhotoURLs...)
	return e
}

func (r *diaryRepo) Create(ctx context.Context, e diary.Entry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("diary entry id required")
	}
	if _, ok := r.s.pets[e.PetID]; !ok {
		return errors.New("pet does not exist")
	}
	r.s.diary[e.ID] = cloneEntry(e)
	return nil
}

func (r *diaryRepo) GetByID(ctx context.Context, id string) (diary.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.diary[id]
	if !ok {
		return diary.Entry{}, diary.ErrNotFound
	}
	return cloneEntry(e), nil
}

func (r *diaryRepo) ListByPet(ctx context.Context, petID string) ([]diary.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]diary.Entry, 0)
	for _, e := range r.s.diary {
		if e.PetID == petID {
			out = append(out, cloneEntry(e))
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *diaryRepo) Update(ctx context.Context, e diary.Entry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.diary[e.ID]; !ok {
		return diary.ErrNotFound
	}
	r.s.diary[e.ID] = cloneEntry(e)
	return nil
}

func (r *diaryRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.diary[id]; !ok {
		return diary.ErrNotFound
	}
	delete(r.s.diary, id)
	return nil
}
