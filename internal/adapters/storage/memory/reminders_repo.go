package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"pet-care-journal/internal/domain/reminders"
)

type reminderRepo struct {
	s *Store
}

func (r *reminderRepo) Create(ctx context.Context, rem reminders.Reminder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(rem.ID) == "" {
		return errors.New("reminder id required")
	}
	if _, ok := r.s.pets[rem.PetID]; !ok {
		return errors.New("pet does not exist")
	}
	if rem.SourceReminderID != "" {
		if _, dup := r.s.successors[rem.SourceReminderID]; dup {
			return reminders.ErrDuplicateSuccessor
		}
		r.s.successors[rem.SourceReminderID] = rem.ID
	}
	r.s.reminders[rem.ID] = rem
	return nil
}

func (r *reminderRepo) GetByID(ctx context.Context, id string) (reminders.Reminder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rem, ok := r.s.reminders[id]
	if !ok {
		return reminders.Reminder{}, reminders.ErrNotFound
	}
	return rem, nil
}

func (r *reminderRepo) ListByPet(ctx context.Context, petID string) ([]reminders.Reminder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]reminders.Reminder, 0)
	for _, rem := range r.s.reminders {
		if rem.PetID == petID {
			out = append(out, rem)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *reminderRepo) Update(ctx context.Context, rem reminders.Reminder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.reminders[rem.ID]
	if !ok {
		return reminders.ErrNotFound
	}
	// source_reminder_id y el estado de completado no se editan aquí
	rem.SourceReminderID = cur.SourceReminderID
	rem.IsCompleted = cur.IsCompleted
	r.s.reminders[rem.ID] = rem
	return nil
}

func (r *reminderRepo) SetCompleted(ctx context.Context, id string, completed bool, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rem, ok := r.s.reminders[id]
	if !ok {
		return reminders.ErrNotFound
	}
	rem.IsCompleted = completed
	rem.UpdatedAt = at
	r.s.reminders[id] = rem
	return nil
}

func (r *reminderRepo) GetSuccessor(ctx context.Context, sourceID string) (reminders.Reminder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.successors[sourceID]
	if !ok {
		return reminders.Reminder{}, reminders.ErrNotFound
	}
	rem, ok := r.s.reminders[id]
	if !ok {
		return reminders.Reminder{}, reminders.ErrNotFound
	}
	return rem, nil
}

func (r *reminderRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rem, ok := r.s.reminders[id]
	if !ok {
		return reminders.ErrNotFound
	}
	delete(r.s.reminders, id)
	if rem.SourceReminderID != "" {
		delete(r.s.successors, rem.SourceReminderID)
	}
	return nil
}
