package reminders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"pet-care-journal/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("reminder not found")

	// ErrDuplicateSuccessor lo devuelve el repositorio cuando ya existe el siguiente
	// recordatorio de una misma fuente.
	ErrDuplicateSuccessor = errors.New("successor reminder already exists")
	// ErrToggleInFlight: hay otro toggle del mismo recordatorio en curso.
	ErrToggleInFlight = errors.New("reminder toggle already in progress")
	// ErrPartialRollover: el flag quedó actualizado pero no se creó el siguiente.
	ErrPartialRollover = errors.New("reminder completed but next occurrence was not created")
)

// RolloverError describe la inconsistencia recuperable del toggle: Reminder ya está
// completado en el store y no se revierte.
type RolloverError struct {
	Reminder Reminder
	Err      error
}

func (e *RolloverError) Error() string {
	return fmt.Sprintf("reminder %s: %v: %v", e.Reminder.ID, ErrPartialRollover, e.Err)
}

func (e *RolloverError) Unwrap() []error {
	return []error{ErrPartialRollover, e.Err}
}

type Service struct {
	repo     Repository
	log      logger.Logger
	now      func() time.Time
	inflight *inflightSet
}

func NewService(repo Repository, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:     repo,
		log:      log,
		now:      time.Now,
		inflight: &inflightSet{ids: map[string]struct{}{}},
	}
}

// Now expone el reloj del servicio (los handlers calculan is_overdue con él).
func (s *Service) Now() time.Time { return s.now() }

type CreateInput struct {
	Title          string
	Description    string
	DueDate        time.Time
	RepeatInterval string
}

func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (Reminder, error) {
	if strings.TrimSpace(petID) == "" || strings.TrimSpace(in.Title) == "" || in.DueDate.IsZero() {
		return Reminder{}, ErrInvalidInput
	}
	interval, ok := ParseRepeatInterval(in.RepeatInterval)
	if !ok {
		return Reminder{}, ErrInvalidInput
	}

	now := s.now()
	r := Reminder{
		ID:             uuid.NewString(),
		PetID:          petID,
		Title:          strings.TrimSpace(in.Title),
		Description:    strings.TrimSpace(in.Description),
		DueDate:        dayOf(in.DueDate),
		RepeatInterval: interval,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return Reminder{}, err
	}
	return r, nil
}

// GetByID devuelve ErrNotFound si el recordatorio no pertenece a petID.
func (s *Service) GetByID(ctx context.Context, petID, id string) (Reminder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Reminder{}, ErrInvalidInput
	}
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Reminder{}, err
	}
	if r.PetID != petID {
		return Reminder{}, ErrNotFound
	}
	return r, nil
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Reminder, error) {
	return s.repo.ListByPet(ctx, petID)
}

// UpdateInput: nil = no tocar. La compleción solo cambia vía ToggleCompletion.
type UpdateInput struct {
	Title          *string
	Description    *string
	DueDate        *time.Time
	RepeatInterval *string
}

func (s *Service) Update(ctx context.Context, petID, id string, in UpdateInput) (Reminder, error) {
	r, err := s.GetByID(ctx, petID, id)
	if err != nil {
		return Reminder{}, err
	}

	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return Reminder{}, ErrInvalidInput
		}
		r.Title = t
	}
	if in.Description != nil {
		r.Description = strings.TrimSpace(*in.Description)
	}
	if in.DueDate != nil {
		if in.DueDate.IsZero() {
			return Reminder{}, ErrInvalidInput
		}
		r.DueDate = dayOf(*in.DueDate)
	}
	if in.RepeatInterval != nil {
		interval, ok := ParseRepeatInterval(*in.RepeatInterval)
		if !ok {
			return Reminder{}, ErrInvalidInput
		}
		r.RepeatInterval = interval
	}

	r.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, r); err != nil {
		return Reminder{}, err
	}
	return r, nil
}

func (s *Service) Delete(ctx context.Context, petID, id string) error {
	if _, err := s.GetByID(ctx, petID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ToggleResult es el estado tras un toggle. Reminders es la colección refrescada de la mascota.
type ToggleResult struct {
	Reminder  Reminder
	Successor *Reminder
	Reminders []Reminder
}

// ToggleCompletion invierte IsCompleted. Si el recordatorio pasa de pendiente a completado y
// es recurrente, inserta el siguiente con DueDate = Advance(DueDate, RepeatInterval).
//
// Update e insert no son atómicos: si el insert falla, el flag ya quedó actualizado y se
// devuelve *RolloverError. La clave única sobre SourceReminderID hace que repetir la
// compleción reutilice el siguiente existente en vez de duplicarlo.
func (s *Service) ToggleCompletion(ctx context.Context, petID, id string) (ToggleResult, error) {
	if !s.inflight.acquire(id) {
		return ToggleResult{}, ErrToggleInFlight
	}
	defer s.inflight.release(id)

	r, err := s.GetByID(ctx, petID, id)
	if err != nil {
		return ToggleResult{}, err
	}

	log := logger.FromContext(ctx, s.log).With(logger.Fields{"reminder_id": r.ID, "pet_id": r.PetID})

	wasCompleted := r.IsCompleted
	now := s.now()
	if err := s.repo.SetCompleted(ctx, r.ID, !wasCompleted, now); err != nil {
		return ToggleResult{}, fmt.Errorf("set completed: %w", err)
	}
	r.IsCompleted = !wasCompleted
	r.UpdatedAt = now

	res := ToggleResult{Reminder: r}

	if !wasCompleted && r.RepeatInterval.Recurring() {
		next, err := s.rollover(ctx, log, r, now)
		if err != nil {
			log.Error("reminder rollover failed; completion kept", logger.Fields{"err": err})
			return res, &RolloverError{Reminder: r, Err: err}
		}
		res.Successor = &next
	}

	items, err := s.repo.ListByPet(ctx, r.PetID)
	if err != nil {
		return res, fmt.Errorf("refresh reminders: %w", err)
	}
	res.Reminders = items

	log.Info("reminder toggled", logger.Fields{"completed": r.IsCompleted, "rolled_over": res.Successor != nil})
	return res, nil
}

func (s *Service) rollover(ctx context.Context, log logger.Logger, done Reminder, now time.Time) (Reminder, error) {
	next := Reminder{
		ID:               uuid.NewString(),
		PetID:            done.PetID,
		Title:            done.Title,
		Description:      done.Description,
		DueDate:          Advance(done.DueDate, done.RepeatInterval),
		RepeatInterval:   done.RepeatInterval,
		IsCompleted:      false,
		SourceReminderID: done.ID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err := s.repo.Create(ctx, next)
	if err == nil {
		return next, nil
	}
	if !errors.Is(err, ErrDuplicateSuccessor) {
		return Reminder{}, err
	}

	existing, gerr := s.repo.GetSuccessor(ctx, done.ID)
	if gerr != nil {
		return Reminder{}, fmt.Errorf("load existing successor: %w", gerr)
	}
	log.Debug("successor already exists", logger.Fields{"successor_id": existing.ID})
	return existing, nil
}

// inflightSet evita dos toggles simultáneos del mismo recordatorio en este proceso.
type inflightSet struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func (g *inflightSet) acquire(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.ids[id]; busy {
		return false
	}
	g.ids[id] = struct{}{}
	return true
}

func (g *inflightSet) release(id string) {
	g.mu.Lock()
	delete(g.ids, id)
	g.mu.Unlock()
}
