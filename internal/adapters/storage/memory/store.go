package memory

import (
	"sync"

	"pet-care-journal/internal/domain/diary"
	"pet-care-journal/internal/domain/health"
	"pet-care-journal/internal/domain/pets"
	"pet-care-journal/internal/domain/reminders"
)

// Store guarda todas las entidades bajo un único lock para que el borrado de una
// mascota arrastre a sus hijos de forma atómica.
type Store struct {
	mu sync.RWMutex

	pets      map[string]pets.Pet
	health    map[string]health.Record
	diary     map[string]diary.Entry
	reminders map[string]reminders.Reminder

	// successors indexa source_reminder_id -> id del recordatorio generado.
	successors map[string]string
}

func NewStore() *Store {
	return &Store{
		pets:       make(map[string]pets.Pet),
		health:     make(map[string]health.Record),
		diary:      make(map[string]diary.Entry),
		reminders:  make(map[string]reminders.Reminder),
		successors: make(map[string]string),
	}
}

func (s *Store) Pets() pets.Repository           { return &petRepo{s: s} }
func (s *Store) Health() health.Repository       { return &healthRepo{s: s} }
func (s *Store) Diary() diary.Repository         { return &diaryRepo{s: s} }
func (s *Store) Reminders() reminders.Repository { return &reminderRepo{s: s} }
