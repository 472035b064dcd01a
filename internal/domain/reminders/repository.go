package reminders

import (
	"context"
	"time"
)

type Repository interface {
	// Create devuelve ErrDuplicateSuccessor si ya existe un recordatorio con el mismo
	// SourceReminderID (clave única).
	Create(ctx context.Context, r Reminder) error
	GetByID(ctx context.Context, id string) (Reminder, error)
	// ListByPet: due_date ASC, desempate por created_at ASC.
	ListByPet(ctx context.Context, petID string) ([]Reminder, error)
	Update(ctx context.Context, r Reminder) error
	// SetCompleted es el update puntual por id del toggle.
	SetCompleted(ctx context.Context, id string, completed bool, at time.Time) error
	// GetSuccessor busca el recordatorio generado a partir de sourceID.
	GetSuccessor(ctx context.Context, sourceID string) (Reminder, error)
	Delete(ctx context.Context, id string) error
}
