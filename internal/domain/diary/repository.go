package diary

import "context"

type Repository interface {
	Create(ctx context.Context, e Entry) error
	GetByID(ctx context.Context, id string) (Entry, error)
	// ListByPet: date DESC, desempate por created_at DESC.
	ListByPet(ctx context.Context, petID string) ([]Entry, error)
	Update(ctx context.Context, e Entry) error
	Delete(ctx context.Context, id string) error
}
