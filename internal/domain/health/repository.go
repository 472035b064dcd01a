package health

import "context"

type Repository interface {
	Create(ctx context.Context, r Record) error
	GetByID(ctx context.Context, id string) (Record, error)
	// ListByPet ordena por date (desempate por created_at en el mismo sentido).
	ListByPet(ctx context.Context, petID string, order Order) ([]Record, error)
	Update(ctx context.Context, r Record) error
	Delete(ctx context.Context, id string) error
}
