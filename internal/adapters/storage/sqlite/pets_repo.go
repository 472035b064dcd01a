package sqlite

import (
	"context"

	"pet-care-journal/internal/domain/pets"

	"gorm.io/gorm"
)

type PetsRepo struct {
	db *gorm.DB
}

func toPetModel(p pets.Pet) petModel {
	return petModel{
		ID:          p.ID,
		OwnerUserID: p.OwnerUserID,
		Name:        p.Name,
		Species:     string(p.Species),
		Breed:       p.Breed,
		Gender:      string(p.Gender),
		BirthDate:   p.BirthDate,
		PhotoURL:    p.PhotoURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (m petModel) toDomain() pets.Pet {
	return pets.Pet{
		ID:          m.ID,
		OwnerUserID: m.OwnerUserID,
		Name:        m.Name,
		Species:     pets.Species(m.Species),
		Breed:       m.Breed,
		Gender:      pets.Gender(m.Gender),
		BirthDate:   m.BirthDate,
		PhotoURL:    m.PhotoURL,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	m := toPetModel(p)
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	var m petModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		return pets.Pet{}, notFoundAs(err, pets.ErrNotFound)
	}
	return m.toDomain(), nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	var rows []petModel
	if err := r.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerUserID).
		Order("created_at DESC").Order("id").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]pets.Pet, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toDomain())
	}
	return out, nil
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res := r.db.WithContext(ctx).Model(&petModel{}).Where("id = ?", p.ID).Updates(map[string]any{
		"name":       p.Name,
		"species":    string(p.Species),
		"breed":      p.Breed,
		"gender":     string(p.Gender),
		"birth_date": p.BirthDate,
		"photo_url":  p.PhotoURL,
		"updated_at": p.UpdatedAt,
	})
	return affected(res, pets.ErrNotFound)
}

// Delete borra la mascota y sus hijos en una transacción.
func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []any{&healthModel{}, &diaryModel{}, &reminderModel{}} {
			if err := tx.Where("pet_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return affected(tx.Where("id = ?", id).Delete(&petModel{}), pets.ErrNotFound)
	})
}
