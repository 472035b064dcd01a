package sqlite

import (
	"context"

	"pet-care-journal/internal/domain/health"

	"gorm.io/gorm"
)

type HealthRepo struct {
	db *gorm.DB
}

func (r *HealthRepo) Create(ctx context.Context, rec health.Record) error {
	m := healthModel(rec)
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *HealthRepo) GetByID(ctx context.Context, id string) (health.Record, error) {
	var m healthModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		return health.Record{}, notFoundAs(err, health.ErrNotFound)
	}
	return health.Record(m), nil
}

func (r *HealthRepo) ListByPet(ctx context.Context, petID string, order health.Order) ([]health.Record, error) {
	dir := "DESC"
	if order == health.OrderDateAsc {
		dir = "ASC"
	}

	var rows []healthModel
	if err := r.db.WithContext(ctx).
		Where("pet_id = ?", petID).
		Order("date " + dir).Order("created_at " + dir).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]health.Record, 0, len(rows))
	for _, m := range rows {
		out = append(out, health.Record(m))
	}
	return out, nil
}

func (r *HealthRepo) Update(ctx context.Context, rec health.Record) error {
	res := r.db.WithContext(ctx).Model(&healthModel{}).Where("id = ?", rec.ID).Updates(map[string]any{
		"date":       rec.Date,
		"weight_kg":  rec.WeightKg,
		"notes":      rec.Notes,
		"updated_at": rec.UpdatedAt,
	})
	return affected(res, health.ErrNotFound)
}

func (r *HealthRepo) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&healthModel{}), health.ErrNotFound)
}
