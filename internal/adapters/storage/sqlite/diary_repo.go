package sqlite

import (
	"context"

	"pet-care-journal/internal/domain/diary"

	"gorm.io/gorm"
)

type DiaryRepo struct {
	db *gorm.DB
}

func (r *DiaryRepo) Create(ctx context.Context, e diary.Entry) error {
	m := diaryModel(e)
	if m.PhotoURLs == nil {
		m.PhotoURLs = []string{}
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *DiaryRepo) GetByID(ctx context.Context, id string) (diary.Entry, error) {
	var m diaryModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		return diary.Entry{}, notFoundAs(err, diary.ErrNotFound)
	}
	return diary.Entry(m), nil
}

func (r *DiaryRepo) ListByPet(ctx context.Context, petID string) ([]diary.Entry, error) {
	var rows []diaryModel
	if err := r.db.WithContext(ctx).
		Where("pet_id = ?", petID).
		Order("date DESC").Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]diary.Entry, 0, len(rows))
	for _, m := range rows {
		out = append(out, diary.Entry(m))
	}
	return out, nil
}

func (r *DiaryRepo) Update(ctx context.Context, e diary.Entry) error {
	m := diaryModel(e)
	if m.PhotoURLs == nil {
		m.PhotoURLs = []string{}
	}
	// Select fuerza a escribir también los valores cero.
	res := r.db.WithContext(ctx).Model(&diaryModel{ID: e.ID}).
		Select("date", "content", "photo_urls", "updated_at").
		Updates(&m)
	return affected(res, diary.ErrNotFound)
}

func (r *DiaryRepo) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&diaryModel{}), diary.ErrNotFound)
}
