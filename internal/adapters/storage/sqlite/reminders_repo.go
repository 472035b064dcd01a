package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pet-care-journal/internal/domain/reminders"

	"gorm.io/gorm"
)

type RemindersRepo struct {
	db *gorm.DB
}

func toReminderModel(r reminders.Reminder) reminderModel {
	m := reminderModel{
		ID:             r.ID,
		PetID:          r.PetID,
		Title:          r.Title,
		Description:    r.Description,
		DueDate:        r.DueDate,
		RepeatInterval: string(r.RepeatInterval),
		IsCompleted:    r.IsCompleted,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if r.SourceReminderID != "" {
		src := r.SourceReminderID
		m.SourceReminderID = &src
	}
	return m
}

func (m reminderModel) toDomain() reminders.Reminder {
	r := reminders.Reminder{
		ID:             m.ID,
		PetID:          m.PetID,
		Title:          m.Title,
		Description:    m.Description,
		DueDate:        m.DueDate,
		RepeatInterval: reminders.RepeatInterval(m.RepeatInterval),
		IsCompleted:    m.IsCompleted,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.SourceReminderID != nil {
		r.SourceReminderID = *m.SourceReminderID
	}
	return r
}

func (r *RemindersRepo) Create(ctx context.Context, rem reminders.Reminder) error {
	m := toReminderModel(rem)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) && m.SourceReminderID != nil {
			return fmt.Errorf("%w: source %s", reminders.ErrDuplicateSuccessor, rem.SourceReminderID)
		}
		return err
	}
	return nil
}

func (r *RemindersRepo) GetByID(ctx context.Context, id string) (reminders.Reminder, error) {
	var m reminderModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		return reminders.Reminder{}, notFoundAs(err, reminders.ErrNotFound)
	}
	return m.toDomain(), nil
}

func (r *RemindersRepo) GetSuccessor(ctx context.Context, sourceID string) (reminders.Reminder, error) {
	var m reminderModel
	if err := r.db.WithContext(ctx).Where("source_reminder_id = ?", sourceID).Take(&m).Error; err != nil {
		return reminders.Reminder{}, notFoundAs(err, reminders.ErrNotFound)
	}
	return m.toDomain(), nil
}

func (r *RemindersRepo) ListByPet(ctx context.Context, petID string) ([]reminders.Reminder, error) {
	var rows []reminderModel
	if err := r.db.WithContext(ctx).
		Where("pet_id = ?", petID).
		Order("due_date ASC").Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]reminders.Reminder, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toDomain())
	}
	return out, nil
}

func (r *RemindersRepo) Update(ctx context.Context, rem reminders.Reminder) error {
	res := r.db.WithContext(ctx).Model(&reminderModel{}).Where("id = ?", rem.ID).Updates(map[string]any{
		"title":           rem.Title,
		"description":     rem.Description,
		"due_date":        rem.DueDate,
		"repeat_interval": string(rem.RepeatInterval),
		"updated_at":      rem.UpdatedAt,
	})
	return affected(res, reminders.ErrNotFound)
}

func (r *RemindersRepo) SetCompleted(ctx context.Context, id string, completed bool, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&reminderModel{}).Where("id = ?", id).Updates(map[string]any{
		"is_completed": completed,
		"updated_at":   at,
	})
	return affected(res, reminders.ErrNotFound)
}

func (r *RemindersRepo) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&reminderModel{}), reminders.ErrNotFound)
}
