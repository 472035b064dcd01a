package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pet-care-journal/internal/domain/reminders"

	"github.com/jmoiron/sqlx"
)

type RemindersRepo struct {
	db *sqlx.DB
}

func NewRemindersRepo(db *sqlx.DB) *RemindersRepo {
	return &RemindersRepo{db: db}
}

type reminderRow struct {
	ID               string         `db:"id"`
	PetID            string         `db:"pet_id"`
	Title            string         `db:"title"`
	Description      string         `db:"description"`
	DueDate          time.Time      `db:"due_date"`
	RepeatInterval   string         `db:"repeat_interval"`
	IsCompleted      bool           `db:"is_completed"`
	SourceReminderID sql.NullString `db:"source_reminder_id"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

const reminderColumns = `id, pet_id, title, description, due_date, repeat_interval, is_completed, source_reminder_id, created_at, updated_at`

func toReminderRow(r reminders.Reminder) reminderRow {
	return reminderRow{
		ID:               r.ID,
		PetID:            r.PetID,
		Title:            r.Title,
		Description:      r.Description,
		DueDate:          r.DueDate,
		RepeatInterval:   string(r.RepeatInterval),
		IsCompleted:      r.IsCompleted,
		SourceReminderID: sql.NullString{String: r.SourceReminderID, Valid: r.SourceReminderID != ""},
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func (row reminderRow) toDomain() reminders.Reminder {
	return reminders.Reminder{
		ID:               row.ID,
		PetID:            row.PetID,
		Title:            row.Title,
		Description:      row.Description,
		DueDate:          row.DueDate,
		RepeatInterval:   reminders.RepeatInterval(row.RepeatInterval),
		IsCompleted:      row.IsCompleted,
		SourceReminderID: row.SourceReminderID.String,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}

func (r *RemindersRepo) Create(ctx context.Context, rem reminders.Reminder) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO reminders (`+reminderColumns+`)
		VALUES (:id, :pet_id, :title, :description, :due_date, :repeat_interval, :is_completed, :source_reminder_id, :created_at, :updated_at)
	`, toReminderRow(rem))
	if err != nil {
		if isUniqueViolation(err) && rem.SourceReminderID != "" {
			return fmt.Errorf("%w: source %s", reminders.ErrDuplicateSuccessor, rem.SourceReminderID)
		}
		return err
	}
	return nil
}

func (r *RemindersRepo) GetByID(ctx context.Context, id string) (reminders.Reminder, error) {
	return r.getOne(ctx, `SELECT `+reminderColumns+` FROM reminders WHERE id = $1`, id)
}

func (r *RemindersRepo) GetSuccessor(ctx context.Context, sourceID string) (reminders.Reminder, error) {
	return r.getOne(ctx, `SELECT `+reminderColumns+` FROM reminders WHERE source_reminder_id = $1`, sourceID)
}

func (r *RemindersRepo) getOne(ctx context.Context, q string, arg string) (reminders.Reminder, error) {
	var row reminderRow
	if err := r.db.GetContext(ctx, &row, q, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return reminders.Reminder{}, reminders.ErrNotFound
		}
		return reminders.Reminder{}, err
	}
	return row.toDomain(), nil
}

func (r *RemindersRepo) ListByPet(ctx context.Context, petID string) ([]reminders.Reminder, error) {
	var rows []reminderRow
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT `+reminderColumns+`
		FROM reminders
		WHERE pet_id = $1
		ORDER BY due_date ASC, created_at ASC, id
	`, petID); err != nil {
		return nil, err
	}

	out := make([]reminders.Reminder, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// Update no toca is_completed ni source_reminder_id.
func (r *RemindersRepo) Update(ctx context.Context, rem reminders.Reminder) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE reminders SET
			title = :title,
			description = :description,
			due_date = :due_date,
			repeat_interval = :repeat_interval,
			updated_at = :updated_at
		WHERE id = :id
	`, toReminderRow(rem))
	if err != nil {
		return err
	}
	return rowsAffected(res, reminders.ErrNotFound)
}

func (r *RemindersRepo) SetCompleted(ctx context.Context, id string, completed bool, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reminders SET is_completed = $2, updated_at = $3 WHERE id = $1
	`, id, completed, at)
	if err != nil {
		return err
	}
	return rowsAffected(res, reminders.ErrNotFound)
}

func (r *RemindersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return rowsAffected(res, reminders.ErrNotFound)
}
