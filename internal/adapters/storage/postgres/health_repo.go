package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pet-care-journal/internal/domain/health"

	"github.com/jmoiron/sqlx"
)

type HealthRepo struct {
	db *sqlx.DB
}

func NewHealthRepo(db *sqlx.DB) *HealthRepo {
	return &HealthRepo{db: db}
}

type healthRow struct {
	ID        string    `db:"id"`
	PetID     string    `db:"pet_id"`
	Date      time.Time `db:"date"`
	WeightKg  float64   `db:"weight_kg"`
	Notes     string    `db:"notes"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

const healthColumns = `id, pet_id, date, weight_kg, notes, created_at, updated_at`

func (row healthRow) toDomain() health.Record {
	return health.Record(row)
}

func (r *HealthRepo) Create(ctx context.Context, rec health.Record) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO health_records (`+healthColumns+`)
		VALUES (:id, :pet_id, :date, :weight_kg, :notes, :created_at, :updated_at)
	`, healthRow(rec))
	return err
}

func (r *HealthRepo) GetByID(ctx context.Context, id string) (health.Record, error) {
	var row healthRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+healthColumns+` FROM health_records WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return health.Record{}, health.ErrNotFound
		}
		return health.Record{}, err
	}
	return row.toDomain(), nil
}

func (r *HealthRepo) ListByPet(ctx context.Context, petID string, order health.Order) ([]health.Record, error) {
	q := `SELECT ` + healthColumns + ` FROM health_records WHERE pet_id = $1 ORDER BY date DESC, created_at DESC`
	if order == health.OrderDateAsc {
		q = `SELECT ` + healthColumns + ` FROM health_records WHERE pet_id = $1 ORDER BY date ASC, created_at ASC`
	}

	var rows []healthRow
	if err := r.db.SelectContext(ctx, &rows, q, petID); err != nil {
		return nil, err
	}
	out := make([]health.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *HealthRepo) Update(ctx context.Context, rec health.Record) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE health_records SET
			date = :date,
			weight_kg = :weight_kg,
			notes = :notes,
			updated_at = :updated_at
		WHERE id = :id
	`, healthRow(rec))
	if err != nil {
		return err
	}
	return rowsAffected(res, health.ErrNotFound)
}

func (r *HealthRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM health_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return rowsAffected(res, health.ErrNotFound)
}
