package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"pet-care-journal/internal/domain/pets"

	"github.com/jmoiron/sqlx"
)

type PetsRepo struct {
	db *sqlx.DB
}

func NewPetsRepo(db *sqlx.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

type petRow struct {
	ID          string       `db:"id"`
	OwnerUserID string       `db:"owner_user_id"`
	Name        string       `db:"name"`
	Species     string       `db:"species"`
	Breed       string       `db:"breed"`
	Gender      string       `db:"gender"`
	BirthDate   sql.NullTime `db:"birth_date"`
	PhotoURL    string       `db:"photo_url"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

const petColumns = `id, owner_user_id, name, species, breed, gender, birth_date, photo_url, created_at, updated_at`

func toPetRow(p pets.Pet) petRow {
	row := petRow{
		ID:          p.ID,
		OwnerUserID: p.OwnerUserID,
		Name:        p.Name,
		Species:     string(p.Species),
		Breed:       p.Breed,
		Gender:      string(p.Gender),
		PhotoURL:    p.PhotoURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.BirthDate != nil {
		row.BirthDate = sql.NullTime{Time: *p.BirthDate, Valid: true}
	}
	return row
}

func (row petRow) toDomain() pets.Pet {
	p := pets.Pet{
		ID:          row.ID,
		OwnerUserID: row.OwnerUserID,
		Name:        row.Name,
		Species:     pets.Species(row.Species),
		Breed:       row.Breed,
		Gender:      pets.Gender(row.Gender),
		PhotoURL:    row.PhotoURL,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if row.BirthDate.Valid {
		// birth_date es DATE: llega como medianoche UTC
		t := row.BirthDate.Time
		p.BirthDate = &t
	}
	return p
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES (:id, :owner_user_id, :name, :species, :breed, :gender, :birth_date, :photo_url, :created_at, :updated_at)
	`, toPetRow(p))
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE pets SET
			name = :name,
			species = :species,
			breed = :breed,
			gender = :gender,
			birth_date = :birth_date,
			photo_url = :photo_url,
			updated_at = :updated_at
		WHERE id = :id
	`, toPetRow(p))
	if err != nil {
		return err
	}
	return rowsAffected(res, pets.ErrNotFound)
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	var row petRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return row.toDomain(), nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	var rows []petRow
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT `+petColumns+`
		FROM pets
		WHERE owner_user_id = $1
		ORDER BY created_at DESC, id
	`, ownerUserID); err != nil {
		return nil, err
	}

	out := make([]pets.Pet, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// Delete: health_records, diary_entries y reminders caen por ON DELETE CASCADE.
func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return rowsAffected(res, pets.ErrNotFound)
}
