package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pet-care-journal/internal/domain/diary"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type DiaryRepo struct {
	db *sqlx.DB
}

func NewDiaryRepo(db *sqlx.DB) *DiaryRepo {
	return &DiaryRepo{db: db}
}

type diaryRow struct {
	ID        string         `db:"id"`
	PetID     string         `db:"pet_id"`
	Date      time.Time      `db:"date"`
	Content   string         `db:"content"`
	PhotoURLs pq.StringArray `db:"photo_urls"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

const diaryColumns = `id, pet_id, date, content, photo_urls, created_at, updated_at`

func toDiaryRow(e diary.Entry) diaryRow {
	urls := pq.StringArray(e.PhotoURLs)
	if urls == nil {
		urls = pq.StringArray{}
	}
	return diaryRow{
		ID:        e.ID,
		PetID:     e.PetID,
		Date:      e.Date,
		Content:   e.Content,
		PhotoURLs: urls,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (row diaryRow) toDomain() diary.Entry {
	return diary.Entry{
		ID:        row.ID,
		PetID:     row.PetID,
		Date:      row.Date,
		Content:   row.Content,
		PhotoURLs: []string(row.PhotoURLs),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func (r *DiaryRepo) Create(ctx context.Context, e diary.Entry) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO diary_entries (`+diaryColumns+`)
		VALUES (:id, :pet_id, :date, :content, :photo_urls, :created_at, :updated_at)
	`, toDiaryRow(e))
	return err
}

func (r *DiaryRepo) GetByID(ctx context.Context, id string) (diary.Entry, error) {
	var row diaryRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+diaryColumns+` FROM diary_entries WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return diary.Entry{}, diary.ErrNotFound
		}
		return diary.Entry{}, err
	}
	return row.toDomain(), nil
}

func (r *DiaryRepo) ListByPet(ctx context.Context, petID string) ([]diary.Entry, error) {
	var rows []diaryRow
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT `+diaryColumns+`
		FROM diary_entries
		WHERE pet_id = $1
		ORDER BY date DESC, created_at DESC, id
	`, petID); err != nil {
		return nil, err
	}

	out := make([]diary.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *DiaryRepo) Update(ctx context.Context, e diary.Entry) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE diary_entries SET
			date = :date,
			content = :content,
			photo_urls = :photo_urls,
			updated_at = :updated_at
		WHERE id = :id
	`, toDiaryRow(e))
	if err != nil {
		return err
	}
	return rowsAffected(res, diary.ErrNotFound)
}

func (r *DiaryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM diary_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return rowsAffected(res, diary.ErrNotFound)
}
