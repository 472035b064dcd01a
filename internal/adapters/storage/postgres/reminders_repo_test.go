package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-care-journal/internal/domain/pets"
	"pet-care-journal/internal/domain/reminders"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	db := sqlx.NewDb(raw, DriverPgx)
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
		_ = db.Close()
	})
	return db, mock
}

func emptyReminderRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "pet_id", "title", "description", "due_date", "repeat_interval",
		"is_completed", "source_reminder_id", "created_at", "updated_at",
	})
}

func TestRemindersRepo_CreateDuplicateSuccessor(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRemindersRepo(db)
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO reminders").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "reminders_source_reminder_id_key"})

	err := repo.Create(context.Background(), reminders.Reminder{
		ID: "r2", PetID: "p1", Title: "Vacuna", DueDate: day,
		RepeatInterval: reminders.RepeatYearly, SourceReminderID: "r1",
		CreatedAt: day, UpdatedAt: day,
	})
	if !errors.Is(err, reminders.ErrDuplicateSuccessor) {
		t.Fatalf("expected ErrDuplicateSuccessor, got %v", err)
	}
}

func TestRemindersRepo_CreateUniqueViolationWithoutSource(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRemindersRepo(db)

	// Un 23505 sobre la PK no es un sucesor duplicado.
	mock.ExpectExec("INSERT INTO reminders").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "reminders_pkey"})

	err := repo.Create(context.Background(), reminders.Reminder{ID: "r1", PetID: "p1", Title: "Baño"})
	if err == nil || errors.Is(err, reminders.ErrDuplicateSuccessor) {
		t.Fatalf("expected raw unique violation, got %v", err)
	}
}

func TestRemindersRepo_CreateOK(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRemindersRepo(db)

	mock.ExpectExec("INSERT INTO reminders").WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), reminders.Reminder{ID: "r1", PetID: "p1", Title: "Baño"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
}

func TestRemindersRepo_NoRowsIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRemindersRepo(db)
	ctx := context.Background()

	mock.ExpectQuery("FROM reminders WHERE source_reminder_id").
		WithArgs("r1").
		WillReturnRows(emptyReminderRows())
	if _, err := repo.GetSuccessor(ctx, "r1"); !errors.Is(err, reminders.ErrNotFound) {
		t.Fatalf("GetSuccessor: expected ErrNotFound, got %v", err)
	}

	mock.ExpectQuery("FROM reminders WHERE id").
		WithArgs("ghost").
		WillReturnRows(emptyReminderRows())
	if _, err := repo.GetByID(ctx, "ghost"); !errors.Is(err, reminders.ErrNotFound) {
		t.Fatalf("GetByID: expected ErrNotFound, got %v", err)
	}
}

func TestRemindersRepo_GetSuccessor(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRemindersRepo(db)
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM reminders WHERE source_reminder_id").
		WithArgs("r1").
		WillReturnRows(emptyReminderRows().AddRow(
			"r2", "p1", "Vacuna", "", day, "yearly", false, "r1", day, day,
		))

	got, err := repo.GetSuccessor(context.Background(), "r1")
	if err != nil {
		t.Fatalf("GetSuccessor: %v", err)
	}
	if got.ID != "r2" || got.SourceReminderID != "r1" || !got.DueDate.Equal(day) {
		t.Fatalf("unexpected successor: %+v", got)
	}
}

func TestRemindersRepo_ZeroRowsAffected(t *testing.T) {
	db, mock := newMockDB(t)
	ctx := context.Background()

	mock.ExpectExec("UPDATE reminders SET is_completed").WillReturnResult(sqlmock.NewResult(0, 0))
	if err := NewRemindersRepo(db).SetCompleted(ctx, "ghost", true, time.Now()); !errors.Is(err, reminders.ErrNotFound) {
		t.Fatalf("SetCompleted: expected ErrNotFound, got %v", err)
	}

	mock.ExpectExec("DELETE FROM pets").WithArgs("ghost").WillReturnResult(sqlmock.NewResult(0, 0))
	if err := NewPetsRepo(db).Delete(ctx, "ghost"); !errors.Is(err, pets.ErrNotFound) {
		t.Fatalf("pets Delete: expected ErrNotFound, got %v", err)
	}
}
