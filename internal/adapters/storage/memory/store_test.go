package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-care-journal/internal/domain/diary"
	"pet-care-journal/internal/domain/health"
	"pet-care-journal/internal/domain/pets"
	"pet-care-journal/internal/domain/reminders"
)

var t0 = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func seedPet(t *testing.T, s *Store, id string) {
	t.Helper()
	if err := s.Pets().Create(context.Background(), pets.Pet{ID: id, OwnerUserID: "u1", Name: id, Species: pets.SpeciesDog, CreatedAt: t0}); err != nil {
		t.Fatalf("create pet: %v", err)
	}
}

func TestPetDelete_Cascades(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedPet(t, s, "p1")
	seedPet(t, s, "p2")

	_ = s.Health().Create(ctx, health.Record{ID: "h1", PetID: "p1", Date: t0})
	_ = s.Diary().Create(ctx, diary.Entry{ID: "d1", PetID: "p1", Date: t0, Content: "x"})
	_ = s.Reminders().Create(ctx, reminders.Reminder{ID: "r1", PetID: "p1", DueDate: t0})
	_ = s.Reminders().Create(ctx, reminders.Reminder{ID: "r2", PetID: "p1", DueDate: t0, SourceReminderID: "r1"})
	_ = s.Reminders().Create(ctx, reminders.Reminder{ID: "r3", PetID: "p2", DueDate: t0})

	if err := s.Pets().Delete(ctx, "p1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := s.Health().GetByID(ctx, "h1"); !errors.Is(err, health.ErrNotFound) {
		t.Fatalf("health record should be gone, got %v", err)
	}
	if _, err := s.Diary().GetByID(ctx, "d1"); !errors.Is(err, diary.ErrNotFound) {
		t.Fatalf("diary entry should be gone, got %v", err)
	}
	if _, err := s.Reminders().GetSuccessor(ctx, "r1"); !errors.Is(err, reminders.ErrNotFound) {
		t.Fatalf("successor index should be gone, got %v", err)
	}
	left, _ := s.Reminders().ListByPet(ctx, "p2")
	if len(left) != 1 {
		t.Fatalf("other pet's reminders must survive, got %d", len(left))
	}

	if err := s.Pets().Delete(ctx, "p1"); !errors.Is(err, pets.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestReminders_SuccessorUniqueKey(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedPet(t, s, "p1")
	repo := s.Reminders()

	if err := repo.Create(ctx, reminders.Reminder{ID: "a", PetID: "p1", SourceReminderID: "src"}); err != nil {
		t.Fatalf("first successor: %v", err)
	}
	if err := repo.Create(ctx, reminders.Reminder{ID: "b", PetID: "p1", SourceReminderID: "src"}); !errors.Is(err, reminders.ErrDuplicateSuccessor) {
		t.Fatalf("expected ErrDuplicateSuccessor, got %v", err)
	}
	got, err := repo.GetSuccessor(ctx, "src")
	if err != nil || got.ID != "a" {
		t.Fatalf("GetSuccessor = %+v, %v", got, err)
	}

	// Borrar el sucesor libera la clave.
	_ = repo.Delete(ctx, "a")
	if err := repo.Create(ctx, reminders.Reminder{ID: "c", PetID: "p1", SourceReminderID: "src"}); err != nil {
		t.Fatalf("expected key released, got %v", err)
	}
}

func TestReminders_UpdateKeepsCompletion(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedPet(t, s, "p1")
	repo := s.Reminders()

	_ = repo.Create(ctx, reminders.Reminder{ID: "r1", PetID: "p1", Title: "Vacuna", DueDate: t0, SourceReminderID: "src"})
	if err := repo.SetCompleted(ctx, "r1", true, t0); err != nil {
		t.Fatalf("SetCompleted: %v", err)
	}

	// Un Update con valores viejos no revierte el completado ni el origen.
	if err := repo.Update(ctx, reminders.Reminder{ID: "r1", PetID: "p1", Title: "Vacuna anual", DueDate: t0}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := repo.GetByID(ctx, "r1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.IsCompleted || got.SourceReminderID != "src" || got.Title != "Vacuna anual" {
		t.Fatalf("unexpected reminder after update: %+v", got)
	}
}

func TestOrderings(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedPet(t, s, "p1")

	_ = s.Reminders().Create(ctx, reminders.Reminder{ID: "late", PetID: "p1", DueDate: t0.AddDate(0, 0, 5)})
	_ = s.Reminders().Create(ctx, reminders.Reminder{ID: "early", PetID: "p1", DueDate: t0})
	rems, _ := s.Reminders().ListByPet(ctx, "p1")
	if rems[0].ID != "early" || rems[1].ID != "late" {
		t.Fatalf("reminders must be due_date ASC: %+v", rems)
	}

	_ = s.Diary().Create(ctx, diary.Entry{ID: "old", PetID: "p1", Date: t0, CreatedAt: t0})
	_ = s.Diary().Create(ctx, diary.Entry{ID: "same-day-later", PetID: "p1", Date: t0, CreatedAt: t0.Add(time.Hour)})
	_ = s.Diary().Create(ctx, diary.Entry{ID: "new", PetID: "p1", Date: t0.AddDate(0, 0, 1), CreatedAt: t0})
	entries, _ := s.Diary().ListByPet(ctx, "p1")
	if entries[0].ID != "new" || entries[1].ID != "same-day-later" || entries[2].ID != "old" {
		t.Fatalf("diary must be date DESC, created_at DESC: %v %v %v", entries[0].ID, entries[1].ID, entries[2].ID)
	}

	_ = s.Health().Create(ctx, health.Record{ID: "h-old", PetID: "p1", Date: t0})
	_ = s.Health().Create(ctx, health.Record{ID: "h-new", PetID: "p1", Date: t0.AddDate(0, 1, 0)})
	asc, _ := s.Health().ListByPet(ctx, "p1", health.OrderDateAsc)
	desc, _ := s.Health().ListByPet(ctx, "p1", health.OrderDateDesc)
	if asc[0].ID != "h-old" || desc[0].ID != "h-new" {
		t.Fatalf("unexpected health ordering")
	}
}

func TestChildCreate_RequiresPet(t *testing.T) {
	s := NewStore()
	if err := s.Diary().Create(context.Background(), diary.Entry{ID: "d", PetID: "ghost"}); err == nil {
		t.Fatalf("expected error for missing pet")
	}
}
