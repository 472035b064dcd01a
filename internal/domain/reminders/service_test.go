package reminders

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"pet-care-journal/internal/platform/logger"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	mu   sync.Mutex
	byID map[string]Reminder

	createErr     error
	onSetComplete func()
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Reminder{}}
}

func (r *testRepo) Create(_ context.Context, rem Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil && rem.SourceReminderID != "" {
		return r.createErr
	}
	if rem.SourceReminderID != "" {
		for _, x := range r.byID {
			if x.SourceReminderID == rem.SourceReminderID {
				return ErrDuplicateSuccessor
			}
		}
	}
	r.byID[rem.ID] = rem
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rem, ok := r.byID[id]
	if !ok {
		return Reminder{}, ErrNotFound
	}
	return rem, nil
}

func (r *testRepo) ListByPet(_ context.Context, petID string) ([]Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Reminder, 0)
	for _, rem := range r.byID {
		if rem.PetID == petID {
			out = append(out, rem)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

func (r *testRepo) Update(_ context.Context, rem Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[rem.ID] = rem
	return nil
}

func (r *testRepo) SetCompleted(_ context.Context, id string, completed bool, at time.Time) error {
	if r.onSetComplete != nil {
		r.onSetComplete()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rem, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	rem.IsCompleted = completed
	rem.UpdatedAt = at
	r.byID[id] = rem
	return nil
}

func (r *testRepo) GetSuccessor(_ context.Context, sourceID string) (Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rem := range r.byID {
		if rem.SourceReminderID == sourceID {
			return rem, nil
		}
	}
	return Reminder{}, ErrNotFound
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func (r *testRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

func newTestService(repo Repository) *Service {
	svc := NewService(repo, logger.Nop())
	svc.now = func() time.Time { return time.Date(2024, 3, 31, 9, 0, 0, 0, time.UTC) }
	return svc
}

func mustCreate(t *testing.T, svc *Service, interval string, due time.Time) Reminder {
	t.Helper()
	rem, err := svc.Create(context.Background(), "pet-1", CreateInput{
		Title:          "Vaccine",
		Description:    "rabia",
		DueDate:        due,
		RepeatInterval: interval,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return rem
}

func TestToggle_MonthlyRolloverScenario(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	orig := mustCreate(t, svc, "monthly", date(2024, 3, 31))

	res, err := svc.ToggleCompletion(ctx, "pet-1", orig.ID)
	if err != nil {
		t.Fatalf("ToggleCompletion: %v", err)
	}
	if !res.Reminder.IsCompleted {
		t.Fatalf("original should be completed")
	}
	if res.Successor == nil {
		t.Fatalf("expected successor")
	}
	s := *res.Successor
	if s.Title != "Vaccine" || s.Description != "rabia" || s.RepeatInterval != RepeatMonthly || s.IsCompleted {
		t.Fatalf("unexpected successor: %+v", s)
	}
	if !s.DueDate.Equal(date(2024, 4, 30)) || s.SourceReminderID != orig.ID {
		t.Fatalf("unexpected successor due/source: %+v", s)
	}

	stored, _ := repo.GetByID(ctx, orig.ID)
	if !stored.IsCompleted {
		t.Fatalf("original must be retained and completed")
	}
	if len(res.Reminders) != 2 || res.Reminders[0].ID != orig.ID || res.Reminders[1].ID != s.ID {
		t.Fatalf("refreshed list should hold both reminders in due order: %+v", res.Reminders)
	}
}

func TestToggle_UncompleteNeverCreatesSuccessor(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	orig := mustCreate(t, svc, "weekly", date(2024, 3, 1))
	if _, err := svc.ToggleCompletion(ctx, "pet-1", orig.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if repo.count() != 2 {
		t.Fatalf("expected 2 reminders after completion, got %d", repo.count())
	}

	res, err := svc.ToggleCompletion(ctx, "pet-1", orig.ID)
	if err != nil {
		t.Fatalf("uncomplete: %v", err)
	}
	if res.Reminder.IsCompleted || res.Successor != nil {
		t.Fatalf("uncomplete should not roll over: %+v", res)
	}
	if repo.count() != 2 {
		t.Fatalf("expected still 2 reminders, got %d", repo.count())
	}
}

func TestToggle_NoneIntervalNeverInserts(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	orig := mustCreate(t, svc, "none", date(2024, 3, 1))
	for i := 0; i < 3; i++ {
		res, err := svc.ToggleCompletion(ctx, "pet-1", orig.ID)
		if err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
		if res.Successor != nil {
			t.Fatalf("none interval must not roll over")
		}
	}
	if repo.count() != 1 {
		t.Fatalf("expected 1 reminder, got %d", repo.count())
	}
}

func TestToggle_RecompletionReusesExistingSuccessor(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	orig := mustCreate(t, svc, "daily", date(2024, 3, 1))

	first, err := svc.ToggleCompletion(ctx, "pet-1", orig.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := svc.ToggleCompletion(ctx, "pet-1", orig.ID); err != nil {
		t.Fatalf("uncomplete: %v", err)
	}
	again, err := svc.ToggleCompletion(ctx, "pet-1", orig.ID)
	if err != nil {
		t.Fatalf("complete again: %v", err)
	}

	if again.Successor == nil || again.Successor.ID != first.Successor.ID {
		t.Fatalf("expected same successor, got %+v vs %+v", again.Successor, first.Successor)
	}
	if repo.count() != 2 {
		t.Fatalf("expected exactly one successor, got %d reminders", repo.count())
	}
}

func TestToggle_PartialRolloverKeepsCompletion(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	orig := mustCreate(t, svc, "yearly", date(2024, 2, 29))
	cause := errors.New("connection reset")
	repo.createErr = cause

	res, err := svc.ToggleCompletion(ctx, "pet-1", orig.ID)
	if !errors.Is(err, ErrPartialRollover) || !errors.Is(err, cause) {
		t.Fatalf("expected partial rollover wrapping cause, got %v", err)
	}
	var rollErr *RolloverError
	if !errors.As(err, &rollErr) || rollErr.Reminder.ID != orig.ID || !rollErr.Reminder.IsCompleted {
		t.Fatalf("expected RolloverError with completed reminder, got %#v", err)
	}
	if !res.Reminder.IsCompleted || res.Successor != nil {
		t.Fatalf("unexpected result: %+v", res)
	}

	stored, _ := repo.GetByID(ctx, orig.ID)
	if !stored.IsCompleted {
		t.Fatalf("flag update must not be rolled back")
	}
}

func TestToggle_InFlightGuard(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	ctx := context.Background()
	orig := mustCreate(t, svc, "monthly", date(2024, 1, 31))

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	repo.onSetComplete = func() {
		once.Do(func() {
			close(entered)
			<-release
		})
	}

	done := make(chan error, 1)
	go func() {
		_, err := svc.ToggleCompletion(ctx, "pet-1", orig.ID)
		done <- err
	}()

	<-entered
	if _, err := svc.ToggleCompletion(ctx, "pet-1", orig.ID); !errors.Is(err, ErrToggleInFlight) {
		t.Fatalf("expected ErrToggleInFlight, got %v", err)
	}
	close(release)

	if err := <-done; err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if repo.count() != 2 {
		t.Fatalf("expected one successor, got %d reminders", repo.count())
	}
}

func TestToggle_ScopedToPet(t *testing.T) {
	svc := newTestService(newTestRepo())
	orig := mustCreate(t, svc, "daily", date(2024, 3, 1))

	if _, err := svc.ToggleCompletion(context.Background(), "pet-2", orig.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.ToggleCompletion(context.Background(), "pet-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateAndUpdate_Validation(t *testing.T) {
	svc := newTestService(newTestRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "pet-1", CreateInput{Title: "x", DueDate: date(2024, 1, 1), RepeatInterval: "hourly"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create(ctx, "pet-1", CreateInput{Title: " ", DueDate: date(2024, 1, 1)}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	rem := mustCreate(t, svc, "", date(2024, 1, 1))
	if rem.RepeatInterval != RepeatNone {
		t.Fatalf("empty interval should default to none")
	}

	weekly := "weekly"
	updated, err := svc.Update(ctx, "pet-1", rem.ID, UpdateInput{RepeatInterval: &weekly})
	if err != nil || updated.RepeatInterval != RepeatWeekly || updated.Title != "Vaccine" {
		t.Fatalf("Update = %+v, %v", updated, err)
	}
}
