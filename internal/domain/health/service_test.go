package health

import (
	"context"
	"errors"
	"math"
	"sort"
	"testing"
	"time"
)

type testRepo struct {
	byID map[string]Record
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Record{}}
}

func (r *testRepo) Create(_ context.Context, rec Record) error {
	r.byID[rec.ID] = rec
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Record, error) {
	rec, ok := r.byID[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (r *testRepo) ListByPet(_ context.Context, petID string, order Order) ([]Record, error) {
	out := make([]Record, 0)
	for _, rec := range r.byID {
		if rec.PetID == petID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if order == OrderDateAsc {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (r *testRepo) Update(_ context.Context, rec Record) error {
	r.byID[rec.ID] = rec
	return nil
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreate_RejectsInvalidWeights(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	for _, w := range []float64{-0.1, math.NaN(), math.Inf(1)} {
		if _, err := svc.Create(ctx, "pet-1", CreateInput{Date: day(2024, 1, 1), WeightKg: w}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("weight %v: expected ErrInvalidInput, got %v", w, err)
		}
	}

	rec, err := svc.Create(ctx, "pet-1", CreateInput{Date: time.Date(2024, 1, 1, 18, 30, 0, 0, time.FixedZone("x", 9*3600)), WeightKg: 0})
	if err != nil {
		t.Fatalf("zero weight should be accepted: %v", err)
	}
	if !rec.Date.Equal(day(2024, 1, 1)) {
		t.Fatalf("date should be truncated to calendar day, got %v", rec.Date)
	}
}

func TestWeightSeries_Ascending(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	_, _ = svc.Create(ctx, "pet-1", CreateInput{Date: day(2024, 3, 1), WeightKg: 5.2})
	_, _ = svc.Create(ctx, "pet-1", CreateInput{Date: day(2024, 1, 1), WeightKg: 4.8})
	_, _ = svc.Create(ctx, "pet-2", CreateInput{Date: day(2024, 2, 1), WeightKg: 30})

	points, err := svc.WeightSeries(ctx, "pet-1")
	if err != nil {
		t.Fatalf("WeightSeries: %v", err)
	}
	if len(points) != 2 || points[0].WeightKg != 4.8 || points[1].WeightKg != 5.2 {
		t.Fatalf("unexpected series: %+v", points)
	}
}

func TestUpdateAndDelete_ScopedToPet(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	rec, _ := svc.Create(ctx, "pet-1", CreateInput{Date: day(2024, 1, 1), WeightKg: 4})

	w := 4.5
	if _, err := svc.Update(ctx, "pet-2", rec.ID, UpdateInput{WeightKg: &w}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign pet, got %v", err)
	}
	bad := -1.0
	if _, err := svc.Update(ctx, "pet-1", rec.ID, UpdateInput{WeightKg: &bad}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	updated, err := svc.Update(ctx, "pet-1", rec.ID, UpdateInput{WeightKg: &w})
	if err != nil || updated.WeightKg != 4.5 {
		t.Fatalf("Update = %+v, %v", updated, err)
	}

	if err := svc.Delete(ctx, "pet-2", rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, "pet-1", rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, "pet-1", rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected record gone, got %v", err)
	}
}
