package pets

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"pet-care-journal/internal/ports/photos"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(_ context.Context, p Pet) error {
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) ListByOwner(_ context.Context, owner string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == owner {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) Update(_ context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type fakePhotos struct {
	paths []string
	err   error
}

func (f *fakePhotos) Upload(_ context.Context, path, _ string, _ []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.paths = append(f.paths, path)
	return f.PublicURL(path), nil
}

func (f *fakePhotos) PublicURL(path string) string { return "https://cdn.test/" + path }

func newTestService(store photos.Store) (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, store)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	cases := []struct {
		owner string
		in    CreateInput
	}{
		{"", CreateInput{Name: "Luna", Species: "dog"}},
		{"u1", CreateInput{Name: " ", Species: "dog"}},
		{"u1", CreateInput{Name: "Luna"}},
		{"u1", CreateInput{Name: "Luna", Species: "dog", Gender: "robot"}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(ctx, tc.owner, tc.in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", tc, err)
		}
	}

	p, err := svc.Create(ctx, "u1", CreateInput{Name: " Luna ", Species: "dog", Gender: "female"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Name != "Luna" || p.OwnerUserID != "u1" || p.Gender != GenderFemale || p.ID == "" {
		t.Fatalf("unexpected pet: %+v", p)
	}
}

func TestUpdate_PatchSemantics(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	bd := time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC)
	p, _ := svc.Create(ctx, "u1", CreateInput{Name: "Luna", Species: "dog", Breed: "beagle", BirthDate: &bd})

	name := "Lunita"
	updated, err := svc.Update(ctx, p.ID, UpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Lunita" || updated.Breed != "beagle" || updated.BirthDate == nil {
		t.Fatalf("untouched fields changed: %+v", updated)
	}

	cleared, err := svc.Update(ctx, p.ID, UpdateInput{BirthDate: PatchDate{Present: true}})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if cleared.BirthDate != nil {
		t.Fatalf("expected birth date cleared")
	}

	empty := ""
	if _, err := svc.Update(ctx, p.ID, UpdateInput{Name: &empty}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Update(ctx, "missing", UpdateInput{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAuthorize_OwnerOnly(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()
	p, _ := svc.Create(ctx, "owner", CreateInput{Name: "Michi", Species: "cat"})

	if _, err := svc.Authorize(ctx, p.ID, "owner"); err != nil {
		t.Fatalf("owner should be authorized: %v", err)
	}
	if _, err := svc.Authorize(ctx, p.ID, "other"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Authorize(ctx, "missing", "owner"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	owner, err := svc.OwnerOf(ctx, p.ID)
	if err != nil || owner != "owner" {
		t.Fatalf("OwnerOf = %q, %v", owner, err)
	}
}

func TestSetPhoto(t *testing.T) {
	store := &fakePhotos{}
	svc, repo := newTestService(store)
	ctx := context.Background()
	p, _ := svc.Create(ctx, "u1", CreateInput{Name: "Luna", Species: "dog"})

	var buf bytes.Buffer
	_ = png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2)))

	updated, err := svc.SetPhoto(ctx, p.ID, buf.Bytes())
	if err != nil {
		t.Fatalf("SetPhoto: %v", err)
	}
	if len(store.paths) != 1 || !strings.HasPrefix(store.paths[0], "pets/"+p.ID+"/profile-") || !strings.HasSuffix(store.paths[0], ".png") {
		t.Fatalf("unexpected upload paths: %v", store.paths)
	}
	if repo.byID[p.ID].PhotoURL != updated.PhotoURL || !strings.HasPrefix(updated.PhotoURL, "https://cdn.test/") {
		t.Fatalf("photo url not persisted: %+v", updated)
	}

	if _, err := svc.SetPhoto(ctx, p.ID, []byte("not an image")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	noStore, _ := newTestService(nil)
	if _, err := noStore.SetPhoto(ctx, p.ID, buf.Bytes()); !errors.Is(err, photos.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
