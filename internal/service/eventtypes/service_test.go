package eventtypes

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/subodh53/BookMySlot/internal/domain"
	"github.com/subodh53/BookMySlot/internal/store"
)

type fakeRepo struct {
	createFn func(ctx context.Context, et domain.EventType) (domain.EventType, error)
	byIDFn   func(ctx context.Context, hostID, id uuid.UUID) (domain.EventType, error)
	updateFn func(ctx context.Context, et domain.EventType) (domain.EventType, error)
}

func (f *fakeRepo) Create(ctx context.Context, et domain.EventType) (domain.EventType, error) {
	if f.createFn == nil {
		panic("Create not configured")
	}
	return f.createFn(ctx, et)
}

func (f *fakeRepo) ListByHost(ctx context.Context, hostID uuid.UUID) ([]domain.EventType, error) {
	panic("not used")
}

func (f *fakeRepo) ByID(ctx context.Context, hostID, id uuid.UUID) (domain.EventType, error) {
	if f.byIDFn == nil {
		panic("ByID not configured")
	}
	return f.byIDFn(ctx, hostID, id)
}

func (f *fakeRepo) BySlug(ctx context.Context, hostID uuid.UUID, slug string) (domain.EventType, error) {
	panic("not used")
}

func (f *fakeRepo) Update(ctx context.Context, et domain.EventType) (domain.EventType, error) {
	if f.updateFn == nil {
		panic("Update not configured")
	}
	return f.updateFn(ctx, et)
}

func (f *fakeRepo) Delete(ctx context.Context, hostID, id uuid.UUID) error {
	panic("not used")
}

var hostID = uuid.MustParse("00000000-0000-0000-0000-000000000031")

func TestCreate_Validation(t *testing.T) {
	svc := NewService(&fakeRepo{})

	tests := []struct {
		name string
		in   CreateInput
	}{
		{name: "missing title", in: CreateInput{Slug: "intro", DurationMinutes: 30}},
		{name: "missing slug", in: CreateInput{Title: "Intro", DurationMinutes: 30}},
		{name: "bad slug", in: CreateInput{Title: "Intro", Slug: "Intro Call!", DurationMinutes: 30}},
		{name: "zero duration", in: CreateInput{Title: "Intro", Slug: "intro"}},
		{name: "negative buffer", in: CreateInput{Title: "Intro", Slug: "intro", DurationMinutes: 30, BufferBefore: -5}},
		{name: "bad location type", in: CreateInput{Title: "Intro", Slug: "intro", DurationMinutes: 30, LocationType: "carrier-pigeon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), hostID, tt.in)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
		})
	}
}

func TestCreate_Defaults(t *testing.T) {
	var created domain.EventType
	svc := NewService(&fakeRepo{
		createFn: func(ctx context.Context, et domain.EventType) (domain.EventType, error) {
			created = et
			return et, nil
		},
	})

	_, err := svc.Create(context.Background(), hostID, CreateInput{
		Title:           "Intro Call",
		Slug:            "Intro",
		DurationMinutes: 30,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.Slug != "intro" {
		t.Fatalf("slug = %q, want lowercased", created.Slug)
	}
	if created.LocationType != domain.LocationTypeVideo {
		t.Fatalf("locationType = %q, want video default", created.LocationType)
	}
	if created.MinNoticeMinutes != 60 {
		t.Fatalf("minNotice = %d, want 60 default", created.MinNoticeMinutes)
	}
	if created.MaxSchedulingDays != 30 {
		t.Fatalf("maxSchedulingDays = %d, want 30 default", created.MaxSchedulingDays)
	}
}

func TestCreate_SlugConflict(t *testing.T) {
	svc := NewService(&fakeRepo{
		createFn: func(ctx context.Context, et domain.EventType) (domain.EventType, error) {
			return domain.EventType{}, store.ErrConflict
		},
	})

	_, err := svc.Create(context.Background(), hostID, CreateInput{Title: "Intro", Slug: "intro", DurationMinutes: 30})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestUpdate_PatchesSubset(t *testing.T) {
	id := uuid.MustParse("00000000-0000-0000-0000-000000000032")
	existing := domain.EventType{
		ID:               id,
		HostID:           hostID,
		Title:            "Intro Call",
		Slug:             "intro",
		DurationMinutes:  30,
		LocationType:     domain.LocationTypeVideo,
		MinNoticeMinutes: 60,
	}
	var updated domain.EventType
	svc := NewService(&fakeRepo{
		byIDFn: func(ctx context.Context, hID, etID uuid.UUID) (domain.EventType, error) {
			return existing, nil
		},
		updateFn: func(ctx context.Context, et domain.EventType) (domain.EventType, error) {
			updated = et
			return et, nil
		},
	})

	dur := 45
	_, err := svc.Update(context.Background(), hostID, id, UpdateInput{DurationMinutes: &dur})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.DurationMinutes != 45 {
		t.Fatalf("duration = %d, want 45", updated.DurationMinutes)
	}
	if updated.Title != "Intro Call" || updated.Slug != "intro" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}

	bad := -1
	_, err = svc.Update(context.Background(), hostID, id, UpdateInput{DurationMinutes: &bad})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestUpdate_NotFoundPassesThrough(t *testing.T) {
	svc := NewService(&fakeRepo{
		byIDFn: func(ctx context.Context, hID, etID uuid.UUID) (domain.EventType, error) {
			return domain.EventType{}, store.ErrNotFound
		},
	})

	_, err := svc.Update(context.Background(), hostID, uuid.New(), UpdateInput{})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
