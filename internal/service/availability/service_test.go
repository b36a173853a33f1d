package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/subodh53/BookMySlot/internal/domain"
	"github.com/subodh53/BookMySlot/internal/store"
)

type fakeUsers struct {
	byUsernameFn func(ctx context.Context, username string) (domain.User, error)
}

func (f *fakeUsers) Create(ctx context.Context, user domain.User) (domain.User, error) {
	panic("not used")
}

func (f *fakeUsers) ByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	panic("not used")
}

func (f *fakeUsers) ByUsername(ctx context.Context, username string) (domain.User, error) {
	if f.byUsernameFn == nil {
		panic("ByUsername not configured")
	}
	return f.byUsernameFn(ctx, username)
}

func (f *fakeUsers) ByEmailOrUsername(ctx context.Context, identifier string) (domain.User, error) {
	panic("not used")
}

type fakeEvents struct {
	bySlugFn func(ctx context.Context, hostID uuid.UUID, slug string) (domain.EventType, error)
}

func (f *fakeEvents) Create(ctx context.Context, et domain.EventType) (domain.EventType, error) {
	panic("not used")
}

func (f *fakeEvents) ListByHost(ctx context.Context, hostID uuid.UUID) ([]domain.EventType, error) {
	panic("not used")
}

func (f *fakeEvents) ByID(ctx context.Context, hostID, id uuid.UUID) (domain.EventType, error) {
	panic("not used")
}

func (f *fakeEvents) BySlug(ctx context.Context, hostID uuid.UUID, slug string) (domain.EventType, error) {
	if f.bySlugFn == nil {
		panic("BySlug not configured")
	}
	return f.bySlugFn(ctx, hostID, slug)
}

func (f *fakeEvents) Update(ctx context.Context, et domain.EventType) (domain.EventType, error) {
	panic("not used")
}

func (f *fakeEvents) Delete(ctx context.Context, hostID, id uuid.UUID) error {
	panic("not used")
}

type fakeRules struct {
	byHostFn  func(ctx context.Context, hostID uuid.UUID) (domain.AvailabilityRuleSet, error)
	replaceFn func(ctx context.Context, set domain.AvailabilityRuleSet) (domain.AvailabilityRuleSet, error)
}

func (f *fakeRules) ByHost(ctx context.Context, hostID uuid.UUID) (domain.AvailabilityRuleSet, error) {
	if f.byHostFn == nil {
		panic("ByHost not configured")
	}
	return f.byHostFn(ctx, hostID)
}

func (f *fakeRules) Replace(ctx context.Context, set domain.AvailabilityRuleSet) (domain.AvailabilityRuleSet, error) {
	if f.replaceFn == nil {
		panic("Replace not configured")
	}
	return f.replaceFn(ctx, set)
}

type fakeBookings struct {
	listConfirmedFn func(ctx context.Context, hostID, eventTypeID uuid.UUID, rangeStart, rangeEnd time.Time) ([]domain.Booking, error)
	calls           int
}

func (f *fakeBookings) Create(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	panic("not used")
}

func (f *fakeBookings) ListConfirmedInRange(ctx context.Context, hostID, eventTypeID uuid.UUID, rangeStart, rangeEnd time.Time) ([]domain.Booking, error) {
	f.calls++
	if f.listConfirmedFn == nil {
		return nil, nil
	}
	return f.listConfirmedFn(ctx, hostID, eventTypeID, rangeStart, rangeEnd)
}

func (f *fakeBookings) ListUpcomingByHost(ctx context.Context, hostID uuid.UUID, from time.Time) ([]domain.Booking, error) {
	panic("not used")
}

func (f *fakeBookings) ByID(ctx context.Context, hostID, id uuid.UUID) (domain.Booking, error) {
	panic("not used")
}

func (f *fakeBookings) UpdateStatus(ctx context.Context, hostID, id uuid.UUID, status domain.BookingStatus) (domain.Booking, error) {
	panic("not used")
}

var (
	hostID  = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	eventID = uuid.MustParse("00000000-0000-0000-0000-000000000002")
)

func testHost() domain.User {
	return domain.User{ID: hostID, Name: "Ada", Username: "ada", Timezone: "America/New_York"}
}

func testEvent() domain.EventType {
	return domain.EventType{
		ID:               eventID,
		HostID:           hostID,
		Title:            "Intro call",
		Slug:             "intro",
		DurationMinutes:  30,
		MinNoticeMinutes: 60,
	}
}

func newTestService(rules *fakeRules, bookings *fakeBookings) *Service {
	users := &fakeUsers{
		byUsernameFn: func(ctx context.Context, username string) (domain.User, error) {
			if username != "ada" {
				return domain.User{}, store.ErrNotFound
			}
			return testHost(), nil
		},
	}
	events := &fakeEvents{
		bySlugFn: func(ctx context.Context, id uuid.UUID, slug string) (domain.EventType, error) {
			if slug != "intro" {
				return domain.EventType{}, store.ErrNotFound
			}
			return testEvent(), nil
		},
	}
	return NewService(users, events, rules, bookings).WithNow(func() time.Time {
		return time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	})
}

func TestPublicAvailability_UnknownHostOrEvent(t *testing.T) {
	svc := newTestService(&fakeRules{}, &fakeBookings{})

	if _, err := svc.PublicAvailability(context.Background(), "nobody", "intro", "", ""); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if _, err := svc.PublicAvailability(context.Background(), "ada", "missing", "", ""); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPublicAvailability_NoRulesShortCircuits(t *testing.T) {
	bookings := &fakeBookings{}
	svc := newTestService(&fakeRules{
		byHostFn: func(ctx context.Context, id uuid.UUID) (domain.AvailabilityRuleSet, error) {
			return domain.AvailabilityRuleSet{}, store.ErrNotFound
		},
	}, bookings)

	out, err := svc.PublicAvailability(context.Background(), "ada", "intro", "2026-01-05", "2026-01-11")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Slots) != 0 {
		t.Fatalf("len(slots) = %d, want 0", len(out.Slots))
	}
	if out.Slots == nil {
		t.Fatalf("slots should be empty, not nil")
	}
	if bookings.calls != 0 {
		t.Fatalf("bookings queried %d times on short circuit, want 0", bookings.calls)
	}
	if out.Event.Title != "Intro call" || out.Host.Username != "ada" {
		t.Fatalf("unexpected summary: %+v", out)
	}
}

func TestPublicAvailability_DefaultsRangeToSevenDays(t *testing.T) {
	svc := newTestService(&fakeRules{
		byHostFn: func(ctx context.Context, id uuid.UUID) (domain.AvailabilityRuleSet, error) {
			return domain.AvailabilityRuleSet{}, store.ErrNotFound
		},
	}, &fakeBookings{})

	out, err := svc.PublicAvailability(context.Background(), "ada", "intro", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Noon UTC on 2026-01-01 is morning of the same day in New York.
	if out.StartDate != "2026-01-01" {
		t.Fatalf("StartDate = %q, want 2026-01-01", out.StartDate)
	}
	if out.EndDate != "2026-01-07" {
		t.Fatalf("EndDate = %q, want 2026-01-07", out.EndDate)
	}
	if out.Timezone != "America/New_York" {
		t.Fatalf("Timezone = %q", out.Timezone)
	}
}

func TestPublicAvailability_FiltersBookedSlots(t *testing.T) {
	rules := &fakeRules{
		byHostFn: func(ctx context.Context, id uuid.UUID) (domain.AvailabilityRuleSet, error) {
			return domain.AvailabilityRuleSet{
				HostID: hostID,
				Weekly: []domain.WeeklyRule{{Weekday: 1, StartTime: "09:00", EndTime: "10:00"}},
			}, nil
		},
	}
	// 2026-01-05 09:00 New York is 14:00 UTC.
	booked := time.Date(2026, 1, 5, 14, 0, 0, 0, time.UTC)
	bookings := &fakeBookings{
		listConfirmedFn: func(ctx context.Context, hID, etID uuid.UUID, rangeStart, rangeEnd time.Time) ([]domain.Booking, error) {
			if hID != hostID || etID != eventID {
				t.Fatalf("queried wrong host/event: %s %s", hID, etID)
			}
			if !rangeStart.Before(booked) || !rangeEnd.After(booked) {
				t.Fatalf("range [%v, %v) does not cover booking", rangeStart, rangeEnd)
			}
			return []domain.Booking{{
				HostID:      hostID,
				EventTypeID: eventID,
				StartTime:   booked,
				EndTime:     booked.Add(30 * time.Minute),
				Status:      domain.BookingStatusConfirmed,
			}}, nil
		},
	}
	svc := newTestService(rules, bookings)

	out, err := svc.PublicAvailability(context.Background(), "ada", "intro", "2026-01-05", "2026-01-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Slots) != 1 {
		t.Fatalf("len(slots) = %d, want 1", len(out.Slots))
	}
	if want := booked.Add(30 * time.Minute); !out.Slots[0].Start.Equal(want) {
		t.Fatalf("slot start = %v, want %v", out.Slots[0].Start, want)
	}
}

func TestPublicAvailability_IdempotentRead(t *testing.T) {
	rules := &fakeRules{
		byHostFn: func(ctx context.Context, id uuid.UUID) (domain.AvailabilityRuleSet, error) {
			return domain.AvailabilityRuleSet{
				HostID: hostID,
				Weekly: []domain.WeeklyRule{{Weekday: 1, StartTime: "09:00", EndTime: "12:00"}},
			}, nil
		},
	}
	svc := newTestService(rules, &fakeBookings{})

	first, err := svc.PublicAvailability(context.Background(), "ada", "intro", "2026-01-05", "2026-01-11")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.PublicAvailability(context.Background(), "ada", "intro", "2026-01-05", "2026-01-11")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first.Slots) == 0 || len(first.Slots) != len(second.Slots) {
		t.Fatalf("slot counts differ: %d vs %d", len(first.Slots), len(second.Slots))
	}
	for i := range first.Slots {
		if !first.Slots[i].Start.Equal(second.Slots[i].Start) {
			t.Fatalf("slot %d differs between reads", i)
		}
	}
}

func TestPublicAvailability_InvalidDates(t *testing.T) {
	svc := newTestService(&fakeRules{}, &fakeBookings{})

	var vErr *ValidationError
	_, err := svc.PublicAvailability(context.Background(), "ada", "intro", "05-01-2026", "")
	if !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	_, err = svc.PublicAvailability(context.Background(), "ada", "intro", "2026-01-11", "2026-01-05")
	if !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestReplaceRules_ValidatesAndNormalizes(t *testing.T) {
	var saved domain.AvailabilityRuleSet
	rules := &fakeRules{
		replaceFn: func(ctx context.Context, set domain.AvailabilityRuleSet) (domain.AvailabilityRuleSet, error) {
			saved = set
			return set, nil
		},
	}
	svc := newTestService(rules, &fakeBookings{})

	_, err := svc.ReplaceRules(context.Background(), hostID, []domain.WeeklyRule{
		{Weekday: 1, StartTime: "09:00", EndTime: "17:00"},
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Exceptions == nil {
		t.Fatalf("nil exceptions should be normalized to empty")
	}

	var vErr *ValidationError
	_, err = svc.ReplaceRules(context.Background(), hostID, []domain.WeeklyRule{
		{Weekday: 9, StartTime: "09:00", EndTime: "17:00"},
	}, nil)
	if !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestRuleSet_AbsentIsEmptyNotError(t *testing.T) {
	svc := newTestService(&fakeRules{
		byHostFn: func(ctx context.Context, id uuid.UUID) (domain.AvailabilityRuleSet, error) {
			return domain.AvailabilityRuleSet{}, store.ErrNotFound
		},
	}, &fakeBookings{})

	set, err := svc.RuleSet(context.Background(), hostID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Weekly == nil || set.Exceptions == nil {
		t.Fatalf("expected empty slices, got %+v", set)
	}
}
