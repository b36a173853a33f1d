package bookings

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/subodh53/BookMySlot/internal/domain"
	"github.com/subodh53/BookMySlot/internal/store"
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

// Notifier delivers booking emails. Implementations must be best-effort:
// a committed booking never fails or rolls back because mail did not go
// out.
type Notifier interface {
	BookingConfirmed(booking domain.Booking, event domain.EventType, host domain.User)
}

type Service struct {
	users    store.UserRepository
	events   store.EventTypeRepository
	bookings store.BookingRepository
	notifier Notifier
	now      func() time.Time
}

func NewService(
	users store.UserRepository,
	events store.EventTypeRepository,
	bookings store.BookingRepository,
	notifier Notifier,
) *Service {
	return &Service{
		users:    users,
		events:   events,
		bookings: bookings,
		notifier: notifier,
		now:      time.Now,
	}
}

// WithNow fixes the service clock; tests use it to pin "now".
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

type CreateInput struct {
	Start           time.Time
	InviteeName     string
	InviteeEmail    string
	InviteeTimezone string
	Notes           string
}

type Created struct {
	Booking domain.Booking
	Event   domain.EventType
	Host    domain.User
}

// CreatePublic books a slot for a public invitee. The storage layer owns
// the only authoritative double-booking check; this path never pre-reads
// existing bookings, it just inserts and maps the typed conflict out.
func (s *Service) CreatePublic(ctx context.Context, username, slug string, in CreateInput) (Created, error) {
	name := strings.TrimSpace(in.InviteeName)
	email := strings.ToLower(strings.TrimSpace(in.InviteeEmail))
	if in.Start.IsZero() {
		return Created{}, validationError("start is required")
	}
	if name == "" || email == "" {
		return Created{}, validationError("inviteeName and inviteeEmail are required")
	}
	if !strings.Contains(email, "@") {
		return Created{}, validationError("invalid inviteeEmail")
	}
	if tz := strings.TrimSpace(in.InviteeTimezone); tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			return Created{}, validationError("invalid inviteeTimezone")
		}
	}

	host, err := s.users.ByUsername(ctx, username)
	if err != nil {
		return Created{}, err
	}
	eventType, err := s.events.BySlug(ctx, host.ID, slug)
	if err != nil {
		return Created{}, err
	}

	duration := eventType.DurationMinutes
	if duration <= 0 {
		duration = 30
	}

	start := in.Start.UTC()
	booking, err := s.bookings.Create(ctx, domain.Booking{
		HostID:          host.ID,
		EventTypeID:     eventType.ID,
		InviteeName:     name,
		InviteeEmail:    email,
		InviteeTimezone: strings.TrimSpace(in.InviteeTimezone),
		Notes:           strings.TrimSpace(in.Notes),
		StartTime:       start,
		EndTime:         start.Add(time.Duration(duration) * time.Minute),
		Status:          domain.BookingStatusConfirmed,
	})
	if err != nil {
		return Created{}, err
	}

	if s.notifier != nil {
		s.notifier.BookingConfirmed(booking, eventType, host)
	}

	return Created{Booking: booking, Event: eventType, Host: host}, nil
}

// ListUpcoming returns the host's confirmed bookings from now on.
func (s *Service) ListUpcoming(ctx context.Context, hostID uuid.UUID) ([]domain.Booking, error) {
	return s.bookings.ListUpcomingByHost(ctx, hostID, s.now().UTC())
}

// Cancel flips a booking to cancelled. The transition is one-way: a
// cancelled booking stays cancelled, its start time becomes bookable
// again for someone else.
func (s *Service) Cancel(ctx context.Context, hostID, id uuid.UUID) (domain.Booking, error) {
	booking, err := s.bookings.ByID(ctx, hostID, id)
	if err != nil {
		return domain.Booking{}, err
	}
	if booking.Status == domain.BookingStatusCancelled {
		return domain.Booking{}, validationError("booking is already cancelled")
	}
	return s.bookings.UpdateStatus(ctx, hostID, id, domain.BookingStatusCancelled)
}
