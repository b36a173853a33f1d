package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/subodh53/BookMySlot/internal/domain"
)

type BookingRepository interface {
	// Create inserts a confirmed booking. The storage layer owns the
	// uniqueness of (host_id, event_type_id, start_time) among confirmed
	// bookings; a violation comes back as ErrConflict. There is no prior
	// read-then-write check anywhere, so two racing requests for the
	// same slot resolve to exactly one winner.
	Create(ctx context.Context, b domain.Booking) (domain.Booking, error)

	// ListConfirmedInRange returns confirmed bookings for the host and
	// event type whose start falls in [rangeStart, rangeEnd).
	ListConfirmedInRange(ctx context.Context, hostID, eventTypeID uuid.UUID, rangeStart, rangeEnd time.Time) ([]domain.Booking, error)

	// ListUpcomingByHost returns the host's confirmed bookings starting
	// at or after from, ordered by start ascending.
	ListUpcomingByHost(ctx context.Context, hostID uuid.UUID, from time.Time) ([]domain.Booking, error)

	ByID(ctx context.Context, hostID, id uuid.UUID) (domain.Booking, error)
	UpdateStatus(ctx context.Context, hostID, id uuid.UUID, status domain.BookingStatus) (domain.Booking, error)
}
