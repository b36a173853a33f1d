package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is a confirmed meeting created by a public invitee against a
// host's event type. At most one confirmed booking may exist per
// (host_id, event_type_id, start_time); the constraint lives in the
// database so concurrent writers cannot both win.
type Booking struct {
	bun.BaseModel `bun:"table:bookings"`

	ID              uuid.UUID     `bun:"id,pk,type:uuid"`
	HostID          uuid.UUID     `bun:"host_id,notnull,type:uuid"`
	EventTypeID     uuid.UUID     `bun:"event_type_id,notnull,type:uuid"`
	InviteeName     string        `bun:"invitee_name,notnull"`
	InviteeEmail    string        `bun:"invitee_email,notnull"`
	InviteeTimezone string        `bun:"invitee_timezone"`
	Notes           string        `bun:"notes"`
	StartTime       time.Time     `bun:"start_time,notnull"`
	EndTime         time.Time     `bun:"end_time,notnull"`
	Status          BookingStatus `bun:"status,notnull"`
	CreatedAt       time.Time     `bun:"created_at,notnull"`
	UpdatedAt       time.Time     `bun:"updated_at,notnull"`
}

func (b *Booking) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if b.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			b.ID = id
		}
		if b.CreatedAt.IsZero() {
			b.CreatedAt = now
		}
		if b.UpdatedAt.IsZero() {
			b.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		b.UpdatedAt = now
	}
	return nil
}
