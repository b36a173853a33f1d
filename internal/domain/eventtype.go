package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type LocationType string

const (
	LocationTypeVideo    LocationType = "video"
	LocationTypePhone    LocationType = "phone"
	LocationTypeInPerson LocationType = "in-person"
	LocationTypeLink     LocationType = "link"
)

func (l LocationType) Valid() bool {
	switch l {
	case LocationTypeVideo, LocationTypePhone, LocationTypeInPerson, LocationTypeLink:
		return true
	}
	return false
}

// EventType is a bookable meeting definition owned by a host. Slug is
// unique per host and addresses the event on the public booking page.
type EventType struct {
	bun.BaseModel `bun:"table:event_types"`

	ID                uuid.UUID    `bun:"id,pk,type:uuid"`
	HostID            uuid.UUID    `bun:"host_id,notnull,type:uuid"`
	Title             string       `bun:"title,notnull"`
	Slug              string       `bun:"slug,notnull"`
	Description       string       `bun:"description"`
	DurationMinutes   int          `bun:"duration_minutes,notnull"`
	LocationType      LocationType `bun:"location_type,notnull"`
	LocationURL       string       `bun:"location_url"`
	BufferBefore      int          `bun:"buffer_before,notnull"`
	BufferAfter       int          `bun:"buffer_after,notnull"`
	MinNoticeMinutes  int          `bun:"min_notice_minutes,notnull"`
	MaxSchedulingDays int          `bun:"max_scheduling_days,notnull"`
	CreatedAt         time.Time    `bun:"created_at,notnull"`
	UpdatedAt         time.Time    `bun:"updated_at,notnull"`
}

func (e *EventType) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if e.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			e.ID = id
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		if e.UpdatedAt.IsZero() {
			e.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		e.UpdatedAt = now
	}
	return nil
}
