package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/subodh53/BookMySlot/internal/domain"
)

type EventTypeRepository interface {
	// Create inserts a new event type. Returns ErrConflict when the
	// host already uses the slug.
	Create(ctx context.Context, et domain.EventType) (domain.EventType, error)

	ListByHost(ctx context.Context, hostID uuid.UUID) ([]domain.EventType, error)
	ByID(ctx context.Context, hostID, id uuid.UUID) (domain.EventType, error)
	BySlug(ctx context.Context, hostID uuid.UUID, slug string) (domain.EventType, error)

	Update(ctx context.Context, et domain.EventType) (domain.EventType, error)
	Delete(ctx context.Context, hostID, id uuid.UUID) error
}
