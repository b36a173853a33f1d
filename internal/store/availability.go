package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/subodh53/BookMySlot/internal/domain"
)

type AvailabilityRepository interface {
	// ByHost returns the host's rule set. ErrNotFound means the host
	// has never saved one; callers treat that as empty availability.
	ByHost(ctx context.Context, hostID uuid.UUID) (domain.AvailabilityRuleSet, error)

	// Replace stores the rule set wholesale, creating it on first save.
	Replace(ctx context.Context, set domain.AvailabilityRuleSet) (domain.AvailabilityRuleSet, error)
}
