package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/subodh53/BookMySlot/internal/domain"
	"github.com/subodh53/BookMySlot/internal/store"
)

type AvailabilityRepo struct {
	db *bun.DB
}

func NewAvailabilityRepo(db *bun.DB) *AvailabilityRepo {
	return &AvailabilityRepo{db: db}
}

func (r *AvailabilityRepo) ByHost(ctx context.Context, hostID uuid.UUID) (domain.AvailabilityRuleSet, error) {
	var set domain.AvailabilityRuleSet
	err := r.db.NewSelect().
		Model(&set).
		Where("host_id = ?", hostID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.AvailabilityRuleSet{}, store.ErrNotFound
		}
		return domain.AvailabilityRuleSet{}, err
	}
	return set, nil
}

// Replace upserts the whole rule set keyed by host. The previous weekly
// rules and exceptions are overwritten, never merged.
func (r *AvailabilityRepo) Replace(ctx context.Context, set domain.AvailabilityRuleSet) (domain.AvailabilityRuleSet, error) {
	m := set
	_, err := r.db.NewInsert().
		Model(&m).
		On("CONFLICT (host_id) DO UPDATE").
		Set("weekly = EXCLUDED.weekly").
		Set("exceptions = EXCLUDED.exceptions").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return domain.AvailabilityRuleSet{}, err
	}
	return r.ByHost(ctx, set.HostID)
}
