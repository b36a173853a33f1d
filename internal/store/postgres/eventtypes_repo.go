package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"github.com/subodh53/BookMySlot/internal/domain"
	"github.com/subodh53/BookMySlot/internal/store"
)

type EventTypeRepo struct {
	db *bun.DB
}

func NewEventTypeRepo(db *bun.DB) *EventTypeRepo {
	return &EventTypeRepo{db: db}
}

func (r *EventTypeRepo) Create(ctx context.Context, et domain.EventType) (domain.EventType, error) {
	m := et
	_, err := r.db.NewInsert().Model(&m).Exec(ctx)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "event_types_host_slug_key" {
			return domain.EventType{}, store.ErrConflict
		}
		return domain.EventType{}, err
	}
	return m, nil
}

func (r *EventTypeRepo) ListByHost(ctx context.Context, hostID uuid.UUID) ([]domain.EventType, error) {
	var rows []domain.EventType
	err := r.db.NewSelect().
		Model(&rows).
		Where("host_id = ?", hostID).
		OrderExpr("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *EventTypeRepo) ByID(ctx context.Context, hostID, id uuid.UUID) (domain.EventType, error) {
	var et domain.EventType
	err := r.db.NewSelect().
		Model(&et).
		Where("host_id = ?", hostID).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.EventType{}, store.ErrNotFound
		}
		return domain.EventType{}, err
	}
	return et, nil
}

func (r *EventTypeRepo) BySlug(ctx context.Context, hostID uuid.UUID, slug string) (domain.EventType, error) {
	var et domain.EventType
	err := r.db.NewSelect().
		Model(&et).
		Where("host_id = ?", hostID).
		Where("slug = ?", slug).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.EventType{}, store.ErrNotFound
		}
		return domain.EventType{}, err
	}
	return et, nil
}

func (r *EventTypeRepo) Update(ctx context.Context, et domain.EventType) (domain.EventType, error) {
	m := et
	res, err := r.db.NewUpdate().
		Model(&m).
		WherePK().
		Where("host_id = ?", et.HostID).
		Exec(ctx)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "event_types_host_slug_key" {
			return domain.EventType{}, store.ErrConflict
		}
		return domain.EventType{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.EventType{}, err
	}
	if affected == 0 {
		return domain.EventType{}, store.ErrNotFound
	}
	return m, nil
}

func (r *EventTypeRepo) Delete(ctx context.Context, hostID, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*domain.EventType)(nil)).
		Where("host_id = ?", hostID).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
