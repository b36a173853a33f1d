package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"github.com/subodh53/BookMySlot/internal/domain"
	"github.com/subodh53/BookMySlot/internal/store"
)

type BookingRepo struct {
	db *bun.DB
}

func NewBookingRepo(db *bun.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

// Create relies on the bookings_confirmed_start_key partial unique index
// for the double-booking guard: the insert itself is the atomic check,
// so of two racing requests for one slot exactly one insert succeeds and
// the other surfaces store.ErrConflict.
func (r *BookingRepo) Create(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	m := b
	_, err := r.db.NewInsert().Model(&m).Exec(ctx)
	if err != nil {
		if isConfirmedStartConflict(err) {
			return domain.Booking{}, store.ErrConflict
		}
		return domain.Booking{}, err
	}
	return m, nil
}

func (r *BookingRepo) ListConfirmedInRange(ctx context.Context, hostID, eventTypeID uuid.UUID, rangeStart, rangeEnd time.Time) ([]domain.Booking, error) {
	var rows []domain.Booking
	err := r.db.NewSelect().
		Model(&rows).
		Where("host_id = ?", hostID).
		Where("event_type_id = ?", eventTypeID).
		Where("status = ?", domain.BookingStatusConfirmed).
		Where("start_time >= ?", rangeStart).
		Where("start_time < ?", rangeEnd).
		OrderExpr("start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *BookingRepo) ListUpcomingByHost(ctx context.Context, hostID uuid.UUID, from time.Time) ([]domain.Booking, error) {
	var rows []domain.Booking
	err := r.db.NewSelect().
		Model(&rows).
		Where("host_id = ?", hostID).
		Where("status = ?", domain.BookingStatusConfirmed).
		Where("start_time >= ?", from).
		OrderExpr("start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *BookingRepo) ByID(ctx context.Context, hostID, id uuid.UUID) (domain.Booking, error) {
	var b domain.Booking
	err := r.db.NewSelect().
		Model(&b).
		Where("host_id = ?", hostID).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Booking{}, store.ErrNotFound
		}
		return domain.Booking{}, err
	}
	return b, nil
}

func (r *BookingRepo) UpdateStatus(ctx context.Context, hostID, id uuid.UUID, status domain.BookingStatus) (domain.Booking, error) {
	res, err := r.db.NewUpdate().
		Model((*domain.Booking)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now().UTC()).
		Where("host_id = ?", hostID).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		if isConfirmedStartConflict(err) {
			return domain.Booking{}, store.ErrConflict
		}
		return domain.Booking{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Booking{}, err
	}
	if affected == 0 {
		return domain.Booking{}, store.ErrNotFound
	}
	return r.ByID(ctx, hostID, id)
}

func isConfirmedStartConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == "23505" &&
		pgErr.ConstraintName == "bookings_confirmed_start_key"
}
