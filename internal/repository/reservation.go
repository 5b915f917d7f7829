package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/AakashSorathiya/carrental-service/internal/errs"
	"github.com/AakashSorathiya/carrental-service/internal/model"
)

// CreateReservation claims the vehicle and inserts the reservation in one
// transaction. The status-gated update on vehicles serializes concurrent
// bookings: exactly one caller flips AVAILABLE to RESERVED, everyone else
// loses the race and gets ErrConflict.
func (r *repository) CreateReservation(ctx context.Context, req model.CreateReservationRequest, totalCost float64) (model.Reservation, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Reservation{}, err
	}
	defer tx.Rollback() //nolint:errcheck

	claim := fmt.Sprintf(`update %s set status = 'RESERVED' where vehicle_id = $1 and status = 'AVAILABLE'`, vehiclesTableName)
	res, err := tx.ExecContext(ctx, claim, req.VehicleID)
	if err != nil {
		return model.Reservation{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.Reservation{}, err
	} else if n == 0 {
		var status model.VehicleStatus
		err := tx.GetContext(ctx, &status, `select status from vehicles where vehicle_id = $1`, req.VehicleID)
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reservation{}, errs.ErrNotFound
		}
		if err != nil {
			return model.Reservation{}, err
		}
		return model.Reservation{}, errors.Wrapf(errs.ErrConflict, "vehicle is %s", status)
	}

	q, args, err := qb.Insert(reservationsTableName).
		Columns("customer_id", "vehicle_id", "start_date", "end_date", "total_cost", "status").
		Values(req.CustomerID, req.VehicleID, req.StartDate.Format(time.DateOnly), req.EndDate.Format(time.DateOnly), totalCost, model.ReservationPending).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Reservation{}, err
	}
	var rsv model.Reservation
	if err := tx.GetContext(ctx, &rsv, q, args...); err != nil {
		r.log.Error("CreateReservation", zap.String("q", q), zap.Any("args", args))
		return model.Reservation{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Reservation{}, err
	}
	return rsv, nil
}

func (r *repository) GetReservation(ctx context.Context, id int) (model.Reservation, error) {
	q, args, err := qb.Select("*").
		From(reservationsTableName).
		Where(sq.Eq{"reservation_id": id}).
		ToSql()
	if err != nil {
		return model.Reservation{}, err
	}
	var rsv model.Reservation
	if err := r.db.GetContext(ctx, &rsv, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reservation{}, errs.ErrNotFound
		}
		return model.Reservation{}, err
	}
	return rsv, nil
}

func (r *repository) ListReservationsByCustomer(ctx context.Context, customerID int) ([]model.Reservation, error) {
	q, args, err := qb.Select("*").
		From(reservationsTableName).
		Where(sq.Eq{"customer_id": customerID}).
		OrderBy("reservation_id").
		ToSql()
	if err != nil {
		return nil, err
	}
	var items []model.Reservation
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}

// CancelReservation is idempotent: cancelling a CANCELLED reservation returns
// it unchanged with no side effects.
func (r *repository) CancelReservation(ctx context.Context, id int) (model.Reservation, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Reservation{}, err
	}
	defer tx.Rollback() //nolint:errcheck

	var rsv model.Reservation
	q := fmt.Sprintf(`select * from %s where reservation_id = $1 for update`, reservationsTableName)
	if err := tx.GetContext(ctx, &rsv, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reservation{}, errs.ErrNotFound
		}
		return model.Reservation{}, err
	}
	if rsv.Status == model.ReservationCancelled {
		return rsv, nil
	}

	if _, err := tx.ExecContext(ctx,
		`update reservations set status = 'CANCELLED' where reservation_id = $1`, id); err != nil {
		return model.Reservation{}, err
	}
	if _, err := tx.ExecContext(ctx,
		`update vehicles set status = 'AVAILABLE' where vehicle_id = $1 and status in ('RESERVED', 'RENTED')`, rsv.VehicleID); err != nil {
		return model.Reservation{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Reservation{}, err
	}
	rsv.Status = model.ReservationCancelled
	return rsv, nil
}

func (r *repository) ModifyReservation(ctx context.Context, id int, start, end time.Time, totalCost float64) (model.Reservation, error) {
	q := fmt.Sprintf(`update %s
	set start_date = $2, end_date = $3, total_cost = $4
	where reservation_id = $1 and status = 'PENDING'
	returning *`, reservationsTableName)

	var rsv model.Reservation
	err := r.db.GetContext(ctx, &rsv, q, id, start.Format(time.DateOnly), end.Format(time.DateOnly), totalCost)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if _, err := r.GetReservation(ctx, id); err != nil {
				return model.Reservation{}, err
			}
			return model.Reservation{}, errors.Wrap(errs.ErrInvalidState, "reservation is not pending")
		}
		return model.Reservation{}, err
	}
	return rsv, nil
}
