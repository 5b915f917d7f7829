package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/AakashSorathiya/carrental-service/internal/errs"
	"github.com/AakashSorathiya/carrental-service/internal/model"
)

// CreatePayment confirms the reservation and records the completed payment in
// one transaction. The status gate on reservations rejects paying anything
// that is not PENDING.
func (r *repository) CreatePayment(ctx context.Context, reservationID int, amount float64, method, txnRef string) (model.Payment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Payment{}, err
	}
	defer tx.Rollback() //nolint:errcheck

	confirm := fmt.Sprintf(`update %s set status = 'CONFIRMED' where reservation_id = $1 and status = 'PENDING'`, reservationsTableName)
	res, err := tx.ExecContext(ctx, confirm, reservationID)
	if err != nil {
		return model.Payment{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.Payment{}, err
	} else if n == 0 {
		var status model.ReservationStatus
		err := tx.GetContext(ctx, &status, `select status from reservations where reservation_id = $1`, reservationID)
		if errors.Is(err, sql.ErrNoRows) {
			return model.Payment{}, errs.ErrNotFound
		}
		if err != nil {
			return model.Payment{}, err
		}
		return model.Payment{}, errors.Wrapf(errs.ErrInvalidState, "reservation is %s", status)
	}

	q, args, err := qb.Insert(paymentsTableName).
		Columns("reservation_id", "amount", "payment_method", "payment_status", "transaction_reference").
		Values(reservationID, amount, method, model.PaymentCompleted, txnRef).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Payment{}, err
	}
	var payment model.Payment
	if err := tx.GetContext(ctx, &payment, q, args...); err != nil {
		r.log.Error("CreatePayment", zap.String("q", q), zap.Any("args", args))
		return model.Payment{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Payment{}, err
	}
	return payment, nil
}

func (r *repository) GetPayment(ctx context.Context, id int) (model.Payment, error) {
	q, args, err := qb.Select("*").
		From(paymentsTableName).
		Where(sq.Eq{"payment_id": id}).
		ToSql()
	if err != nil {
		return model.Payment{}, err
	}
	var payment model.Payment
	if err := r.db.GetContext(ctx, &payment, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Payment{}, errs.ErrNotFound
		}
		return model.Payment{}, err
	}
	return payment, nil
}

// PaymentHistory lists payments joined with their reservation. customerID 0
// returns the full ledger.
func (r *repository) PaymentHistory(ctx context.Context, customerID int) ([]model.PaymentHistoryItem, error) {
	q := qb.Select("p.*", "r.customer_id", "r.status as reservation_status").
		From(paymentsTableName + " p").
		Join(fmt.Sprintf("%s r on r.reservation_id = p.reservation_id", reservationsTableName)).
		OrderBy("p.payment_date desc")

	if customerID != 0 {
		q = q.Where(sq.Eq{"r.customer_id": customerID})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	var items []model.PaymentHistoryItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) RequestRefund(ctx context.Context, paymentID int) (model.Payment, error) {
	q := fmt.Sprintf(`update %s
	set payment_status = 'REFUND_REQUESTED'
	where payment_id = $1 and payment_status = 'COMPLETED'
	returning *`, paymentsTableName)

	var payment model.Payment
	if err := r.db.GetContext(ctx, &payment, q, paymentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			current, err := r.GetPayment(ctx, paymentID)
			if err != nil {
				return model.Payment{}, err
			}
			return model.Payment{}, errors.Wrapf(errs.ErrInvalidState, "payment is %s", current.Status)
		}
		return model.Payment{}, err
	}
	return payment, nil
}

// ProcessRefund finishes the refund: payment REFUNDED, reservation CANCELLED,
// vehicle released. All three writes commit together or not at all.
func (r *repository) ProcessRefund(ctx context.Context, paymentID int) (model.Payment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Payment{}, err
	}
	defer tx.Rollback() //nolint:errcheck

	var payment model.Payment
	q := fmt.Sprintf(`select * from %s where payment_id = $1 for update`, paymentsTableName)
	if err := tx.GetContext(ctx, &payment, q, paymentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Payment{}, errs.ErrNotFound
		}
		return model.Payment{}, err
	}
	if payment.Status != model.PaymentRefundRequested {
		return model.Payment{}, errors.Wrapf(errs.ErrInvalidState, "payment is %s", payment.Status)
	}

	if _, err := tx.ExecContext(ctx,
		`update payments set payment_status = 'REFUNDED' where payment_id = $1`, paymentID); err != nil {
		return model.Payment{}, err
	}

	var vehicleID int
	cancel := `update reservations set status = 'CANCELLED' where reservation_id = $1 returning vehicle_id`
	if err := tx.GetContext(ctx, &vehicleID, cancel, payment.ReservationID); err != nil {
		return model.Payment{}, err
	}
	if _, err := tx.ExecContext(ctx,
		`update vehicles set status = 'AVAILABLE' where vehicle_id = $1 and status in ('RESERVED', 'RENTED')`, vehicleID); err != nil {
		return model.Payment{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Payment{}, err
	}
	payment.Status = model.PaymentRefunded
	return payment, nil
}
