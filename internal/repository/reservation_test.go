package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AakashSorathiya/carrental-service/internal/errs"
	"github.com/AakashSorathiya/carrental-service/internal/model"
)

func newMockRepo(t *testing.T) (*repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, err := NewRepository(sqlx.NewDb(db, "sqlmock"), zap.NewExample())
	require.NoError(t, err)
	return repo, mock
}

func reservationColumns() []string {
	return []string{"reservation_id", "customer_id", "vehicle_id", "start_date", "end_date", "total_cost", "status"}
}

func TestRepository_CreateReservation(t *testing.T) {
	ctx := context.Background()
	req := model.CreateReservationRequest{
		CustomerID: 5,
		VehicleID:  7,
		StartDate:  model.Date{Time: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		EndDate:    model.Date{Time: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)},
	}

	t.Run("claims the vehicle and inserts", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(`update vehicles set status = 'RESERVED' where vehicle_id = \$1 and status = 'AVAILABLE'`).
			WithArgs(7).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`INSERT INTO reservations`).
			WithArgs(5, 7, "2024-06-01", "2024-06-03", 150.00, model.ReservationPending).
			WillReturnRows(sqlmock.NewRows(reservationColumns()).
				AddRow(1, 5, 7, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), 150.00, "PENDING"))
		mock.ExpectCommit()

		rsv, err := repo.CreateReservation(ctx, req, 150.00)
		assert.NoError(t, err)
		assert.Equal(t, 1, rsv.ID)
		assert.Equal(t, model.ReservationPending, rsv.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("vehicle already claimed", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(`update vehicles set status = 'RESERVED'`).
			WithArgs(7).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`select status from vehicles where vehicle_id = \$1`).
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("RESERVED"))
		mock.ExpectRollback()

		_, err := repo.CreateReservation(ctx, req, 150.00)
		assert.ErrorIs(t, err, errs.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown vehicle", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(`update vehicles set status = 'RESERVED'`).
			WithArgs(7).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`select status from vehicles where vehicle_id = \$1`).
			WithArgs(7).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		_, err := repo.CreateReservation(ctx, req, 150.00)
		assert.ErrorIs(t, err, errs.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_CancelReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels and releases the vehicle", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`select \* from reservations where reservation_id = \$1 for update`).
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows(reservationColumns()).
				AddRow(3, 5, 7, time.Now(), time.Now(), 150.00, "PENDING"))
		mock.ExpectExec(`update reservations set status = 'CANCELLED' where reservation_id = \$1`).
			WithArgs(3).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`update vehicles set status = 'AVAILABLE' where vehicle_id = \$1 and status in \('RESERVED', 'RENTED'\)`).
			WithArgs(7).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		rsv, err := repo.CancelReservation(ctx, 3)
		assert.NoError(t, err)
		assert.Equal(t, model.ReservationCancelled, rsv.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cancelling twice is a no-op", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`select \* from reservations where reservation_id = \$1 for update`).
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows(reservationColumns()).
				AddRow(3, 5, 7, time.Now(), time.Now(), 150.00, "CANCELLED"))
		mock.ExpectRollback()

		rsv, err := repo.CancelReservation(ctx, 3)
		assert.NoError(t, err)
		assert.Equal(t, model.ReservationCancelled, rsv.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown reservation", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`select \* from reservations where reservation_id = \$1 for update`).
			WithArgs(99).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		_, err := repo.CancelReservation(ctx, 99)
		assert.ErrorIs(t, err, errs.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
