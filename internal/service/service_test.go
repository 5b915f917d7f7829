package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AakashSorathiya/carrental-service/internal/errs"
	"github.com/AakashSorathiya/carrental-service/internal/model"
	repo_mocks "github.com/AakashSorathiya/carrental-service/internal/repository/mocks"
	"github.com/AakashSorathiya/carrental-service/internal/service"
	svc_mocks "github.com/AakashSorathiya/carrental-service/internal/service/mocks"
)

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestTotalCost(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		dailyRate  float64
		start, end string
		want       float64
	}{
		{"three days inclusive", 50.00, "2024-01-01", "2024-01-03", 150.00},
		{"same day is billed", 50.00, "2024-01-01", "2024-01-01", 50.00},
		{"cents survive rounding", 19.99, "2024-06-01", "2024-06-02", 39.98},
		{"week", 75.50, "2024-03-04", "2024-03-10", 528.50},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, service.TotalCost(tt.dailyRate, date(tt.start), date(tt.end)))
		})
	}
}

func newTestService(t *testing.T) (*service.Service, *repo_mocks.MockRepository, *svc_mocks.MockGatewayClient, *svc_mocks.MockEventLog) {
	t.Helper()
	c := gomock.NewController(t)
	repo := repo_mocks.NewMockRepository(c)
	gw := svc_mocks.NewMockGatewayClient(c)
	events := svc_mocks.NewMockEventLog(c)
	svc := service.NewService(repo, gw, events, service.Credentials{
		AdminEmail:    "admin@carrental.io",
		AdminPassword: "admin",
		TokenTTL:      time.Hour,
	}, zap.NewExample().Named("test"))
	return svc, repo, gw, events
}

func TestService_CreateReservation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	activeCustomer := model.Customer{ID: 5, Status: model.CustomerActive}
	vehicle := model.Vehicle{ID: 7, DailyRate: 50.00, Status: model.VehicleAvailable}
	req := model.CreateReservationRequest{
		CustomerID: 5,
		VehicleID:  7,
		StartDate:  model.Date{Time: date("2024-06-01")},
		EndDate:    model.Date{Time: date("2024-06-03")},
	}

	tests := []struct {
		name         string
		req          model.CreateReservationRequest
		mockBehavior func(repo *repo_mocks.MockRepository)
		wantErr      error
	}{
		{
			name: "ok",
			req:  req,
			mockBehavior: func(repo *repo_mocks.MockRepository) {
				repo.EXPECT().GetCustomer(ctx, 5).Return(activeCustomer, nil)
				repo.EXPECT().GetVehicle(ctx, 7).Return(vehicle, nil)
				repo.EXPECT().CreateReservation(ctx, req, 150.00).
					Return(model.Reservation{ID: 1, CustomerID: 5, VehicleID: 7, TotalCost: 150.00, Status: model.ReservationPending}, nil)
			},
		},
		{
			name: "end date before start date",
			req: model.CreateReservationRequest{
				CustomerID: 5,
				VehicleID:  7,
				StartDate:  model.Date{Time: date("2024-06-03")},
				EndDate:    model.Date{Time: date("2024-06-01")},
			},
			mockBehavior: func(repo *repo_mocks.MockRepository) {},
			wantErr:      errs.ErrValidation,
		},
		{
			name: "inactive customer",
			req:  req,
			mockBehavior: func(repo *repo_mocks.MockRepository) {
				repo.EXPECT().GetCustomer(ctx, 5).
					Return(model.Customer{ID: 5, Status: model.CustomerInactive}, nil)
			},
			wantErr: errs.ErrInvalidState,
		},
		{
			name: "vehicle already taken",
			req:  req,
			mockBehavior: func(repo *repo_mocks.MockRepository) {
				repo.EXPECT().GetCustomer(ctx, 5).Return(activeCustomer, nil)
				repo.EXPECT().GetVehicle(ctx, 7).Return(vehicle, nil)
				repo.EXPECT().CreateReservation(ctx, req, 150.00).
					Return(model.Reservation{}, errors.Wrap(errs.ErrConflict, "vehicle is RESERVED"))
			},
			wantErr: errs.ErrConflict,
		},
		{
			name: "unknown customer",
			req:  req,
			mockBehavior: func(repo *repo_mocks.MockRepository) {
				repo.EXPECT().GetCustomer(ctx, 5).Return(model.Customer{}, errs.ErrNotFound)
			},
			wantErr: errs.ErrNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, repo, _, _ := newTestService(t)
			tt.mockBehavior(repo)

			rsv, err := svc.CreateReservation(ctx, tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, model.ReservationPending, rsv.Status)
			require.Equal(t, 150.00, rsv.TotalCost)
		})
	}
}

// Two racing bookings for the same vehicle: exactly one wins, the other
// surfaces ErrConflict.
func TestService_CreateReservation_concurrent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, repo, _, _ := newTestService(t)

	req := model.CreateReservationRequest{
		CustomerID: 5,
		VehicleID:  7,
		StartDate:  model.Date{Time: date("2024-06-01")},
		EndDate:    model.Date{Time: date("2024-06-03")},
	}
	repo.EXPECT().GetCustomer(gomock.Any(), 5).
		Return(model.Customer{ID: 5, Status: model.CustomerActive}, nil).Times(2)
	repo.EXPECT().GetVehicle(gomock.Any(), 7).
		Return(model.Vehicle{ID: 7, DailyRate: 50.00, Status: model.VehicleAvailable}, nil).Times(2)

	var (
		mu      sync.Mutex
		claimed bool
	)
	repo.EXPECT().CreateReservation(gomock.Any(), req, 150.00).Times(2).
		DoAndReturn(func(context.Context, model.CreateReservationRequest, float64) (model.Reservation, error) {
			mu.Lock()
			defer mu.Unlock()
			if claimed {
				return model.Reservation{}, errors.Wrap(errs.ErrConflict, "vehicle is RESERVED")
			}
			claimed = true
			return model.Reservation{ID: 1, Status: model.ReservationPending}, nil
		})

	errsCh := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateReservation(ctx, req)
			errsCh <- err
		}()
	}
	wg.Wait()
	close(errsCh)

	var wins, conflicts int
	for err := range errsCh {
		if err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, errs.ErrConflict)
			conflicts++
		}
	}
	require.Equal(t, 1, wins)
	require.Equal(t, 1, conflicts)
}

func TestService_RecordPayment(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	pending := model.Reservation{ID: 3, CustomerID: 5, VehicleID: 7, TotalCost: 150.00, Status: model.ReservationPending}
	req := model.RecordPaymentRequest{ReservationID: 3, Amount: 150.00, Method: "CREDIT_CARD"}
	gw := model.PaymentGateway{ID: "GW-PRIMARY", Name: "Primary", Status: model.GatewayActive}

	tests := []struct {
		name         string
		req          model.RecordPaymentRequest
		mockBehavior func(repo *repo_mocks.MockRepository, client *svc_mocks.MockGatewayClient, events *svc_mocks.MockEventLog)
		wantErr      error
	}{
		{
			name: "ok",
			req:  req,
			mockBehavior: func(repo *repo_mocks.MockRepository, client *svc_mocks.MockGatewayClient, events *svc_mocks.MockEventLog) {
				repo.EXPECT().GetReservation(ctx, 3).Return(pending, nil)
				repo.EXPECT().ActiveGateway(ctx).Return(gw, nil)
				client.EXPECT().Charge(ctx, "GW-PRIMARY", 150.00).Return("txn-1", nil)
				repo.EXPECT().SaveTransaction(ctx, model.GatewayTransaction{
					ID:        "txn-1",
					Amount:    150.00,
					GatewayID: "GW-PRIMARY",
					Status:    model.TransactionCompleted,
				}).Return(nil)
				repo.EXPECT().CreatePayment(ctx, 3, 150.00, "CREDIT_CARD", "txn-1").
					Return(model.Payment{ID: 10, ReservationID: 3, Amount: 150.00, Status: model.PaymentCompleted}, nil)
				events.EXPECT().Log(gomock.Any()).Return(nil)
			},
		},
		{
			name:         "amount must be positive",
			req:          model.RecordPaymentRequest{ReservationID: 3, Amount: -5, Method: "CASH"},
			mockBehavior: func(*repo_mocks.MockRepository, *svc_mocks.MockGatewayClient, *svc_mocks.MockEventLog) {},
			wantErr:      errs.ErrValidation,
		},
		{
			name: "amount mismatch",
			req:  model.RecordPaymentRequest{ReservationID: 3, Amount: 100.00, Method: "CREDIT_CARD"},
			mockBehavior: func(repo *repo_mocks.MockRepository, _ *svc_mocks.MockGatewayClient, _ *svc_mocks.MockEventLog) {
				repo.EXPECT().GetReservation(ctx, 3).Return(pending, nil)
			},
			wantErr: errs.ErrValidation,
		},
		{
			name: "reservation already confirmed",
			req:  req,
			mockBehavior: func(repo *repo_mocks.MockRepository, _ *svc_mocks.MockGatewayClient, _ *svc_mocks.MockEventLog) {
				confirmed := pending
				confirmed.Status = model.ReservationConfirmed
				repo.EXPECT().GetReservation(ctx, 3).Return(confirmed, nil)
			},
			wantErr: errs.ErrInvalidState,
		},
		{
			name: "charge declined",
			req:  req,
			mockBehavior: func(repo *repo_mocks.MockRepository, client *svc_mocks.MockGatewayClient, events *svc_mocks.MockEventLog) {
				repo.EXPECT().GetReservation(ctx, 3).Return(pending, nil)
				repo.EXPECT().ActiveGateway(ctx).Return(gw, nil)
				client.EXPECT().Charge(ctx, "GW-PRIMARY", 150.00).
					Return("", errors.Wrap(errs.ErrGatewayUnavailable, "charge declined"))
				events.EXPECT().Log(gomock.Any()).Return(nil)
			},
			wantErr: errs.ErrGatewayUnavailable,
		},
		{
			name: "no active gateway",
			req:  req,
			mockBehavior: func(repo *repo_mocks.MockRepository, _ *svc_mocks.MockGatewayClient, _ *svc_mocks.MockEventLog) {
				repo.EXPECT().GetReservation(ctx, 3).Return(pending, nil)
				repo.EXPECT().ActiveGateway(ctx).Return(model.PaymentGateway{}, errs.ErrGatewayUnavailable)
			},
			wantErr: errs.ErrGatewayUnavailable,
		},
		{
			name: "payment insert fails, transaction marked FAILED",
			req:  req,
			mockBehavior: func(repo *repo_mocks.MockRepository, client *svc_mocks.MockGatewayClient, _ *svc_mocks.MockEventLog) {
				repo.EXPECT().GetReservation(ctx, 3).Return(pending, nil)
				repo.EXPECT().ActiveGateway(ctx).Return(gw, nil)
				client.EXPECT().Charge(ctx, "GW-PRIMARY", 150.00).Return("txn-1", nil)
				repo.EXPECT().SaveTransaction(ctx, gomock.Any()).Return(nil)
				repo.EXPECT().CreatePayment(ctx, 3, 150.00, "CREDIT_CARD", "txn-1").
					Return(model.Payment{}, errors.Wrap(errs.ErrInvalidState, "reservation is not pending"))
				repo.EXPECT().SetTransactionStatus(ctx, "txn-1", model.TransactionFailed).Return(nil)
			},
			wantErr: errs.ErrInvalidState,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, repo, client, events := newTestService(t)
			tt.mockBehavior(repo, client, events)

			payment, err := svc.RecordPayment(ctx, tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, model.PaymentCompleted, payment.Status)
		})
	}
}

func TestService_ProcessRefund(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	txnRef := "txn-1"
	requested := model.Payment{
		ID:            10,
		ReservationID: 3,
		Amount:        150.00,
		Status:        model.PaymentRefundRequested,
		TransactionID: &txnRef,
	}

	tests := []struct {
		name         string
		mockBehavior func(repo *repo_mocks.MockRepository, client *svc_mocks.MockGatewayClient, events *svc_mocks.MockEventLog)
		wantErr      error
	}{
		{
			name: "ok",
			mockBehavior: func(repo *repo_mocks.MockRepository, client *svc_mocks.MockGatewayClient, events *svc_mocks.MockEventLog) {
				repo.EXPECT().GetPayment(ctx, 10).Return(requested, nil)
				client.EXPECT().Refund(ctx, "txn-1").Return(nil)
				repo.EXPECT().GetTransaction(ctx, "txn-1").
					Return(model.GatewayTransaction{ID: "txn-1", GatewayID: "GW-PRIMARY"}, nil)
				repo.EXPECT().SetTransactionStatus(ctx, "txn-1", model.TransactionRefunded).Return(nil)
				refunded := requested
				refunded.Status = model.PaymentRefunded
				repo.EXPECT().ProcessRefund(ctx, 10).Return(refunded, nil)
				events.EXPECT().Log(gomock.Any()).Return(nil)
			},
		},
		{
			name: "refund not requested",
			mockBehavior: func(repo *repo_mocks.MockRepository, _ *svc_mocks.MockGatewayClient, _ *svc_mocks.MockEventLog) {
				completed := requested
				completed.Status = model.PaymentCompleted
				repo.EXPECT().GetPayment(ctx, 10).Return(completed, nil)
			},
			wantErr: errs.ErrInvalidState,
		},
		{
			name: "gateway refund declined",
			mockBehavior: func(repo *repo_mocks.MockRepository, client *svc_mocks.MockGatewayClient, _ *svc_mocks.MockEventLog) {
				repo.EXPECT().GetPayment(ctx, 10).Return(requested, nil)
				client.EXPECT().Refund(ctx, "txn-1").
					Return(errors.Wrap(errs.ErrGatewayUnavailable, "refund declined"))
			},
			wantErr: errs.ErrGatewayUnavailable,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, repo, client, events := newTestService(t)
			tt.mockBehavior(repo, client, events)

			payment, err := svc.ProcessRefund(ctx, 10)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, model.PaymentRefunded, payment.Status)
		})
	}
}
