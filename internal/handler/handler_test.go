package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AakashSorathiya/carrental-service/internal/errs"
	"github.com/AakashSorathiya/carrental-service/internal/handler"
	"github.com/AakashSorathiya/carrental-service/internal/model"
	"github.com/AakashSorathiya/carrental-service/pkg/validate"

	service_mocks "github.com/AakashSorathiya/carrental-service/internal/handler/mocks"
)

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func newTestHandler(t *testing.T) (*handler.Handler, *service_mocks.MockCustomerService, *service_mocks.MockVehicleService, *service_mocks.MockRentalService, *service_mocks.MockGatewayService) {
	t.Helper()
	c := gomock.NewController(t)
	customerSvc := service_mocks.NewMockCustomerService(c)
	vehicleSvc := service_mocks.NewMockVehicleService(c)
	rentalSvc := service_mocks.NewMockRentalService(c)
	gatewaySvc := service_mocks.NewMockGatewayService(c)
	log := zap.NewExample().Named("test")
	return handler.New(customerSvc, vehicleSvc, rentalSvc, gatewaySvc, log), customerSvc, vehicleSvc, rentalSvc, gatewaySvc
}

func TestHandler_CreateReservation(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockRentalService)

	reqModel := model.CreateReservationRequest{
		CustomerID: 5,
		VehicleID:  7,
		StartDate:  model.Date{Time: date("2024-06-01")},
		EndDate:    model.Date{Time: date("2024-06-03")},
	}

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"customerId":5,"vehicleId":7,"startDate":"2024-06-01","endDate":"2024-06-03"}`,
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					CreateReservation(context.Background(), reqModel).
					Return(model.Reservation{
						ID:         1,
						CustomerID: 5,
						VehicleID:  7,
						StartDate:  date("2024-06-01"),
						EndDate:    date("2024-06-03"),
						TotalCost:  150.00,
						Status:     model.ReservationPending,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"reservationId":1,"customerId":5,"vehicleId":7,"startDate":"2024-06-01T00:00:00Z","endDate":"2024-06-03T00:00:00Z","totalCost":150,"status":"PENDING"}`,
			},
		},
		{
			name:         "err. missing vehicleId",
			body:         `{"customerId":5,"startDate":"2024-06-01","endDate":"2024-06-03"}`,
			mockBehavior: func(r *service_mocks.MockRentalService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
		{
			name: "err. vehicle taken",
			body: `{"customerId":5,"vehicleId":7,"startDate":"2024-06-01","endDate":"2024-06-03"}`,
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					CreateReservation(context.Background(), reqModel).
					Return(model.Reservation{}, errors.Wrap(errs.ErrConflict, "vehicle is RESERVED"))
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"vehicle is RESERVED: conflict"}`,
			},
		},
		{
			name: "err. unknown customer",
			body: `{"customerId":5,"vehicleId":7,"startDate":"2024-06-01","endDate":"2024-06-03"}`,
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					CreateReservation(context.Background(), reqModel).
					Return(model.Reservation{}, errs.ErrNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"not found"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, _, _, rentalSvc, _ := newTestHandler(t)
			tt.mockBehavior(rentalSvc)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/reservations", h.CreateReservation)

			r := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.JSONEq(t, tt.response.expectedBody, w.Body.String())
			}
		})
	}
}

func TestHandler_RecordPayment(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockRentalService)

	txnRef := "5b2e2f3c-7f4e-4f2a-9f67-1f9a2f3b4c5d"
	reqModel := model.RecordPaymentRequest{ReservationID: 3, Amount: 150.00, Method: "CREDIT_CARD"}

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"reservationId":3,"amount":150,"paymentMethod":"CREDIT_CARD"}`,
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					RecordPayment(context.Background(), reqModel).
					Return(model.Payment{
						ID:            10,
						ReservationID: 3,
						Amount:        150.00,
						Method:        "CREDIT_CARD",
						Status:        model.PaymentCompleted,
						TransactionID: &txnRef,
						PaymentDate:   date("2024-06-01"),
					}, nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"paymentId":10,"reservationId":3,"amount":150,"paymentMethod":"CREDIT_CARD","paymentStatus":"COMPLETED","transactionReference":"5b2e2f3c-7f4e-4f2a-9f67-1f9a2f3b4c5d","paymentDate":"2024-06-01T00:00:00Z"}`,
			},
		},
		{
			name:         "err. unknown payment method",
			body:         `{"reservationId":3,"amount":150,"paymentMethod":"BARTER"}`,
			mockBehavior: func(r *service_mocks.MockRentalService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
		{
			name: "err. amount mismatch",
			body: `{"reservationId":3,"amount":150,"paymentMethod":"CREDIT_CARD"}`,
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					RecordPayment(context.Background(), reqModel).
					Return(model.Payment{}, errors.Wrap(errs.ErrValidation, "amount 150.00 does not match total cost 300.00"))
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"amount 150.00 does not match total cost 300.00: invalid input"}`,
			},
		},
		{
			name: "err. gateway down",
			body: `{"reservationId":3,"amount":150,"paymentMethod":"CREDIT_CARD"}`,
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					RecordPayment(context.Background(), reqModel).
					Return(model.Payment{}, errors.Wrap(errs.ErrGatewayUnavailable, "charge declined"))
			},
			response: response{
				expectedCode: http.StatusBadGateway,
				expectedBody: `{"message":"charge declined: payment gateway unavailable"}`,
			},
		},
		{
			name: "err. reservation already confirmed",
			body: `{"reservationId":3,"amount":150,"paymentMethod":"CREDIT_CARD"}`,
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					RecordPayment(context.Background(), reqModel).
					Return(model.Payment{}, errors.Wrap(errs.ErrInvalidState, "reservation is CONFIRMED"))
			},
			response: response{
				expectedCode: http.StatusUnprocessableEntity,
				expectedBody: `{"message":"reservation is CONFIRMED: invalid state"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, _, _, rentalSvc, _ := newTestHandler(t)
			tt.mockBehavior(rentalSvc)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/payments", h.RecordPayment)

			r := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.JSONEq(t, tt.response.expectedBody, w.Body.String())
			}
		})
	}
}

func TestHandler_ProcessRefund(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}

	txnRef := "txn-1"
	var tests = []struct {
		name         string
		paymentID    string
		mockBehavior func(r *service_mocks.MockRentalService)
		response     response
	}{
		{
			name:      "ok",
			paymentID: "10",
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					ProcessRefund(context.Background(), 10).
					Return(model.Payment{
						ID:            10,
						ReservationID: 3,
						Amount:        150.00,
						Method:        "CREDIT_CARD",
						Status:        model.PaymentRefunded,
						TransactionID: &txnRef,
						PaymentDate:   date("2024-06-01"),
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"paymentId":10,"reservationId":3,"amount":150,"paymentMethod":"CREDIT_CARD","paymentStatus":"REFUNDED","transactionReference":"txn-1","paymentDate":"2024-06-01T00:00:00Z"}`,
			},
		},
		{
			name:      "err. refund not requested",
			paymentID: "10",
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					ProcessRefund(context.Background(), 10).
					Return(model.Payment{}, errors.Wrap(errs.ErrInvalidState, "payment is COMPLETED"))
			},
			response: response{
				expectedCode: http.StatusUnprocessableEntity,
				expectedBody: `{"message":"payment is COMPLETED: invalid state"}`,
			},
		},
		{
			name:         "err. bad payment id",
			paymentID:    "abc",
			mockBehavior: func(r *service_mocks.MockRentalService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"paymentId must be a positive integer"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, _, _, rentalSvc, _ := newTestHandler(t)
			tt.mockBehavior(rentalSvc)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/payments/:paymentId/refund", h.ProcessRefund)

			r := httptest.NewRequest(http.MethodPost, "/payments/"+tt.paymentID+"/refund", http.NoBody)
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.JSONEq(t, tt.response.expectedBody, w.Body.String())
			}
		})
	}
}
