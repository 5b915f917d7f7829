package service

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/AakashSorathiya/carrental-service/internal/errs"
	"github.com/AakashSorathiya/carrental-service/internal/model"
	"github.com/AakashSorathiya/carrental-service/internal/repository"
	"github.com/AakashSorathiya/carrental-service/pkg/kafka"
)

// Credentials carries the built-in admin login and token lifetime.
type Credentials struct {
	AdminEmail    string
	AdminPassword string
	TokenTTL      time.Duration
}

type Service struct {
	log     *zap.Logger
	repo    repository.Repository
	gateway GatewayClient
	events  EventLog
	creds   Credentials
}

func NewService(repo repository.Repository, gateway GatewayClient, events EventLog, creds Credentials, log *zap.Logger) *Service {
	return &Service{
		log:     log,
		repo:    repo,
		gateway: gateway,
		events:  events,
		creds:   creds,
	}
}

// TotalCost prices a rental over an inclusive date range: both the pick-up
// and the return day are billed.
func TotalCost(dailyRate float64, start, end time.Time) float64 {
	days := int(end.Sub(start).Hours()/24) + 1
	return math.Round(dailyRate*float64(days)*100) / 100
}

func (s *Service) CreateReservation(ctx context.Context, req model.CreateReservationRequest) (model.Reservation, error) {
	if req.EndDate.Before(req.StartDate.Time) {
		return model.Reservation{}, errors.Wrap(errs.ErrValidation, "end date before start date")
	}
	customer, err := s.repo.GetCustomer(ctx, req.CustomerID)
	if err != nil {
		return model.Reservation{}, err
	}
	if customer.Status != model.CustomerActive {
		return model.Reservation{}, errors.Wrap(errs.ErrInvalidState, "customer is inactive")
	}
	vehicle, err := s.repo.GetVehicle(ctx, req.VehicleID)
	if err != nil {
		return model.Reservation{}, err
	}

	cost := TotalCost(vehicle.DailyRate, req.StartDate.Time, req.EndDate.Time)
	rsv, err := s.repo.CreateReservation(ctx, req, cost)
	if err != nil {
		return model.Reservation{}, err
	}
	return rsv, nil
}

func (s *Service) GetReservation(ctx context.Context, id int) (model.Reservation, error) {
	return s.repo.GetReservation(ctx, id)
}

func (s *Service) GetReservations(ctx context.Context, customerID int) ([]model.Reservation, error) {
	return s.repo.ListReservationsByCustomer(ctx, customerID)
}

func (s *Service) CancelReservation(ctx context.Context, id int) (model.Reservation, error) {
	return s.repo.CancelReservation(ctx, id)
}

func (s *Service) ModifyReservation(ctx context.Context, id int, req model.ModifyReservationRequest) (model.Reservation, error) {
	if req.EndDate.Before(req.StartDate.Time) {
		return model.Reservation{}, errors.Wrap(errs.ErrValidation, "end date before start date")
	}
	rsv, err := s.repo.GetReservation(ctx, id)
	if err != nil {
		return model.Reservation{}, err
	}
	vehicle, err := s.repo.GetVehicle(ctx, rsv.VehicleID)
	if err != nil {
		return model.Reservation{}, err
	}
	cost := TotalCost(vehicle.DailyRate, req.StartDate.Time, req.EndDate.Time)
	return s.repo.ModifyReservation(ctx, id, req.StartDate.Time, req.EndDate.Time, cost)
}

// RecordPayment charges the active gateway and settles the ledgers: payment
// COMPLETED, reservation CONFIRMED. The charged amount must match the
// reservation's total cost.
func (s *Service) RecordPayment(ctx context.Context, req model.RecordPaymentRequest) (model.Payment, error) {
	if req.Amount <= 0 {
		return model.Payment{}, errors.Wrap(errs.ErrValidation, "amount must be positive")
	}
	rsv, err := s.repo.GetReservation(ctx, req.ReservationID)
	if err != nil {
		return model.Payment{}, err
	}
	if rsv.Status != model.ReservationPending {
		return model.Payment{}, errors.Wrapf(errs.ErrInvalidState, "reservation is %s", rsv.Status)
	}
	if math.Abs(req.Amount-rsv.TotalCost) > 1e-9 {
		return model.Payment{}, errors.Wrapf(errs.ErrValidation, "amount %.2f does not match total cost %.2f", req.Amount, rsv.TotalCost)
	}

	gw, err := s.repo.ActiveGateway(ctx)
	if err != nil {
		return model.Payment{}, err
	}
	txnRef, err := s.gateway.Charge(ctx, gw.ID, req.Amount)
	if err != nil {
		s.logEvent(gw.ID, kafka.EventError, "charge failed: "+err.Error())
		return model.Payment{}, err
	}
	if err := s.repo.SaveTransaction(ctx, model.GatewayTransaction{
		ID:        txnRef,
		Amount:    req.Amount,
		GatewayID: gw.ID,
		Status:    model.TransactionCompleted,
	}); err != nil {
		return model.Payment{}, err
	}

	payment, err := s.repo.CreatePayment(ctx, req.ReservationID, req.Amount, req.Method, txnRef)
	if err != nil {
		if serr := s.repo.SetTransactionStatus(ctx, txnRef, model.TransactionFailed); serr != nil {
			s.log.Error("SetTransactionStatus", zap.String("txn", txnRef), zap.Error(serr))
		}
		return model.Payment{}, err
	}

	s.logEvent(gw.ID, kafka.EventTransaction, "payment "+txnRef+" completed")
	return payment, nil
}

func (s *Service) GetPayment(ctx context.Context, id int) (model.Payment, error) {
	return s.repo.GetPayment(ctx, id)
}

func (s *Service) PaymentHistory(ctx context.Context, customerID int) ([]model.PaymentHistoryItem, error) {
	return s.repo.PaymentHistory(ctx, customerID)
}

func (s *Service) RequestRefund(ctx context.Context, paymentID int) (model.Payment, error) {
	return s.repo.RequestRefund(ctx, paymentID)
}

// ProcessRefund completes a requested refund: the gateway transaction is
// reversed and the payment, reservation and vehicle settle to
// REFUNDED/CANCELLED/AVAILABLE.
func (s *Service) ProcessRefund(ctx context.Context, paymentID int) (model.Payment, error) {
	payment, err := s.repo.GetPayment(ctx, paymentID)
	if err != nil {
		return model.Payment{}, err
	}
	if payment.Status != model.PaymentRefundRequested {
		return model.Payment{}, errors.Wrapf(errs.ErrInvalidState, "payment is %s", payment.Status)
	}

	var gatewayID, txnRef string
	if payment.TransactionID != nil {
		txnRef = *payment.TransactionID
		if err := s.gateway.Refund(ctx, txnRef); err != nil {
			return model.Payment{}, err
		}
		if txn, err := s.repo.GetTransaction(ctx, txnRef); err == nil {
			gatewayID = txn.GatewayID
		}
		if err := s.repo.SetTransactionStatus(ctx, txnRef, model.TransactionRefunded); err != nil {
			s.log.Error("SetTransactionStatus", zap.String("txn", txnRef), zap.Error(err))
		}
	}

	refunded, err := s.repo.ProcessRefund(ctx, paymentID)
	if err != nil {
		return model.Payment{}, err
	}
	if gatewayID != "" {
		s.logEvent(gatewayID, kafka.EventTransaction, "payment "+txnRef+" refunded")
	}
	return refunded, nil
}

// logEvent publishes a gateway event; persistence happens in the consumer and
// a publish failure never fails the operation that triggered it.
func (s *Service) logEvent(gatewayID, eventType, data string) {
	if err := s.events.Log(kafka.GatewayEvent{
		Timestamp: time.Now().UTC(),
		GatewayID: gatewayID,
		EventType: eventType,
		EventData: data,
	}); err != nil {
		s.log.Error("events.Log", zap.Error(err))
	}
}
