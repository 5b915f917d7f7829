package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/AakashSorathiya/carrental-service/internal/model"
	"github.com/AakashSorathiya/carrental-service/pkg/kafka"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

type Repository interface {
	CreateCustomer(ctx context.Context, req model.RegisterCustomerRequest, passwordHash string) (model.Customer, error)
	GetCustomer(ctx context.Context, id int) (model.Customer, error)
	GetCustomerByEmail(ctx context.Context, email string) (model.Customer, error)
	ListCustomers(ctx context.Context, page, size int) (model.ListCustomers, error)
	UpdateCustomer(ctx context.Context, id int, req model.UpdateCustomerRequest) (model.Customer, error)
	DeactivateCustomer(ctx context.Context, id int) error

	CreateVehicle(ctx context.Context, req model.AddVehicleRequest) (model.Vehicle, error)
	GetVehicle(ctx context.Context, id int) (model.Vehicle, error)
	ListVehicles(ctx context.Context, status model.VehicleStatus, page, size int) (model.ListVehicles, error)
	UpdateVehicle(ctx context.Context, id int, req model.UpdateVehicleRequest) (model.Vehicle, error)
	SetVehicleMaintenance(ctx context.Context, id int) (model.Vehicle, error)
	ReturnVehicleToService(ctx context.Context, id int) (model.Vehicle, error)

	CreateReservation(ctx context.Context, req model.CreateReservationRequest, totalCost float64) (model.Reservation, error)
	GetReservation(ctx context.Context, id int) (model.Reservation, error)
	ListReservationsByCustomer(ctx context.Context, customerID int) ([]model.Reservation, error)
	CancelReservation(ctx context.Context, id int) (model.Reservation, error)
	ModifyReservation(ctx context.Context, id int, start, end time.Time, totalCost float64) (model.Reservation, error)

	CreatePayment(ctx context.Context, reservationID int, amount float64, method, txnRef string) (model.Payment, error)
	GetPayment(ctx context.Context, id int) (model.Payment, error)
	PaymentHistory(ctx context.Context, customerID int) ([]model.PaymentHistoryItem, error)
	RequestRefund(ctx context.Context, paymentID int) (model.Payment, error)
	ProcessRefund(ctx context.Context, paymentID int) (model.Payment, error)

	ListGateways(ctx context.Context) ([]model.PaymentGateway, error)
	ActiveGateway(ctx context.Context) (model.PaymentGateway, error)
	SetGatewayStatus(ctx context.Context, gatewayID string, status model.GatewayStatus) (bool, error)
	SaveTransaction(ctx context.Context, txn model.GatewayTransaction) error
	GetTransaction(ctx context.Context, transactionID string) (model.GatewayTransaction, error)
	SetTransactionStatus(ctx context.Context, transactionID string, status model.TransactionStatus) error
	RecentTransactions(ctx context.Context, limit int) ([]model.GatewayTransaction, error)
	InsertGatewayLog(ctx context.Context, event kafka.GatewayEvent) error
	GatewayLogs(ctx context.Context, gatewayID string, limit int) ([]model.GatewayLog, error)
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	customersTableName    = `customers`
	vehiclesTableName     = `vehicles`
	reservationsTableName = `reservations`
	paymentsTableName     = `payments`
	gatewaysTableName     = `payment_gateways`
	transactionsTableName = `transactions`
	gatewayLogsTableName  = `gateway_logs`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
