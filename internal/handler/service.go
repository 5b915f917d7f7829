package handler

import (
	"context"

	"github.com/AakashSorathiya/carrental-service/internal/model"
	"github.com/AakashSorathiya/carrental-service/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type CustomerService interface {
	RegisterCustomer(ctx context.Context, req model.RegisterCustomerRequest) (model.Customer, error)
	GetCustomer(ctx context.Context, id int) (model.Customer, error)
	ListCustomers(ctx context.Context, page, size int) (model.ListCustomers, error)
	UpdateCustomer(ctx context.Context, id int, req model.UpdateCustomerRequest) (model.Customer, error)
	DeregisterCustomer(ctx context.Context, id int) error
	Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error)
}

type VehicleService interface {
	AddVehicle(ctx context.Context, req model.AddVehicleRequest) (model.Vehicle, error)
	GetVehicle(ctx context.Context, id int) (model.Vehicle, error)
	ListVehicles(ctx context.Context, status model.VehicleStatus, page, size int) (model.ListVehicles, error)
	UpdateVehicle(ctx context.Context, id int, req model.UpdateVehicleRequest) (model.Vehicle, error)
	SetVehicleMaintenance(ctx context.Context, id int) (model.Vehicle, error)
	ReturnVehicleToService(ctx context.Context, id int) (model.Vehicle, error)
}

type RentalService interface {
	CreateReservation(ctx context.Context, req model.CreateReservationRequest) (model.Reservation, error)
	GetReservation(ctx context.Context, id int) (model.Reservation, error)
	GetReservations(ctx context.Context, customerID int) ([]model.Reservation, error)
	CancelReservation(ctx context.Context, id int) (model.Reservation, error)
	ModifyReservation(ctx context.Context, id int, req model.ModifyReservationRequest) (model.Reservation, error)
	RecordPayment(ctx context.Context, req model.RecordPaymentRequest) (model.Payment, error)
	GetPayment(ctx context.Context, id int) (model.Payment, error)
	PaymentHistory(ctx context.Context, customerID int) ([]model.PaymentHistoryItem, error)
	RequestRefund(ctx context.Context, paymentID int) (model.Payment, error)
	ProcessRefund(ctx context.Context, paymentID int) (model.Payment, error)
}

type GatewayService interface {
	ListGateways(ctx context.Context) ([]model.PaymentGateway, error)
	GatewayLogs(ctx context.Context, gatewayID string, limit int) ([]model.GatewayLog, error)
	RecentTransactions(ctx context.Context, limit int) ([]model.GatewayTransaction, error)
}

var (
	_ CustomerService = (*service.Service)(nil)
	_ VehicleService  = (*service.Service)(nil)
	_ RentalService   = (*service.Service)(nil)
	_ GatewayService  = (*service.Service)(nil)
)
