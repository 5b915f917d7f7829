package model

import (
	"strings"
	"time"
)

type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "ACTIVE"
	CustomerInactive CustomerStatus = "INACTIVE"
)

type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "AVAILABLE"
	VehicleReserved    VehicleStatus = "RESERVED"
	VehicleRented      VehicleStatus = "RENTED"
	VehicleMaintenance VehicleStatus = "MAINTENANCE"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentPending         PaymentStatus = "PENDING"
	PaymentCompleted       PaymentStatus = "COMPLETED"
	PaymentRefundRequested PaymentStatus = "REFUND_REQUESTED"
	PaymentRefunded        PaymentStatus = "REFUNDED"
)

type GatewayStatus string

const (
	GatewayActive      GatewayStatus = "ACTIVE"
	GatewayInactive    GatewayStatus = "INACTIVE"
	GatewayMaintenance GatewayStatus = "MAINTENANCE"
)

type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "COMPLETED"
	TransactionFailed    TransactionStatus = "FAILED"
	TransactionRefunded  TransactionStatus = "REFUNDED"
)

// Date marshals as a plain yyyy-mm-dd string.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		return nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

type Customer struct {
	ID             int            `json:"customerId" db:"customer_id"`
	FirstName      string         `json:"firstName" db:"first_name"`
	LastName       string         `json:"lastName" db:"last_name"`
	Email          string         `json:"email" db:"email"`
	Phone          string         `json:"phone" db:"phone"`
	DriversLicense string         `json:"driversLicense" db:"drivers_license"`
	Address        string         `json:"address" db:"address"`
	PasswordHash   string         `json:"-" db:"password_hash"`
	Status         CustomerStatus `json:"status" db:"status"`
}

type Vehicle struct {
	ID              int           `json:"vehicleId" db:"vehicle_id"`
	Make            string        `json:"make" db:"make"`
	Model           string        `json:"model" db:"model"`
	Year            int           `json:"year" db:"year"`
	Color           string        `json:"color" db:"color"`
	LicensePlate    string        `json:"licensePlate" db:"license_plate"`
	DailyRate       float64       `json:"dailyRate" db:"daily_rate"`
	Status          VehicleStatus `json:"status" db:"status"`
	LastMaintenance *time.Time    `json:"lastMaintenance,omitempty" db:"last_maintenance_date"`
	NextMaintenance *time.Time    `json:"nextMaintenance,omitempty" db:"next_maintenance_date"`
}

type Reservation struct {
	ID         int               `json:"reservationId" db:"reservation_id"`
	CustomerID int               `json:"customerId" db:"customer_id"`
	VehicleID  int               `json:"vehicleId" db:"vehicle_id"`
	StartDate  time.Time         `json:"startDate" db:"start_date"`
	EndDate    time.Time         `json:"endDate" db:"end_date"`
	TotalCost  float64           `json:"totalCost" db:"total_cost"`
	Status     ReservationStatus `json:"status" db:"status"`
}

type Payment struct {
	ID            int            `json:"paymentId" db:"payment_id"`
	ReservationID int            `json:"reservationId" db:"reservation_id"`
	Amount        float64        `json:"amount" db:"amount"`
	Method        string         `json:"paymentMethod" db:"payment_method"`
	Status        PaymentStatus  `json:"paymentStatus" db:"payment_status"`
	TransactionID *string        `json:"transactionReference" db:"transaction_reference"`
	PaymentDate   time.Time      `json:"paymentDate" db:"payment_date"`
}

type PaymentGateway struct {
	ID     string        `json:"gatewayId" db:"gateway_id"`
	Name   string        `json:"name" db:"name"`
	Status GatewayStatus `json:"status" db:"status"`
}

type GatewayLog struct {
	ID        int       `json:"logId" db:"log_id"`
	GatewayID string    `json:"gatewayId" db:"gateway_id"`
	EventType string    `json:"eventType" db:"event_type"`
	EventData string    `json:"eventData" db:"event_data"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type GatewayTransaction struct {
	ID        string            `json:"transactionId" db:"transaction_id"`
	Amount    float64           `json:"amount" db:"amount"`
	GatewayID string            `json:"gatewayId" db:"gateway_id"`
	Status    TransactionStatus `json:"status" db:"status"`
	CreatedAt time.Time         `json:"createdAt" db:"created_at"`
}

type RegisterCustomerRequest struct {
	FirstName      string `json:"firstName" validate:"required"`
	LastName       string `json:"lastName" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required,len=10,numeric"`
	DriversLicense string `json:"driversLicense" validate:"required"`
	Address        string `json:"address"`
	Password       string `json:"password" validate:"required,min=6"`
}

type UpdateCustomerRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone" validate:"omitempty,len=10,numeric"`
	Address   *string `json:"address"`
}

type AddVehicleRequest struct {
	Make         string  `json:"make" validate:"required"`
	Model        string  `json:"model" validate:"required"`
	Year         int     `json:"year" validate:"required,gte=1950"`
	Color        string  `json:"color"`
	LicensePlate string  `json:"licensePlate" validate:"required"`
	DailyRate    float64 `json:"dailyRate" validate:"required,gt=0"`
}

type UpdateVehicleRequest struct {
	Make      *string  `json:"make"`
	Model     *string  `json:"model"`
	Year      *int     `json:"year" validate:"omitempty,gte=1950"`
	Color     *string  `json:"color"`
	DailyRate *float64 `json:"dailyRate" validate:"omitempty,gt=0"`
}

type CreateReservationRequest struct {
	CustomerID int  `json:"customerId" validate:"required"`
	VehicleID  int  `json:"vehicleId" validate:"required"`
	StartDate  Date `json:"startDate" validate:"required"`
	EndDate    Date `json:"endDate" validate:"required"`
}

type ModifyReservationRequest struct {
	StartDate Date `json:"startDate" validate:"required"`
	EndDate   Date `json:"endDate" validate:"required"`
}

type RecordPaymentRequest struct {
	ReservationID int     `json:"reservationId" validate:"required"`
	Amount        float64 `json:"amount" validate:"required"`
	Method        string  `json:"paymentMethod" validate:"required,oneof=CREDIT_CARD DEBIT_CARD CASH"`
}

type PaymentHistoryItem struct {
	Payment
	CustomerID        int               `json:"customerId" db:"customer_id"`
	ReservationStatus ReservationStatus `json:"reservationStatus" db:"reservation_status"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type Paging struct {
	Page          int `json:"page"`
	PageSize      int `json:"pageSize"`
	TotalElements int `json:"totalElements"`
}

type ListVehicles struct {
	Paging
	Items []Vehicle `json:"items"`
}

type ListCustomers struct {
	Paging
	Items []Customer `json:"items"`
}
