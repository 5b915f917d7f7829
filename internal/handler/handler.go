package handler

import (
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/AakashSorathiya/carrental-service/internal/errs"
	"github.com/AakashSorathiya/carrental-service/pkg/auth"
	cb "github.com/AakashSorathiya/carrental-service/pkg/circuit_breaker"
	mw "github.com/AakashSorathiya/carrental-service/pkg/middleware"
	"github.com/AakashSorathiya/carrental-service/pkg/validate"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Handler struct {
	customerSvc CustomerService
	vehicleSvc  VehicleService
	rentalSvc   RentalService
	gatewaySvc  GatewayService
	log         *zap.Logger
}

func New(customerSvc CustomerService, vehicleSvc VehicleService, rentalSvc RentalService, gatewaySvc GatewayService, log *zap.Logger) *Handler {
	return &Handler{
		customerSvc: customerSvc,
		vehicleSvc:  vehicleSvc,
		rentalSvc:   rentalSvc,
		gatewaySvc:  gatewaySvc,
		log:         log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", mw.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(mw.RequestLoggerConfig()),
		middleware.RequestID(),
		mw.NewRateLimiter(apiRPS),
	)

	api.POST("/login", h.Login)
	api.POST("/customers", h.RegisterCustomer)

	authed := api.Group("", mw.JwtAuthentication)
	authed.GET("/customers/:customerId", h.GetCustomer)
	authed.PATCH("/customers/:customerId", h.UpdateCustomer)

	authed.GET("/vehicles", h.ListVehicles)
	authed.GET("/vehicles/:vehicleId", h.GetVehicle)

	authed.POST("/reservations", h.CreateReservation)
	authed.GET("/reservations", h.GetReservations)
	authed.GET("/reservations/:reservationId", h.GetReservation)
	authed.PATCH("/reservations/:reservationId", h.ModifyReservation)
	authed.DELETE("/reservations/:reservationId", h.CancelReservation)

	authed.POST("/payments", h.RecordPayment)
	authed.GET("/payments", h.PaymentHistory)
	authed.GET("/payments/:paymentId", h.GetPayment)
	authed.POST("/payments/:paymentId/refund-request", h.RequestRefund)

	admin := authed.Group("", mw.RequireRole(auth.RoleAdmin))
	admin.GET("/customers", h.ListCustomers)
	admin.DELETE("/customers/:customerId", h.DeregisterCustomer)
	admin.POST("/vehicles", h.AddVehicle)
	admin.PUT("/vehicles/:vehicleId", h.UpdateVehicle)
	admin.POST("/vehicles/:vehicleId/maintenance", h.SetVehicleMaintenance)
	admin.POST("/vehicles/:vehicleId/activate", h.ReturnVehicleToService)
	admin.POST("/payments/:paymentId/refund", h.ProcessRefund)
	admin.GET("/gateways", h.ListGateways)
	admin.GET("/gateways/transactions", h.RecentTransactions)
	admin.GET("/gateways/:gatewayId/logs", h.GatewayLogs)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func httpCode(err error) int {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrInvalidState):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrGatewayUnavailable), errors.Is(err, cb.ErrOpenCB):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func pathID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a positive integer")
	}
	return id, nil
}

func paging(c echo.Context) (page, size int) {
	page, size = 1, 20
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("size")); err == nil && v > 0 {
		size = v
	}
	return page, size
}
