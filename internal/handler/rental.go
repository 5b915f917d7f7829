package handler

import (
	"net/http"
	"strconv"

	"github.com/AakashSorathiya/carrental-service/internal/model"
	"github.com/labstack/echo/v4"
)

func (h *Handler) CreateReservation(c echo.Context) error {
	var req model.CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	reservation, err := h.rentalSvc.CreateReservation(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(httpCode(err), err.Error())
	}
	return c.JSON(http.StatusCreated, reservation)
}

func (h *Handler) GetReservation(c echo.Context) error {
	id, err := pathID(c, "reservationId")
	if err != nil {
		return err
	}
	reservation, err := h.rentalSvc.GetReservation(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(httpCode(err), err.Error())
	}
	return c.JSON(http.StatusOK, reservation)
}

func (h *Handler) GetReservations(c echo.Context) error {
	customerID, _ := strconv.Atoi(c.QueryParam("customerId"))
	reservations, err := h.rentalSvc.GetReservations(c.Request().Context(), customerID)
	if err != nil {
		return echo.NewHTTPError(httpCode(err), err.Error())
	}
	return c.JSON(http.StatusOK, reservations)
}

func (h *Handler) ModifyReservation(c echo.Context) error {
	id, err := pathID(c, "reservationId")
	if err != nil {
		return err
	}
	var req model.ModifyReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	reservation, err := h.rentalSvc.ModifyReservation(c.Request().Context(), id, req)
	if err != nil {
		return echo.NewHTTPError(httpCode(err), err.Error())
	}
	return c.JSON(http.StatusOK, reservation)
}

func (h *Handler) CancelReservation(c echo.Context) error {
	id, err := pathID(c, "reservationId")
	if err != nil {
		return err
	}
	reservation, err := h.rentalSvc.CancelReservation(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(httpCode(err), err.Error())
	}
	return c.JSON(http.StatusOK, reservation)
}

func (h *Handler) RecordPayment(c echo.Context) error {
	var req model.RecordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	payment, err := h.rentalSvc.RecordPayment(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(httpCode(err), err.Error())
	}
	return c.JSON(http.StatusCreated, payment)
}

func (h *Handler) GetPayment(c echo.Context) error {
	id, err := pathID(c, "paymentId")
	if err != nil {
		return err
	}
	payment, err := h.rentalSvc.GetPayment(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(httpCode(err), err.Error())
	}
	return c.JSON(http.StatusOK, payment)
}

func (h *Handler) PaymentHistory(c echo.Context) error {
	customerID, _ := strconv.Atoi(c.QueryParam("customerId"))
	history, err := h.rentalSvc.PaymentHistory(c.Request().Context(), customerID)
	if err != nil {
		return echo.NewHTTPError(httpCode(err), err.Error())
	}
	return c.JSON(http.StatusOK, history)
}

func (h *Handler) RequestRefund(c echo.Context) error {
	id, err := pathID(c, "paymentId")
	if err != nil {
		return err
	}
	payment, err := h.rentalSvc.RequestRefund(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(httpCode(err), err.Error())
	}
	return c.JSON(http.StatusOK, payment)
}

func (h *Handler) ProcessRefund(c echo.Context) error {
	id, err := pathID(c, "paymentId")
	if err != nil {
		return err
	}
	payment, err := h.rentalSvc.ProcessRefund(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(httpCode(err), err.Error())
	}
	return c.JSON(http.StatusOK, payment)
}
