package handler

import (
	"net/http"

	"github.com/AakashSorathiya/carrental-service/internal/model"
	"github.com/labstack/echo/v4"
)

func (h *Handler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	resp, err := h.customerSvc.Login(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) RegisterCustomer(c echo.Context) error {
	var req model.RegisterCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	customer, err := h.customerSvc.RegisterCustomer(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(httpCode(err), err.Error())
	}
	return c.JSON(http.StatusCreated, customer)
}

func (h *Handler) GetCustomer(c echo.Context) error {
	id, err := pathID(c, "customerId")
	if err != nil {
		return err
	}
	customer, err := h.customerSvc.GetCustomer(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(httpCode(err), err.Error())
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *Handler) ListCustomers(c echo.Context) error {
	page, size := paging(c)
	customers, err := h.customerSvc.ListCustomers(c.Request().Context(), page, size)
	if err != nil {
		return echo.NewHTTPError(httpCode(err), err.Error())
	}
	return c.JSON(http.StatusOK, customers)
}

func (h *Handler) UpdateCustomer(c echo.Context) error {
	id, err := pathID(c, "customerId")
	if err != nil {
		return err
	}
	var req model.UpdateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	customer, err := h.customerSvc.UpdateCustomer(c.Request().Context(), id, req)
	if err != nil {
		return echo.NewHTTPError(httpCode(err), err.Error())
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *Handler) DeregisterCustomer(c echo.Context) error {
	id, err := pathID(c, "customerId")
	if err != nil {
		return err
	}
	if err := h.customerSvc.DeregisterCustomer(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(httpCode(err), err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
