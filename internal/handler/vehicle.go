package handler

import (
	"net/http"

	"github.com/AakashSorathiya/carrental-service/internal/model"
	"github.com/labstack/echo/v4"
)

func (h *Handler) AddVehicle(c echo.Context) error {
	var req model.AddVehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	vehicle, err := h.vehicleSvc.AddVehicle(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(httpCode(err), err.Error())
	}
	return c.JSON(http.StatusCreated, vehicle)
}

func (h *Handler) GetVehicle(c echo.Context) error {
	id, err := pathID(c, "vehicleId")
	if err != nil {
		return err
	}
	vehicle, err := h.vehicleSvc.GetVehicle(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(httpCode(err), err.Error())
	}
	return c.JSON(http.StatusOK, vehicle)
}

func (h *Handler) ListVehicles(c echo.Context) error {
	page, size := paging(c)
	status := model.VehicleStatus(c.QueryParam("status"))
	vehicles, err := h.vehicleSvc.ListVehicles(c.Request().Context(), status, page, size)
	if err != nil {
		return echo.NewHTTPError(httpCode(err), err.Error())
	}
	return c.JSON(http.StatusOK, vehicles)
}

func (h *Handler) UpdateVehicle(c echo.Context) error {
	id, err := pathID(c, "vehicleId")
	if err != nil {
		return err
	}
	var req model.UpdateVehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	vehicle, err := h.vehicleSvc.UpdateVehicle(c.Request().Context(), id, req)
	if err != nil {
		return echo.NewHTTPError(httpCode(err), err.Error())
	}
	return c.JSON(http.StatusOK, vehicle)
}

func (h *Handler) SetVehicleMaintenance(c echo.Context) error {
	id, err := pathID(c, "vehicleId")
	if err != nil {
		return err
	}
	vehicle, err := h.vehicleSvc.SetVehicleMaintenance(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(httpCode(err), err.Error())
	}
	return c.JSON(http.StatusOK, vehicle)
}

func (h *Handler) ReturnVehicleToService(c echo.Context) error {
	id, err := pathID(c, "vehicleId")
	if err != nil {
		return err
	}
	vehicle, err := h.vehicleSvc.ReturnVehicleToService(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(httpCode(err), err.Error())
	}
	return c.JSON(http.StatusOK, vehicle)
}
