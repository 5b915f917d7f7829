package handler

import (
	"net/http"
	"strconv"

	"github.com/AakashSorathiya/carrental-service/internal/model"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
)

const defaultLogLimit = 50

func (h *Handler) ListGateways(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		gateways     []model.PaymentGateway
		transactions []model.GatewayTransaction
	)
	gg, ctx := errgroup.WithContext(ctx)
	gg.Go(func() error {
		list, err := h.gatewaySvc.ListGateways(ctx)
		if err != nil {
			return err
		}
		gateways = list
		return nil
	})
	gg.Go(func() error {
		list, err := h.gatewaySvc.RecentTransactions(ctx, defaultLogLimit)
		if err != nil {
			return err
		}
		transactions = list
		return nil
	})
	if err := gg.Wait(); err != nil {
		return echo.NewHTTPError(httpCode(err), err.Error())
	}

	type overview struct {
		Gateways           []model.PaymentGateway     `json:"gateways"`
		RecentTransactions []model.GatewayTransaction `json:"recentTransactions"`
	}
	return c.JSON(http.StatusOK, overview{Gateways: gateways, RecentTransactions: transactions})
}

func (h *Handler) GatewayLogs(c echo.Context) error {
	gatewayID := c.Param("gatewayId")
	if gatewayID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "gatewayId is empty")
	}
	limit := defaultLogLimit
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		limit = v
	}
	logs, err := h.gatewaySvc.GatewayLogs(c.Request().Context(), gatewayID, limit)
	if err != nil {
		return echo.NewHTTPError(httpCode(err), err.Error())
	}
	return c.JSON(http.StatusOK, logs)
}

func (h *Handler) RecentTransactions(c echo.Context) error {
	limit := defaultLogLimit
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		limit = v
	}
	transactions, err := h.gatewaySvc.RecentTransactions(c.Request().Context(), limit)
	if err != nil {
		return echo.NewHTTPError(httpCode(err), err.Error())
	}
	return c.JSON(http.StatusOK, transactions)
}
