package handler

import (
	"net/http"

	"github.com/githuax/zeduno-sub008/internal/apperr"
	"github.com/githuax/zeduno-sub008/internal/order"
	"github.com/githuax/zeduno-sub008/pkg/logger"
	"github.com/githuax/zeduno-sub008/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// OrderHandler exposes the order lifecycle over HTTP.
type OrderHandler struct {
	Svc *order.Service
}

// Create handles order placement
func (h *OrderHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOrderOperation("create")

	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	var input order.CreateInput
	if err := c.Bind(&input); err != nil {
		log.Warn("failed to parse order creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "invalid request"})
	}

	o, err := h.Svc.Create(c.Request().Context(), caller, input)
	if err != nil {
		return apperr.Respond(c, "order.create", err)
	}

	return c.JSON(http.StatusCreated, o)
}

// Get retrieves one order
func (h *OrderHandler) Get(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "invalid order ID"})
	}

	o, err := h.Svc.Get(c.Request().Context(), caller, id)
	if err != nil {
		return apperr.Respond(c, "order.get", err)
	}
	return c.JSON(http.StatusOK, o)
}

// List returns the orders visible to the caller
func (h *OrderHandler) List(c echo.Context) error {
	prometheus.RecordOrderOperation("list")

	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	orders, err := h.Svc.List(c.Request().Context(), caller, tenantQuery(c),
		intQuery(c, "limit", 50), intQuery(c, "offset", 0))
	if err != nil {
		return apperr.Respond(c, "order.list", err)
	}
	return c.JSON(http.StatusOK, orders)
}

// Transition moves an order to a new status
func (h *OrderHandler) Transition(c echo.Context) error {
	prometheus.RecordOrderOperation("transition")

	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "invalid order ID"})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "status is required"})
	}

	o, err := h.Svc.Transition(c.Request().Context(), caller, id, req.Status)
	if err != nil {
		return apperr.Respond(c, "order.transition", err)
	}
	return c.JSON(http.StatusOK, o)
}

// UpdateItems replaces the line items of a non-terminal order
func (h *OrderHandler) UpdateItems(c echo.Context) error {
	prometheus.RecordOrderOperation("update_items")

	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "invalid order ID"})
	}

	var req struct {
		Items []order.ItemInput `json:"items"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "invalid request"})
	}

	o, err := h.Svc.UpdateItems(c.Request().Context(), caller, id, req.Items)
	if err != nil {
		return apperr.Respond(c, "order.update_items", err)
	}
	return c.JSON(http.StatusOK, o)
}
