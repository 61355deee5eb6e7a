package handler

import (
	"net/http"

	"github.com/githuax/zeduno-sub008/internal/apperr"
	"github.com/githuax/zeduno-sub008/internal/order"
	"github.com/labstack/echo/v4"
)

// TableHandler exposes table management, including the guarded release of
// occupied tables.
type TableHandler struct {
	Svc *order.TableService
}

// Create adds a table
func (h *TableHandler) Create(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	var req struct {
		TenantID *uint  `json:"tenant_id,omitempty"`
		Number   string `json:"number"`
		Capacity int    `json:"capacity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "invalid request"})
	}

	t, err := h.Svc.Create(c.Request().Context(), caller, req.TenantID, req.Number, req.Capacity)
	if err != nil {
		return apperr.Respond(c, "table.create", err)
	}
	return c.JSON(http.StatusCreated, t)
}

// List returns the tables visible to the caller
func (h *TableHandler) List(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	tables, err := h.Svc.List(c.Request().Context(), caller, tenantQuery(c))
	if err != nil {
		return apperr.Respond(c, "table.list", err)
	}
	return c.JSON(http.StatusOK, tables)
}

// SetStatus changes a table's status; releasing a table with active orders
// is rejected with a 409 naming the blocking orders
func (h *TableHandler) SetStatus(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "invalid table ID"})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "status is required"})
	}

	t, err := h.Svc.SetStatus(c.Request().Context(), caller, id, req.Status)
	if err != nil {
		return apperr.Respond(c, "table.set_status", err)
	}
	return c.JSON(http.StatusOK, t)
}
