package handler

import (
	"net/http"

	"github.com/githuax/zeduno-sub008/internal/apperr"
	"github.com/githuax/zeduno-sub008/internal/tenantadmin"
	"github.com/githuax/zeduno-sub008/pkg/logger"
	"github.com/githuax/zeduno-sub008/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TenantHandler exposes superadmin tenant management.
type TenantHandler struct {
	Svc *tenantadmin.Service
}

// Create handles tenant creation
func (h *TenantHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordTenantOperation("create")

	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	var input tenantadmin.CreateTenantInput
	if err := c.Bind(&input); err != nil {
		log.Warn("failed to parse tenant creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "invalid request"})
	}

	t, err := h.Svc.CreateTenant(c.Request().Context(), caller, input)
	if err != nil {
		return apperr.Respond(c, "tenant.create", err)
	}
	return c.JSON(http.StatusCreated, t)
}

// List returns all tenants (superadmin only)
func (h *TenantHandler) List(c echo.Context) error {
	prometheus.RecordTenantOperation("list")

	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	tenants, err := h.Svc.ListTenants(c.Request().Context(), caller)
	if err != nil {
		return apperr.Respond(c, "tenant.list", err)
	}
	return c.JSON(http.StatusOK, tenants)
}

// Get retrieves tenant details
func (h *TenantHandler) Get(c echo.Context) error {
	prometheus.RecordTenantOperation("access")

	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "invalid tenant ID"})
	}

	t, err := h.Svc.GetTenant(c.Request().Context(), caller, id)
	if err != nil {
		return apperr.Respond(c, "tenant.get", err)
	}
	return c.JSON(http.StatusOK, t)
}

// Reconcile recomputes the denormalized user counters (superadmin only)
func (h *TenantHandler) Reconcile(c echo.Context) error {
	prometheus.RecordTenantOperation("reconcile")

	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	fixed, err := h.Svc.ReconcileUserCounts(c.Request().Context(), caller)
	if err != nil {
		return apperr.Respond(c, "tenant.reconcile", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "tenants_fixed": fixed})
}
