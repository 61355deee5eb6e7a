package handler

import (
	"net/http"

	"github.com/githuax/zeduno-sub008/internal/apperr"
	"github.com/githuax/zeduno-sub008/internal/model"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// EmployeeHandler exposes tenant-scoped employee management.
type EmployeeHandler struct {
	DB *gorm.DB
}

// Create adds an employee
func (h *EmployeeHandler) Create(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	var req struct {
		TenantID   *uint   `json:"tenant_id,omitempty"`
		UserID     *uint   `json:"user_id,omitempty"`
		Name       string  `json:"name"`
		Position   string  `json:"position,omitempty"`
		HourlyRate float64 `json:"hourly_rate"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "invalid request"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "name is required"})
	}
	if req.HourlyRate < 0 {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "hourly rate must not be negative"})
	}

	tenantID, err := caller.Stamp(req.TenantID)
	if err != nil {
		return apperr.Respond(c, "employee.create", err)
	}

	emp := model.Employee{
		TenantID:   tenantID,
		UserID:     req.UserID,
		Name:       req.Name,
		Position:   req.Position,
		HourlyRate: req.HourlyRate,
		Active:     true,
	}
	if err := h.DB.WithContext(c.Request().Context()).Create(&emp).Error; err != nil {
		return apperr.Respond(c, "employee.create", err)
	}
	return c.JSON(http.StatusCreated, emp)
}

// List returns the employees visible to the caller
func (h *EmployeeHandler) List(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	scope, err := caller.Scope(tenantQuery(c))
	if err != nil {
		return apperr.Respond(c, "employee.list", err)
	}

	var employees []model.Employee
	if err := h.DB.WithContext(c.Request().Context()).Scopes(scope).Order("name").Find(&employees).Error; err != nil {
		return apperr.Respond(c, "employee.list", err)
	}
	return c.JSON(http.StatusOK, employees)
}
