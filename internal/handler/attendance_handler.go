package handler

import (
	"net/http"
	"time"

	"github.com/githuax/zeduno-sub008/internal/apperr"
	"github.com/githuax/zeduno-sub008/internal/timeclock"
	"github.com/labstack/echo/v4"
)

// AttendanceHandler exposes the attendance clock events.
type AttendanceHandler struct {
	Svc *timeclock.Service
}

// ClockIn opens today's attendance record for an employee
func (h *AttendanceHandler) ClockIn(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	var req struct {
		TenantID   *uint      `json:"tenant_id,omitempty"`
		EmployeeID uint       `json:"employee_id"`
		Timestamp  *time.Time `json:"timestamp,omitempty"`
	}
	if err := c.Bind(&req); err != nil || req.EmployeeID == 0 {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "employee_id is required"})
	}

	at := time.Now()
	if req.Timestamp != nil {
		at = *req.Timestamp
	}

	a, err := h.Svc.ClockIn(c.Request().Context(), caller, req.TenantID, req.EmployeeID, at)
	if err != nil {
		return apperr.Respond(c, "attendance.clock_in", err)
	}
	return c.JSON(http.StatusCreated, a)
}

// ClockOut closes the attendance record and finalizes the worked hours
func (h *AttendanceHandler) ClockOut(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "invalid attendance ID"})
	}

	a, err := h.Svc.ClockOut(c.Request().Context(), caller, id, timestampOrNow(c))
	if err != nil {
		return apperr.Respond(c, "attendance.clock_out", err)
	}
	return c.JSON(http.StatusOK, a)
}

// RecordBreak stores the break window on an open attendance record
func (h *AttendanceHandler) RecordBreak(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "invalid attendance ID"})
	}

	var req struct {
		BreakStart time.Time `json:"break_start"`
		BreakEnd   time.Time `json:"break_end"`
	}
	if err := c.Bind(&req); err != nil || req.BreakStart.IsZero() || req.BreakEnd.IsZero() {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "break_start and break_end are required"})
	}

	a, err := h.Svc.RecordBreak(c.Request().Context(), caller, id, req.BreakStart, req.BreakEnd)
	if err != nil {
		return apperr.Respond(c, "attendance.record_break", err)
	}
	return c.JSON(http.StatusOK, a)
}

// List returns attendance records visible to the caller
func (h *AttendanceHandler) List(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	records, err := h.Svc.ListAttendance(c.Request().Context(), caller, tenantQuery(c))
	if err != nil {
		return apperr.Respond(c, "attendance.list", err)
	}
	return c.JSON(http.StatusOK, records)
}
