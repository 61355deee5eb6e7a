package handler

import (
	"net/http"
	"time"

	"github.com/githuax/zeduno-sub008/internal/apperr"
	"github.com/githuax/zeduno-sub008/internal/timeclock"
	"github.com/githuax/zeduno-sub008/prometheus"
	"github.com/labstack/echo/v4"
)

// ShiftHandler exposes shift scheduling and the clock-in/out lifecycle.
type ShiftHandler struct {
	Svc *timeclock.Service
}

// Create schedules a shift
func (h *ShiftHandler) Create(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	var input timeclock.CreateShiftInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "invalid request"})
	}

	shift, err := h.Svc.CreateShift(c.Request().Context(), caller, input)
	if err != nil {
		return apperr.Respond(c, "shift.create", err)
	}
	return c.JSON(http.StatusCreated, shift)
}

// List returns the shifts visible to the caller
func (h *ShiftHandler) List(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	shifts, err := h.Svc.ListShifts(c.Request().Context(), caller, tenantQuery(c))
	if err != nil {
		return apperr.Respond(c, "shift.list", err)
	}
	return c.JSON(http.StatusOK, shifts)
}

// Start clocks the employee in
func (h *ShiftHandler) Start(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "invalid shift ID"})
	}

	shift, err := h.Svc.StartShift(c.Request().Context(), caller, id, timestampOrNow(c))
	if err != nil {
		return apperr.Respond(c, "shift.start", err)
	}
	return c.JSON(http.StatusOK, shift)
}

// StartBreak puts the shift on break
func (h *ShiftHandler) StartBreak(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "invalid shift ID"})
	}

	shift, err := h.Svc.StartShiftBreak(c.Request().Context(), caller, id)
	if err != nil {
		return apperr.Respond(c, "shift.start_break", err)
	}
	return c.JSON(http.StatusOK, shift)
}

// EndBreak resumes the shift, recording the break length
func (h *ShiftHandler) EndBreak(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "invalid shift ID"})
	}

	var req struct {
		Minutes int `json:"minutes"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "invalid request"})
	}

	shift, err := h.Svc.EndShiftBreak(c.Request().Context(), caller, id, req.Minutes)
	if err != nil {
		return apperr.Respond(c, "shift.end_break", err)
	}
	return c.JSON(http.StatusOK, shift)
}

// Complete clocks the employee out and freezes the derived pay fields
func (h *ShiftHandler) Complete(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "invalid shift ID"})
	}

	shift, err := h.Svc.CompleteShift(c.Request().Context(), caller, id, timestampOrNow(c))
	if err != nil {
		return apperr.Respond(c, "shift.complete", err)
	}

	prometheus.ShiftFinalizeCounter.Inc()
	return c.JSON(http.StatusOK, shift)
}

// Reopen returns a completed shift to started so it can be corrected
func (h *ShiftHandler) Reopen(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "invalid shift ID"})
	}

	shift, err := h.Svc.ReopenShift(c.Request().Context(), caller, id)
	if err != nil {
		return apperr.Respond(c, "shift.reopen", err)
	}
	return c.JSON(http.StatusOK, shift)
}

// timestampOrNow reads an optional RFC3339 timestamp from the request body,
// defaulting to the current time.
func timestampOrNow(c echo.Context) time.Time {
	var req struct {
		Timestamp *time.Time `json:"timestamp,omitempty"`
	}
	if err := c.Bind(&req); err == nil && req.Timestamp != nil {
		return *req.Timestamp
	}
	return time.Now()
}
