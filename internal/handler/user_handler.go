package handler

import (
	"net/http"

	"github.com/githuax/zeduno-sub008/internal/apperr"
	"github.com/githuax/zeduno-sub008/internal/tenantadmin"
	"github.com/labstack/echo/v4"
)

// UserHandler exposes tenant user management.
type UserHandler struct {
	Svc *tenantadmin.Service
}

// Create adds a user to a tenant
func (h *UserHandler) Create(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	var input tenantadmin.CreateUserInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "invalid request"})
	}

	u, err := h.Svc.CreateUser(c.Request().Context(), caller, input)
	if err != nil {
		return apperr.Respond(c, "user.create", err)
	}
	return c.JSON(http.StatusCreated, u)
}

// List returns the users visible to the caller
func (h *UserHandler) List(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	users, err := h.Svc.ListUsers(c.Request().Context(), caller, tenantQuery(c))
	if err != nil {
		return apperr.Respond(c, "user.list", err)
	}
	return c.JSON(http.StatusOK, users)
}

// SetActive activates or deactivates a user, keeping the tenant's user
// counter in step
func (h *UserHandler) SetActive(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "invalid user ID"})
	}

	var req struct {
		Active *bool `json:"active"`
	}
	if err := c.Bind(&req); err != nil || req.Active == nil {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "active is required"})
	}

	u, err := h.Svc.SetUserActive(c.Request().Context(), caller, id, *req.Active)
	if err != nil {
		return apperr.Respond(c, "user.set_active", err)
	}
	return c.JSON(http.StatusOK, u)
}

// Delete removes a user
func (h *UserHandler) Delete(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "invalid user ID"})
	}

	if err := h.Svc.DeleteUser(c.Request().Context(), caller, id); err != nil {
		return apperr.Respond(c, "user.delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
