package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/githuax/zeduno-sub008/internal/apperr"
	"github.com/githuax/zeduno-sub008/internal/model"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// MenuHandler exposes tenant-scoped menu management. Menu prices are the
// source of the snapshots taken at order time.
type MenuHandler struct {
	DB *gorm.DB
}

// Create adds a menu item
func (h *MenuHandler) Create(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	var req struct {
		TenantID    *uint   `json:"tenant_id,omitempty"`
		Name        string  `json:"name"`
		Description string  `json:"description,omitempty"`
		Price       float64 `json:"price"`
		Category    string  `json:"category,omitempty"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "invalid request"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "name is required"})
	}
	if req.Price < 0 {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "price must not be negative"})
	}

	tenantID, err := caller.Stamp(req.TenantID)
	if err != nil {
		return apperr.Respond(c, "menu.create", err)
	}

	item := model.MenuItem{
		TenantID:    tenantID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Available:   true,
	}
	if err := h.DB.WithContext(c.Request().Context()).Create(&item).Error; err != nil {
		return apperr.Respond(c, "menu.create", err)
	}
	return c.JSON(http.StatusCreated, item)
}

// List returns the menu items visible to the caller
func (h *MenuHandler) List(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	scope, err := caller.Scope(tenantQuery(c))
	if err != nil {
		return apperr.Respond(c, "menu.list", err)
	}

	var items []model.MenuItem
	if err := h.DB.WithContext(c.Request().Context()).Scopes(scope).Order("category, name").Find(&items).Error; err != nil {
		return apperr.Respond(c, "menu.list", err)
	}
	return c.JSON(http.StatusOK, items)
}

// Update edits a menu item. Past orders keep their price snapshots.
func (h *MenuHandler) Update(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "invalid menu item ID"})
	}

	scope, err := caller.Scope(nil)
	if err != nil {
		return apperr.Respond(c, "menu.update", err)
	}

	var item model.MenuItem
	err = h.DB.WithContext(c.Request().Context()).Scopes(scope).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Respond(c, "menu.update", fmt.Errorf("%w: menu item %d", apperr.ErrNotFound, id))
	}
	if err != nil {
		return apperr.Respond(c, "menu.update", err)
	}

	var req struct {
		Name        *string  `json:"name,omitempty"`
		Description *string  `json:"description,omitempty"`
		Price       *float64 `json:"price,omitempty"`
		Category    *string  `json:"category,omitempty"`
		Available   *bool    `json:"available,omitempty"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "invalid request"})
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "price must not be negative"})
		}
		item.Price = *req.Price
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := h.DB.WithContext(c.Request().Context()).Save(&item).Error; err != nil {
		return apperr.Respond(c, "menu.update", err)
	}
	return c.JSON(http.StatusOK, item)
}

// Delete removes a menu item
func (h *MenuHandler) Delete(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "invalid menu item ID"})
	}

	scope, err := caller.Scope(nil)
	if err != nil {
		return apperr.Respond(c, "menu.delete", err)
	}

	res := h.DB.WithContext(c.Request().Context()).Scopes(scope).Delete(&model.MenuItem{}, id)
	if res.Error != nil {
		return apperr.Respond(c, "menu.delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.Respond(c, "menu.delete", fmt.Errorf("%w: menu item %d", apperr.ErrNotFound, id))
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
