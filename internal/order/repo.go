package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/githuax/zeduno-sub008/internal/apperr"
	"github.com/githuax/zeduno-sub008/internal/model"
	"gorm.io/gorm"
)

// Repo is the gorm-backed order repository. The handle is injected; the
// package keeps no global database state.
type Repo struct {
	DB *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{DB: db}
}

// Create inserts an order together with its line items.
func (r *Repo) Create(ctx context.Context, o *model.Order) error {
	return r.DB.WithContext(ctx).Create(o).Error
}

// FindByID fetches one order with its items, restricted by the caller scope.
func (r *Repo) FindByID(ctx context.Context, scope func(*gorm.DB) *gorm.DB, id uint) (*model.Order, error) {
	var o model.Order
	err := r.DB.WithContext(ctx).Scopes(scope).Preload("Items").First(&o, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order %d", apperr.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// List returns orders visible to the caller scope, newest first.
func (r *Repo) List(ctx context.Context, scope func(*gorm.DB) *gorm.DB, limit, offset int) ([]model.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var orders []model.Order
	err := r.DB.WithContext(ctx).Scopes(scope).Preload("Items").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// TransitionStatus moves an order to newStatus with a conditional update on
// (id, version), so two concurrent transitions cannot both win. The caller
// has already validated the transition. Returns ErrConflict when the stored
// version no longer matches.
func (r *Repo) TransitionStatus(ctx context.Context, o *model.Order, newStatus string) error {
	updates := map[string]interface{}{
		"status":  newStatus,
		"version": o.Version + 1,
	}
	if newStatus == model.OrderStatusCompleted {
		now := time.Now()
		updates["completed_at"] = &now
	}

	res := r.DB.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND version = ?", o.ID, o.Version).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: order %d was modified concurrently", apperr.ErrConflict, o.ID)
	}

	o.Status = newStatus
	o.Version++
	if v, ok := updates["completed_at"].(*time.Time); ok {
		o.CompletedAt = v
	}
	return nil
}

// ReplaceItems swaps the order's line items and stores the recomputed totals
// in a single transaction.
func (r *Repo) ReplaceItems(ctx context.Context, o *model.Order, items []model.OrderItem, totals Totals) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", o.ID).Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = o.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		res := tx.Model(&model.Order{}).
			Where("id = ? AND version = ?", o.ID, o.Version).
			Updates(map[string]interface{}{
				"subtotal":       totals.Subtotal,
				"tax":            totals.Tax,
				"service_charge": totals.ServiceCharge,
				"total":          totals.Total,
				"version":        o.Version + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: order %d was modified concurrently", apperr.ErrConflict, o.ID)
		}

		o.Items = items
		o.Subtotal = totals.Subtotal
		o.Tax = totals.Tax
		o.ServiceCharge = totals.ServiceCharge
		o.Total = totals.Total
		o.Version++
		return nil
	})
}

// ActiveOrderNumbersForTable returns the order numbers of non-terminal
// orders referencing the given table. A non-empty result blocks releasing
// the table.
func (r *Repo) ActiveOrderNumbersForTable(ctx context.Context, tenantID, tableID uint) ([]string, error) {
	var numbers []string
	err := r.DB.WithContext(ctx).Model(&model.Order{}).
		Where("tenant_id = ? AND table_id = ? AND status IN ?", tenantID, tableID, model.ActiveOrderStatuses).
		Pluck("order_number", &numbers).Error
	if err != nil {
		return nil, err
	}
	return numbers, nil
}

// TenantByID fetches the tenant configuration used for tax and currency.
func (r *Repo) TenantByID(ctx context.Context, id uint) (*model.Tenant, error) {
	var t model.Tenant
	err := r.DB.WithContext(ctx).First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: tenant %d", apperr.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// MenuItemsByIDs loads the given menu items, tenant-scoped, keyed by id.
func (r *Repo) MenuItemsByIDs(ctx context.Context, tenantID uint, ids []uint) (map[uint]model.MenuItem, error) {
	if len(ids) == 0 {
		return map[uint]model.MenuItem{}, nil
	}

	var items []model.MenuItem
	err := r.DB.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]model.MenuItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return byID, nil
}

// IsDuplicate reports whether err is a unique-constraint violation. Checked
// on order insert so number generation can retry with a fresh number.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
