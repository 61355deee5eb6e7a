package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/githuax/zeduno-sub008/internal/apperr"
	"github.com/githuax/zeduno-sub008/internal/model"
	"github.com/githuax/zeduno-sub008/internal/tenantscope"
	"github.com/githuax/zeduno-sub008/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TableService guards the table-status-change boundary. It lives next to the
// order service because the blocking condition is an order-side invariant:
// a table may not be released while a non-terminal order references it.
type TableService struct {
	db     *gorm.DB
	orders *Repo
}

func NewTableService(db *gorm.DB, orders *Repo) *TableService {
	return &TableService{db: db, orders: orders}
}

// Create adds a table for the caller's tenant.
func (s *TableService) Create(ctx context.Context, caller tenantscope.Caller, requestedTenant *uint, number string, capacity int) (*model.Table, error) {
	if number == "" {
		return nil, fmt.Errorf("%w: table number is required", apperr.ErrValidation)
	}

	tenantID, err := caller.Stamp(requestedTenant)
	if err != nil {
		return nil, err
	}

	t := &model.Table{
		TenantID: tenantID,
		Number:   number,
		Capacity: capacity,
		Status:   model.TableStatusAvailable,
	}
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// List returns the tables visible to the caller.
func (s *TableService) List(ctx context.Context, caller tenantscope.Caller, requestedTenant *uint) ([]model.Table, error) {
	scope, err := caller.Scope(requestedTenant)
	if err != nil {
		return nil, err
	}

	var tables []model.Table
	if err := s.db.WithContext(ctx).Scopes(scope).Order("number").Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

// SetStatus changes a table's status. Releasing an occupied table to
// available is rejected with a conflict naming the blocking orders while any
// non-terminal order still references the table.
func (s *TableService) SetStatus(ctx context.Context, caller tenantscope.Caller, tableID uint, newStatus string) (*model.Table, error) {
	switch newStatus {
	case model.TableStatusAvailable, model.TableStatusOccupied, model.TableStatusReserved:
	default:
		return nil, fmt.Errorf("%w: invalid table status %q", apperr.ErrValidation, newStatus)
	}

	scope, err := caller.Scope(nil)
	if err != nil {
		return nil, err
	}

	var t model.Table
	err = s.db.WithContext(ctx).Scopes(scope).First(&t, tableID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: table %d", apperr.ErrNotFound, tableID)
	}
	if err != nil {
		return nil, err
	}

	if newStatus == model.TableStatusAvailable {
		blocking, err := s.orders.ActiveOrderNumbersForTable(ctx, t.TenantID, t.ID)
		if err != nil {
			return nil, err
		}
		if len(blocking) > 0 {
			logger.FromContext(ctx).Warn("table release blocked by active orders",
				zap.Uint("table_id", t.ID),
				zap.Strings("blocking_orders", blocking))
			return nil, apperr.WithDetails(apperr.ErrConflict,
				fmt.Sprintf("table %s has active orders", t.Number),
				map[string]interface{}{"blocking_orders": blocking})
		}
	}

	if err := s.db.WithContext(ctx).Model(&t).Update("status", newStatus).Error; err != nil {
		return nil, err
	}
	t.Status = newStatus
	return &t, nil
}
