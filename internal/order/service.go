package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/githuax/zeduno-sub008/internal/apperr"
	"github.com/githuax/zeduno-sub008/internal/events"
	"github.com/githuax/zeduno-sub008/internal/model"
	"github.com/githuax/zeduno-sub008/internal/tenantscope"
	"github.com/githuax/zeduno-sub008/pkg/config"
	"github.com/githuax/zeduno-sub008/pkg/logger"
	"go.uber.org/zap"
)

// ItemInput is one requested line item. When MenuItemID is set the name and
// price are snapshotted from the menu; otherwise the caller supplies them
// directly (custom/off-menu items).
type ItemInput struct {
	MenuItemID *uint   `json:"menu_item_id,omitempty"`
	Name       string  `json:"name,omitempty"`
	Price      float64 `json:"price,omitempty"`
	Quantity   int     `json:"quantity"`
}

// CreateInput is the order creation request after binding. TenantID is the
// tenant the client asked for; the scope guard decides what actually gets
// stamped.
type CreateInput struct {
	TenantID      *uint       `json:"tenant_id,omitempty"`
	OrderType     string      `json:"order_type"`
	TableID       *uint       `json:"table_id,omitempty"`
	CustomerName  string      `json:"customer_name"`
	CustomerPhone string      `json:"customer_phone,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	Items         []ItemInput `json:"items"`
}

// Service owns order total computation, status-transition legality and
// order-number generation.
type Service struct {
	repo      *Repo
	publisher events.Publisher
	billing   config.BillingConfig
}

func NewService(repo *Repo, publisher events.Publisher, billing config.BillingConfig) *Service {
	return &Service{repo: repo, publisher: publisher, billing: billing}
}

// Create places a new order. Totals are computed server-side from the
// resolved items; whatever totals the client sent are ignored.
func (s *Service) Create(ctx context.Context, caller tenantscope.Caller, input CreateInput) (*model.Order, error) {
	log := logger.FromContext(ctx)

	if !model.ValidOrderType(input.OrderType) {
		return nil, fmt.Errorf("%w: invalid order type %q", apperr.ErrValidation, input.OrderType)
	}
	if input.CustomerName == "" {
		return nil, fmt.Errorf("%w: customer name is required", apperr.ErrValidation)
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", apperr.ErrValidation)
	}

	tenantID, err := caller.Stamp(input.TenantID)
	if err != nil {
		return nil, err
	}

	taxRate, currency := s.tenantRates(ctx, tenantID)

	items, err := s.resolveItems(ctx, tenantID, input.Items)
	if err != nil {
		return nil, err
	}

	totals := ComputeTotals(items, input.OrderType, taxRate, s.serviceChargeRate(), currency)

	o := &model.Order{
		TenantID:      tenantID,
		OrderType:     input.OrderType,
		Status:        model.OrderStatusPending,
		TableID:       input.TableID,
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		Items:         items,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		ServiceCharge: totals.ServiceCharge,
		Total:         totals.Total,
		PaymentStatus: model.PaymentStatusPending,
		StaffID:       caller.UserID,
		Notes:         input.Notes,
		Version:       1,
	}

	attempts := s.billing.OrderNumberAttempts
	if attempts <= 0 {
		attempts = 3
	}
	for attempt := 1; ; attempt++ {
		o.OrderNumber = GenerateOrderNumber(time.Now())
		err = s.repo.Create(ctx, o)
		if err == nil {
			break
		}
		if IsDuplicate(err) && attempt < attempts {
			log.Warn("order number collision, retrying",
				zap.String("order_number", o.OrderNumber),
				zap.Uint("tenant_id", tenantID))
			continue
		}
		return nil, err
	}

	s.publish(ctx, events.OrderCreated, o)

	log.Info("order created",
		zap.Uint("order_id", o.ID),
		zap.String("order_number", o.OrderNumber),
		zap.Uint("tenant_id", o.TenantID),
		zap.Float64("total", o.Total))

	return o, nil
}

// Get fetches one order visible to the caller.
func (s *Service) Get(ctx context.Context, caller tenantscope.Caller, id uint) (*model.Order, error) {
	scope, err := caller.Scope(nil)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, scope, id)
}

// List returns orders visible to the caller, optionally narrowed to one
// tenant for superadmin callers.
func (s *Service) List(ctx context.Context, caller tenantscope.Caller, requestedTenant *uint, limit, offset int) ([]model.Order, error) {
	scope, err := caller.Scope(requestedTenant)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, scope, limit, offset)
}

// Transition moves an order to a new status, enforcing the transition graph
// and the optimistic version check.
func (s *Service) Transition(ctx context.Context, caller tenantscope.Caller, id uint, newStatus string) (*model.Order, error) {
	o, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if err := ValidateTransition(o.Status, newStatus); err != nil {
		return nil, err
	}

	if err := s.repo.TransitionStatus(ctx, o, newStatus); err != nil {
		return nil, err
	}

	s.publish(ctx, events.OrderStatusChanged, o)

	logger.FromContext(ctx).Info("order status changed",
		zap.Uint("order_id", o.ID),
		zap.String("order_number", o.OrderNumber),
		zap.String("status", newStatus))

	return o, nil
}

// UpdateItems replaces the line items of a non-terminal order and recomputes
// the totals.
func (s *Service) UpdateItems(ctx context.Context, caller tenantscope.Caller, id uint, inputs []ItemInput) (*model.Order, error) {
	o, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if o.IsTerminal() {
		return nil, fmt.Errorf("%w: order %s is %s and can no longer change", apperr.ErrConflict, o.OrderNumber, o.Status)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", apperr.ErrValidation)
	}

	items, err := s.resolveItems(ctx, o.TenantID, inputs)
	if err != nil {
		return nil, err
	}

	taxRate, currency := s.tenantRates(ctx, o.TenantID)
	totals := ComputeTotals(items, o.OrderType, taxRate, s.serviceChargeRate(), currency)

	if err := s.repo.ReplaceItems(ctx, o, items, totals); err != nil {
		return nil, err
	}
	return o, nil
}

// serviceChargeRate returns the configured dine-in service charge rate.
func (s *Service) serviceChargeRate() float64 {
	if s.billing.ServiceChargeRate > 0 {
		return s.billing.ServiceChargeRate
	}
	return DefaultServiceChargeRate
}

// tenantRates looks up the tenant's tax rate and currency. A missing tenant
// or unset rate falls back to the configured defaults with a warning; a
// wrong tax line is cheaper to correct than a blocked order.
func (s *Service) tenantRates(ctx context.Context, tenantID uint) (taxRate float64, currency string) {
	taxRate = s.billing.DefaultTaxRate
	currency = s.billing.DefaultCurrency

	t, err := s.repo.TenantByID(ctx, tenantID)
	if err != nil {
		logger.FromContext(ctx).Warn("tenant config unavailable, using default rates",
			zap.Uint("tenant_id", tenantID),
			zap.Float64("tax_rate", taxRate),
			zap.Error(err))
		return taxRate, currency
	}

	if t.TaxRate > 0 {
		taxRate = t.TaxRate
	}
	if t.Currency != "" {
		currency = t.Currency
	}
	return taxRate, currency
}

// resolveItems validates the requested items and snapshots menu prices for
// items ordered by menu id.
func (s *Service) resolveItems(ctx context.Context, tenantID uint, inputs []ItemInput) ([]model.OrderItem, error) {
	var menuIDs []uint
	for _, in := range inputs {
		if in.MenuItemID != nil {
			menuIDs = append(menuIDs, *in.MenuItemID)
		}
	}
	menu, err := s.repo.MenuItemsByIDs(ctx, tenantID, menuIDs)
	if err != nil {
		return nil, err
	}

	items := make([]model.OrderItem, 0, len(inputs))
	for i, in := range inputs {
		if in.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item %d: quantity must be positive", apperr.ErrValidation, i)
		}

		item := model.OrderItem{
			MenuItemID: in.MenuItemID,
			Name:       in.Name,
			Price:      in.Price,
			Quantity:   in.Quantity,
		}

		if in.MenuItemID != nil {
			mi, ok := menu[*in.MenuItemID]
			if !ok {
				return nil, fmt.Errorf("%w: menu item %d", apperr.ErrNotFound, *in.MenuItemID)
			}
			if !mi.Available {
				return nil, fmt.Errorf("%w: menu item %q is not available", apperr.ErrValidation, mi.Name)
			}
			item.Name = mi.Name
			item.Price = mi.Price
		}

		if item.Name == "" {
			return nil, fmt.Errorf("%w: item %d: name is required", apperr.ErrValidation, i)
		}
		if item.Price < 0 {
			return nil, fmt.Errorf("%w: item %d: price must not be negative", apperr.ErrValidation, i)
		}
		items = append(items, item)
	}
	return items, nil
}

// publish sends an order event, best-effort.
func (s *Service) publish(ctx context.Context, eventType string, o *model.Order) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishOrderEvent(ctx, events.OrderEvent{
		Type:        eventType,
		TenantID:    o.TenantID,
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Status:      o.Status,
		Total:       o.Total,
		OccurredAt:  time.Now(),
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.FromContext(ctx).Warn("failed to publish order event",
			zap.String("type", eventType),
			zap.String("order_number", o.OrderNumber),
			zap.Error(err))
	}
}
