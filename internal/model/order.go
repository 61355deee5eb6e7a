package model

import (
	"time"

	"gorm.io/gorm"
)

// Order types
const (
	OrderTypeDineIn   = "dine-in"
	OrderTypeTakeaway = "takeaway"
	OrderTypeDelivery = "delivery"
)

// Order status values. Completed, cancelled and refunded are terminal.
const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
	OrderStatusRefunded  = "refunded"
)

// Payment status values
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// ValidOrderType reports whether t is a known order type
func ValidOrderType(t string) bool {
	switch t {
	case OrderTypeDineIn, OrderTypeTakeaway, OrderTypeDelivery:
		return true
	}
	return false
}

// ActiveOrderStatuses are the non-terminal statuses. Orders in one of these
// block the release of the table they reference.
var ActiveOrderStatuses = []string{OrderStatusPending, OrderStatusPreparing, OrderStatusReady}

// OrderItem is a line item on an order. Price is the menu price snapshotted
// at order time.
type OrderItem struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	OrderID    uint    `json:"order_id" gorm:"index;not null"`
	MenuItemID *uint   `json:"menu_item_id,omitempty" gorm:"index"`
	Name       string  `json:"name" gorm:"type:varchar(100);not null"`
	Price      float64 `json:"price" gorm:"not null"`
	Quantity   int     `json:"quantity" gorm:"not null;check:quantity>0"`
}

// Order represents a customer order. Financial fields are always computed
// server-side from Items; client-supplied totals are ignored. Version backs
// a conditional update so concurrent status transitions cannot race.
type Order struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	TenantID      uint           `json:"tenant_id" gorm:"uniqueIndex:idx_orders_tenant_number;index;not null"`
	OrderNumber   string         `json:"order_number" gorm:"type:varchar(20);uniqueIndex:idx_orders_tenant_number;not null"`
	OrderType     string         `json:"order_type" gorm:"type:varchar(20);not null"`
	Status        string         `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	TableID       *uint          `json:"table_id,omitempty" gorm:"index"`
	CustomerName  string         `json:"customer_name" gorm:"type:varchar(100);not null"`
	CustomerPhone string         `json:"customer_phone,omitempty" gorm:"type:varchar(20)"`
	Items         []OrderItem    `json:"items" gorm:"foreignKey:OrderID"`
	Subtotal      float64        `json:"subtotal" gorm:"not null"`
	Tax           float64        `json:"tax" gorm:"not null"`
	ServiceCharge float64        `json:"service_charge" gorm:"default:0"`
	Total         float64        `json:"total" gorm:"not null"`
	PaymentStatus string         `json:"payment_status" gorm:"type:varchar(20);not null;default:'pending'"`
	StaffID       uint           `json:"staff_id" gorm:"index;not null"`
	Notes         string         `json:"notes,omitempty" gorm:"type:text"`
	Version       int            `json:"version" gorm:"default:1"`
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// IsTerminal reports whether the order can no longer change status
func (o *Order) IsTerminal() bool {
	switch o.Status {
	case OrderStatusCompleted, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}
