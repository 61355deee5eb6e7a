package model

import (
	"time"

	"gorm.io/gorm"
)

// Tenant plan and status values
const (
	PlanBasic      = "basic"
	PlanPremium    = "premium"
	PlanEnterprise = "enterprise"

	TenantStatusActive    = "active"
	TenantStatusInactive  = "inactive"
	TenantStatusSuspended = "suspended"
)

// Tenant represents the tenant model stored in the database.
// This is the core of our multi-tenant architecture: every business record
// carries a TenantID referencing a row in this table.
type Tenant struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"type:varchar(100);not null"`
	Slug         string         `json:"slug" gorm:"type:varchar(100);uniqueIndex;not null"`
	Email        string         `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Plan         string         `json:"plan" gorm:"type:varchar(20);not null;default:'basic'"`
	Status       string         `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	MaxUsers     int            `json:"max_users" gorm:"default:10"`
	CurrentUsers int            `json:"current_users" gorm:"default:0"` // denormalized count of active users
	Currency     string         `json:"currency" gorm:"type:varchar(3);default:'KES'"`
	TaxRate      float64        `json:"tax_rate" gorm:"default:0"` // fraction, e.g. 0.16
	BusinessType string         `json:"business_type" gorm:"type:varchar(20);default:'restaurant'"` // 'restaurant', 'hotel', 'both'
	CreatedBy    *uint          `json:"created_by,omitempty" gorm:"index"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// IsActive reports whether the tenant may serve requests
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}
