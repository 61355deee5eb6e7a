package model

import (
	"time"

	"gorm.io/gorm"
)

// Table status values
const (
	TableStatusAvailable = "available"
	TableStatusOccupied  = "occupied"
	TableStatusReserved  = "reserved"
)

// Table represents a dining table. A table may not be released to
// "available" while an order referencing it is still active.
type Table struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	TenantID  uint           `json:"tenant_id" gorm:"index;not null"`
	Number    string         `json:"number" gorm:"type:varchar(20);not null"`
	Capacity  int            `json:"capacity" gorm:"default:4"`
	Status    string         `json:"status" gorm:"type:varchar(20);not null;default:'available'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
