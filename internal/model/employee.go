package model

import (
	"time"

	"gorm.io/gorm"
)

// Employee represents a staff member who works shifts. An employee may be
// linked to a User account but does not have to be (e.g. kitchen staff who
// never log in).
type Employee struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	TenantID   uint           `json:"tenant_id" gorm:"index;not null"`
	UserID     *uint          `json:"user_id,omitempty" gorm:"index"`
	Name       string         `json:"name" gorm:"type:varchar(100);not null"`
	Position   string         `json:"position" gorm:"type:varchar(50)"`
	HourlyRate float64        `json:"hourly_rate" gorm:"default:0"`
	Active     bool           `json:"active" gorm:"default:true"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}
