package model

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleStaff      = "staff"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

// User represents the user model stored in the database. TenantID is nil for
// superadmin users, which operate across tenants.
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	TenantID  *uint          `json:"tenant_id,omitempty" gorm:"index"`
	Email     string         `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password  string         `json:"-" gorm:"type:varchar(255)"`
	FirstName string         `json:"first_name" gorm:"type:varchar(50)"`
	LastName  string         `json:"last_name" gorm:"type:varchar(50)"`
	Role      string         `json:"role" gorm:"type:varchar(20);not null;default:'staff'"`
	Active    bool           `json:"active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
