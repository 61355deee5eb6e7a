package model

import (
	"time"

	"gorm.io/gorm"
)

// Attendance status values
const (
	AttendanceStatusPresent = "present"
	AttendanceStatusLate    = "late"
	AttendanceStatusAbsent  = "absent"
)

// Attendance represents one employee-day of clock events. TotalHours is
// derived from the clock-in/clock-out pair when the record is finalized.
type Attendance struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	TenantID          uint           `json:"tenant_id" gorm:"index;not null"`
	EmployeeID        uint           `json:"employee_id" gorm:"uniqueIndex:idx_attendance_employee_date;not null"`
	Date              time.Time      `json:"date" gorm:"uniqueIndex:idx_attendance_employee_date;not null"`
	ClockIn           *time.Time     `json:"clock_in,omitempty"`
	ClockOut          *time.Time     `json:"clock_out,omitempty"`
	BreakStart        *time.Time     `json:"break_start,omitempty"`
	BreakEnd          *time.Time     `json:"break_end,omitempty"`
	TotalBreakMinutes int            `json:"total_break_minutes" gorm:"default:0"`
	TotalHours        *float64       `json:"total_hours,omitempty"`
	Status            string         `json:"status" gorm:"type:varchar(20);not null;default:'present'"`
	Notes             string         `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`
}
