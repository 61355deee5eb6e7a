package model

import (
	"time"

	"gorm.io/gorm"
)

// Shift status values
const (
	ShiftStatusScheduled = "scheduled"
	ShiftStatusStarted   = "started"
	ShiftStatusOnBreak   = "on_break"
	ShiftStatusCompleted = "completed"
	ShiftStatusMissed    = "missed"
	ShiftStatusCancelled = "cancelled"
)

// Shift represents a scheduled work shift. TotalHours and TotalPay are
// derived from the actual timestamps when the shift transitions into
// completed; they are never settable directly.
type Shift struct {
	ID                  uint           `json:"id" gorm:"primaryKey"`
	TenantID            uint           `json:"tenant_id" gorm:"index;not null"`
	EmployeeID          uint           `json:"employee_id" gorm:"index;not null"`
	Date                time.Time      `json:"date" gorm:"index;not null"`
	ScheduledStart      string         `json:"scheduled_start" gorm:"type:varchar(5);not null"` // HH:MM
	ScheduledEnd        string         `json:"scheduled_end" gorm:"type:varchar(5);not null"`   // HH:MM
	BreakDuration       int            `json:"break_duration" gorm:"default:0"` // scheduled break, minutes, 0..120
	Status              string         `json:"status" gorm:"type:varchar(20);not null;default:'scheduled';index"`
	ActualStartTime     *time.Time     `json:"actual_start_time,omitempty"`
	ActualEndTime       *time.Time     `json:"actual_end_time,omitempty"`
	ActualBreakDuration *int           `json:"actual_break_duration,omitempty"` // minutes
	HourlyRate          float64        `json:"hourly_rate" gorm:"not null"`
	TotalHours          *float64       `json:"total_hours,omitempty"`
	TotalPay            *float64       `json:"total_pay,omitempty"`
	Notes               string         `json:"notes,omitempty" gorm:"type:text"`
	CreatedBy           uint           `json:"created_by" gorm:"not null"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `json:"-" gorm:"index"`
}

// IsFinalized reports whether the derived fields are frozen
func (s *Shift) IsFinalized() bool {
	return s.Status == ShiftStatusCompleted
}
