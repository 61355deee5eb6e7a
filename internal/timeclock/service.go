package timeclock

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/githuax/zeduno-sub008/internal/apperr"
	"github.com/githuax/zeduno-sub008/internal/model"
	"github.com/githuax/zeduno-sub008/internal/tenantscope"
	"github.com/githuax/zeduno-sub008/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var timeOfDayPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

const maxBreakMinutes = 120

// CreateShiftInput is a shift scheduling request.
type CreateShiftInput struct {
	TenantID       *uint     `json:"tenant_id,omitempty"`
	EmployeeID     uint      `json:"employee_id"`
	Date           time.Time `json:"date"`
	ScheduledStart string    `json:"scheduled_start"`
	ScheduledEnd   string    `json:"scheduled_end"`
	BreakDuration  int       `json:"break_duration"`
	HourlyRate     float64   `json:"hourly_rate"`
	Notes          string    `json:"notes,omitempty"`
}

// Service owns shift and attendance lifecycles and their derived time math.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateShift schedules a shift for an employee of the caller's tenant.
func (s *Service) CreateShift(ctx context.Context, caller tenantscope.Caller, input CreateShiftInput) (*model.Shift, error) {
	if !timeOfDayPattern.MatchString(input.ScheduledStart) || !timeOfDayPattern.MatchString(input.ScheduledEnd) {
		return nil, fmt.Errorf("%w: scheduled times must be HH:MM", apperr.ErrValidation)
	}
	if input.BreakDuration < 0 || input.BreakDuration > maxBreakMinutes {
		return nil, fmt.Errorf("%w: break duration must be between 0 and %d minutes", apperr.ErrValidation, maxBreakMinutes)
	}
	if input.HourlyRate < 0 {
		return nil, fmt.Errorf("%w: hourly rate must not be negative", apperr.ErrValidation)
	}

	tenantID, err := caller.Stamp(input.TenantID)
	if err != nil {
		return nil, err
	}

	if err := s.employeeInTenant(ctx, tenantID, input.EmployeeID); err != nil {
		return nil, err
	}

	shift := &model.Shift{
		TenantID:       tenantID,
		EmployeeID:     input.EmployeeID,
		Date:           input.Date,
		ScheduledStart: input.ScheduledStart,
		ScheduledEnd:   input.ScheduledEnd,
		BreakDuration:  input.BreakDuration,
		Status:         model.ShiftStatusScheduled,
		HourlyRate:     input.HourlyRate,
		Notes:          input.Notes,
		CreatedBy:      caller.UserID,
	}
	if err := s.db.WithContext(ctx).Create(shift).Error; err != nil {
		return nil, err
	}
	return shift, nil
}

// StartShift clocks the employee in on a scheduled shift.
func (s *Service) StartShift(ctx context.Context, caller tenantscope.Caller, shiftID uint, at time.Time) (*model.Shift, error) {
	shift, err := s.getShift(ctx, caller, shiftID)
	if err != nil {
		return nil, err
	}
	if shift.Status != model.ShiftStatusScheduled {
		return nil, fmt.Errorf("%w: shift is %s, expected scheduled", apperr.ErrConflict, shift.Status)
	}

	shift.Status = model.ShiftStatusStarted
	shift.ActualStartTime = &at
	if err := s.db.WithContext(ctx).Save(shift).Error; err != nil {
		return nil, err
	}
	return shift, nil
}

// StartShiftBreak puts a started shift on break.
func (s *Service) StartShiftBreak(ctx context.Context, caller tenantscope.Caller, shiftID uint) (*model.Shift, error) {
	shift, err := s.getShift(ctx, caller, shiftID)
	if err != nil {
		return nil, err
	}
	if shift.Status != model.ShiftStatusStarted {
		return nil, fmt.Errorf("%w: shift is %s, expected started", apperr.ErrConflict, shift.Status)
	}

	shift.Status = model.ShiftStatusOnBreak
	if err := s.db.WithContext(ctx).Save(shift).Error; err != nil {
		return nil, err
	}
	return shift, nil
}

// EndShiftBreak resumes a shift and adds the elapsed break minutes to the
// actual break duration.
func (s *Service) EndShiftBreak(ctx context.Context, caller tenantscope.Caller, shiftID uint, minutes int) (*model.Shift, error) {
	shift, err := s.getShift(ctx, caller, shiftID)
	if err != nil {
		return nil, err
	}
	if shift.Status != model.ShiftStatusOnBreak {
		return nil, fmt.Errorf("%w: shift is %s, expected on_break", apperr.ErrConflict, shift.Status)
	}
	if minutes < 0 {
		return nil, fmt.Errorf("%w: break minutes must not be negative", apperr.ErrValidation)
	}

	taken := minutes
	if shift.ActualBreakDuration != nil {
		taken += *shift.ActualBreakDuration
	}
	shift.ActualBreakDuration = &taken
	shift.Status = model.ShiftStatusStarted
	if err := s.db.WithContext(ctx).Save(shift).Error; err != nil {
		return nil, err
	}
	return shift, nil
}

// CompleteShift clocks the employee out and finalizes the derived fields.
// Finalization runs exactly on this transition; a shift that is already
// completed must be reopened before it can be finalized again.
func (s *Service) CompleteShift(ctx context.Context, caller tenantscope.Caller, shiftID uint, at time.Time) (*model.Shift, error) {
	shift, err := s.getShift(ctx, caller, shiftID)
	if err != nil {
		return nil, err
	}
	switch shift.Status {
	case model.ShiftStatusStarted, model.ShiftStatusOnBreak:
	default:
		return nil, fmt.Errorf("%w: shift is %s and cannot be completed", apperr.ErrConflict, shift.Status)
	}

	shift.ActualEndTime = &at
	if err := FinalizeShift(shift); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(shift).Error; err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("shift completed",
		zap.Uint("shift_id", shift.ID),
		zap.Uint("employee_id", shift.EmployeeID),
		zap.Float64p("total_hours", shift.TotalHours),
		zap.Float64p("total_pay", shift.TotalPay))

	return shift, nil
}

// ReopenShift returns a completed shift to the started state and clears the
// derived fields, so it can be corrected and finalized again.
func (s *Service) ReopenShift(ctx context.Context, caller tenantscope.Caller, shiftID uint) (*model.Shift, error) {
	shift, err := s.getShift(ctx, caller, shiftID)
	if err != nil {
		return nil, err
	}
	if shift.Status != model.ShiftStatusCompleted {
		return nil, fmt.Errorf("%w: shift is %s, expected completed", apperr.ErrConflict, shift.Status)
	}

	updates := map[string]interface{}{
		"status":      model.ShiftStatusStarted,
		"total_hours": nil,
		"total_pay":   nil,
	}
	if err := s.db.WithContext(ctx).Model(shift).Updates(updates).Error; err != nil {
		return nil, err
	}
	shift.Status = model.ShiftStatusStarted
	shift.TotalHours = nil
	shift.TotalPay = nil
	return shift, nil
}

// ListShifts returns shifts visible to the caller, newest first.
func (s *Service) ListShifts(ctx context.Context, caller tenantscope.Caller, requestedTenant *uint) ([]model.Shift, error) {
	scope, err := caller.Scope(requestedTenant)
	if err != nil {
		return nil, err
	}

	var shifts []model.Shift
	if err := s.db.WithContext(ctx).Scopes(scope).Order("date DESC").Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}

// ClockIn opens the attendance record for an employee-day.
func (s *Service) ClockIn(ctx context.Context, caller tenantscope.Caller, requestedTenant *uint, employeeID uint, at time.Time) (*model.Attendance, error) {
	tenantID, err := caller.Stamp(requestedTenant)
	if err != nil {
		return nil, err
	}
	if err := s.employeeInTenant(ctx, tenantID, employeeID); err != nil {
		return nil, err
	}

	date := at.Truncate(24 * time.Hour)

	var existing model.Attendance
	err = s.db.WithContext(ctx).
		Where("tenant_id = ? AND employee_id = ? AND date = ?", tenantID, employeeID, date).
		First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: attendance already recorded for this employee today", apperr.ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	a := &model.Attendance{
		TenantID:   tenantID,
		EmployeeID: employeeID,
		Date:       date,
		ClockIn:    &at,
		Status:     model.AttendanceStatusPresent,
	}
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// ClockOut closes the attendance record and finalizes the derived hours.
func (s *Service) ClockOut(ctx context.Context, caller tenantscope.Caller, attendanceID uint, at time.Time) (*model.Attendance, error) {
	a, err := s.getAttendance(ctx, caller, attendanceID)
	if err != nil {
		return nil, err
	}
	if a.ClockOut != nil {
		return nil, fmt.Errorf("%w: attendance is already clocked out", apperr.ErrConflict)
	}

	a.ClockOut = &at
	if err := FinalizeAttendance(a); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// RecordBreak stores the break window on an open attendance record.
func (s *Service) RecordBreak(ctx context.Context, caller tenantscope.Caller, attendanceID uint, start, end time.Time) (*model.Attendance, error) {
	a, err := s.getAttendance(ctx, caller, attendanceID)
	if err != nil {
		return nil, err
	}
	if a.ClockOut != nil {
		return nil, fmt.Errorf("%w: attendance is already clocked out", apperr.ErrConflict)
	}

	a.BreakStart = &start
	a.BreakEnd = &end
	if err := s.db.WithContext(ctx).Save(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// ListAttendance returns attendance records visible to the caller.
func (s *Service) ListAttendance(ctx context.Context, caller tenantscope.Caller, requestedTenant *uint) ([]model.Attendance, error) {
	scope, err := caller.Scope(requestedTenant)
	if err != nil {
		return nil, err
	}

	var records []model.Attendance
	if err := s.db.WithContext(ctx).Scopes(scope).Order("date DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Service) getShift(ctx context.Context, caller tenantscope.Caller, id uint) (*model.Shift, error) {
	scope, err := caller.Scope(nil)
	if err != nil {
		return nil, err
	}

	var shift model.Shift
	err = s.db.WithContext(ctx).Scopes(scope).First(&shift, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: shift %d", apperr.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (s *Service) getAttendance(ctx context.Context, caller tenantscope.Caller, id uint) (*model.Attendance, error) {
	scope, err := caller.Scope(nil)
	if err != nil {
		return nil, err
	}

	var a model.Attendance
	err = s.db.WithContext(ctx).Scopes(scope).First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: attendance %d", apperr.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Service) employeeInTenant(ctx context.Context, tenantID, employeeID uint) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Employee{}).
		Where("id = ? AND tenant_id = ?", employeeID, tenantID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: employee %d", apperr.ErrNotFound, employeeID)
	}
	return nil
}
