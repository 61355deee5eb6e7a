// Package timeclock derives worked-time and pay fields from timestamp
// pairs. Derivation happens once, at the transition into the completed
// state; the derived fields are never settable directly.
package timeclock

import (
	"fmt"
	"math"

	"github.com/githuax/zeduno-sub008/internal/apperr"
	"github.com/githuax/zeduno-sub008/internal/model"
)

// FinalizeShift computes TotalHours and TotalPay from the actual start/end
// timestamps and marks the shift completed. The actual break duration is
// used when recorded, otherwise the scheduled one. An end time before the
// start time yields zero hours, not an error.
func FinalizeShift(s *model.Shift) error {
	if s.ActualStartTime == nil || s.ActualEndTime == nil {
		return fmt.Errorf("%w: shift has no actual start/end time", apperr.ErrValidation)
	}

	totalMinutes := s.ActualEndTime.Sub(*s.ActualStartTime).Minutes()
	breakMinutes := float64(s.BreakDuration)
	if s.ActualBreakDuration != nil {
		breakMinutes = float64(*s.ActualBreakDuration)
	}

	workMinutes := math.Max(0, totalMinutes-breakMinutes)
	hours := workMinutes / 60
	pay := hours * s.HourlyRate

	s.TotalHours = &hours
	s.TotalPay = &pay
	s.Status = model.ShiftStatusCompleted
	return nil
}

// FinalizeAttendance computes TotalHours from the clock-in/clock-out pair.
// Break time comes from the break-start/break-end pair when both are
// present, otherwise from the recorded total break minutes.
func FinalizeAttendance(a *model.Attendance) error {
	if a.ClockIn == nil || a.ClockOut == nil {
		return fmt.Errorf("%w: attendance has no clock-in/clock-out time", apperr.ErrValidation)
	}

	breakMinutes := float64(a.TotalBreakMinutes)
	if a.BreakStart != nil && a.BreakEnd != nil {
		breakMinutes = math.Max(0, a.BreakEnd.Sub(*a.BreakStart).Minutes())
		a.TotalBreakMinutes = int(math.Round(breakMinutes))
	}

	totalMinutes := a.ClockOut.Sub(*a.ClockIn).Minutes()
	workMinutes := math.Max(0, totalMinutes-breakMinutes)
	hours := workMinutes / 60

	a.TotalHours = &hours
	return nil
}
