package timeclock

import (
	"testing"
	"time"

	"github.com/githuax/zeduno-sub008/internal/apperr"
	"github.com/githuax/zeduno-sub008/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timeAt(hour, min int) *time.Time {
	ts := time.Date(2025, 6, 2, hour, min, 0, 0, time.UTC)
	return &ts
}

func intp(v int) *int { return &v }

func TestFinalizeShift_ScheduledBreak(t *testing.T) {
	t.Parallel()

	s := &model.Shift{
		ScheduledStart:  "09:00",
		ScheduledEnd:    "17:00",
		BreakDuration:   60,
		HourlyRate:      200,
		Status:          model.ShiftStatusStarted,
		ActualStartTime: timeAt(9, 0),
		ActualEndTime:   timeAt(17, 0),
	}

	require.NoError(t, FinalizeShift(s))

	require.NotNil(t, s.TotalHours)
	require.NotNil(t, s.TotalPay)
	assert.Equal(t, 7.0, *s.TotalHours)
	assert.Equal(t, 1400.0, *s.TotalPay)
	assert.Equal(t, model.ShiftStatusCompleted, s.Status)
}

func TestFinalizeShift_ActualBreakOverridesScheduled(t *testing.T) {
	t.Parallel()

	s := &model.Shift{
		BreakDuration:       60,
		ActualBreakDuration: intp(30),
		HourlyRate:          200,
		ActualStartTime:     timeAt(9, 0),
		ActualEndTime:       timeAt(17, 0),
	}

	require.NoError(t, FinalizeShift(s))
	assert.Equal(t, 7.5, *s.TotalHours)
	assert.Equal(t, 1500.0, *s.TotalPay)
}

func TestFinalizeShift_NegativeSpanClampsToZero(t *testing.T) {
	t.Parallel()

	s := &model.Shift{
		HourlyRate:      200,
		ActualStartTime: timeAt(17, 0),
		ActualEndTime:   timeAt(9, 0),
	}

	require.NoError(t, FinalizeShift(s))
	assert.Equal(t, 0.0, *s.TotalHours)
	assert.Equal(t, 0.0, *s.TotalPay)
}

func TestFinalizeShift_BreakLongerThanShiftClampsToZero(t *testing.T) {
	t.Parallel()

	s := &model.Shift{
		BreakDuration:   120,
		HourlyRate:      150,
		ActualStartTime: timeAt(9, 0),
		ActualEndTime:   timeAt(10, 0),
	}

	require.NoError(t, FinalizeShift(s))
	assert.Equal(t, 0.0, *s.TotalHours)
	assert.Equal(t, 0.0, *s.TotalPay)
}

func TestFinalizeShift_MissingTimestamps(t *testing.T) {
	t.Parallel()

	err := FinalizeShift(&model.Shift{ActualStartTime: timeAt(9, 0)})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	err = FinalizeShift(&model.Shift{ActualEndTime: timeAt(17, 0)})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestFinalizeAttendance_BreakPair(t *testing.T) {
	t.Parallel()

	a := &model.Attendance{
		ClockIn:    timeAt(9, 0),
		ClockOut:   timeAt(17, 0),
		BreakStart: timeAt(12, 0),
		BreakEnd:   timeAt(12, 45),
	}

	require.NoError(t, FinalizeAttendance(a))
	assert.Equal(t, 45, a.TotalBreakMinutes)
	require.NotNil(t, a.TotalHours)
	assert.Equal(t, 7.25, *a.TotalHours)
}

func TestFinalizeAttendance_RecordedBreakMinutes(t *testing.T) {
	t.Parallel()

	a := &model.Attendance{
		ClockIn:           timeAt(8, 0),
		ClockOut:          timeAt(16, 0),
		TotalBreakMinutes: 30,
	}

	require.NoError(t, FinalizeAttendance(a))
	assert.Equal(t, 7.5, *a.TotalHours)
}

func TestFinalizeAttendance_MissingClockOut(t *testing.T) {
	t.Parallel()

	err := FinalizeAttendance(&model.Attendance{ClockIn: timeAt(9, 0)})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
