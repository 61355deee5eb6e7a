package timeclock

import (
	"context"
	"testing"
	"time"

	"github.com/githuax/zeduno-sub008/internal/apperr"
	"github.com/githuax/zeduno-sub008/internal/model"
	"github.com/githuax/zeduno-sub008/internal/tenantscope"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func uintp(v uint) *uint { return &v }

func staffCaller(tenantID uint) tenantscope.Caller {
	return tenantscope.Caller{UserID: 1, Role: model.RoleStaff, TenantID: uintp(tenantID)}
}

func newTestService(t *testing.T) (*Service, *gorm.DB, *model.Employee) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Tenant{},
		&model.Employee{},
		&model.Shift{},
		&model.Attendance{},
	))

	tenant := &model.Tenant{Name: "Mama Oliech", Slug: "mama-oliech", Status: model.TenantStatusActive, MaxUsers: 10}
	require.NoError(t, db.Create(tenant).Error)

	emp := &model.Employee{TenantID: tenant.ID, Name: "Wanjiku", Position: "waiter", HourlyRate: 200, Active: true}
	require.NoError(t, db.Create(emp).Error)

	return NewService(db), db, emp
}

func scheduleShift(t *testing.T, svc *Service, emp *model.Employee) *model.Shift {
	t.Helper()
	shift, err := svc.CreateShift(context.Background(), staffCaller(emp.TenantID), CreateShiftInput{
		EmployeeID:     emp.ID,
		Date:           time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		ScheduledStart: "09:00",
		ScheduledEnd:   "17:00",
		BreakDuration:  60,
		HourlyRate:     200,
	})
	require.NoError(t, err)
	return shift
}

func TestCreateShift_Validation(t *testing.T) {
	svc, _, emp := newTestService(t)
	caller := staffCaller(emp.TenantID)
	ctx := context.Background()

	base := CreateShiftInput{
		EmployeeID:     emp.ID,
		Date:           time.Now(),
		ScheduledStart: "09:00",
		ScheduledEnd:   "17:00",
		HourlyRate:     200,
	}

	bad := base
	bad.ScheduledStart = "9:75"
	_, err := svc.CreateShift(ctx, caller, bad)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	bad = base
	bad.ScheduledEnd = "25:00"
	_, err = svc.CreateShift(ctx, caller, bad)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	bad = base
	bad.BreakDuration = 150
	_, err = svc.CreateShift(ctx, caller, bad)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	bad = base
	bad.HourlyRate = -1
	_, err = svc.CreateShift(ctx, caller, bad)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	bad = base
	bad.EmployeeID = emp.ID + 100
	_, err = svc.CreateShift(ctx, caller, bad)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestShiftLifecycle_FinalizesOnCompletion(t *testing.T) {
	svc, _, emp := newTestService(t)
	caller := staffCaller(emp.TenantID)
	ctx := context.Background()

	shift := scheduleShift(t, svc, emp)
	assert.Equal(t, model.ShiftStatusScheduled, shift.Status)
	assert.Nil(t, shift.TotalHours)

	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	shift, err := svc.StartShift(ctx, caller, shift.ID, start)
	require.NoError(t, err)
	assert.Equal(t, model.ShiftStatusStarted, shift.Status)

	shift, err = svc.StartShiftBreak(ctx, caller, shift.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ShiftStatusOnBreak, shift.Status)

	shift, err = svc.EndShiftBreak(ctx, caller, shift.ID, 45)
	require.NoError(t, err)
	assert.Equal(t, model.ShiftStatusStarted, shift.Status)
	require.NotNil(t, shift.ActualBreakDuration)
	assert.Equal(t, 45, *shift.ActualBreakDuration)

	shift, err = svc.CompleteShift(ctx, caller, shift.ID, start.Add(8*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, model.ShiftStatusCompleted, shift.Status)
	require.NotNil(t, shift.TotalHours)
	require.NotNil(t, shift.TotalPay)
	assert.Equal(t, 7.25, *shift.TotalHours)
	assert.Equal(t, 1450.0, *shift.TotalPay)
}

func TestCompleteShift_WrongStateConflicts(t *testing.T) {
	svc, _, emp := newTestService(t)
	caller := staffCaller(emp.TenantID)
	ctx := context.Background()

	shift := scheduleShift(t, svc, emp)

	_, err := svc.CompleteShift(ctx, caller, shift.ID, time.Now())
	assert.ErrorIs(t, err, apperr.ErrConflict)

	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	_, err = svc.StartShift(ctx, caller, shift.ID, start)
	require.NoError(t, err)
	_, err = svc.CompleteShift(ctx, caller, shift.ID, start.Add(8*time.Hour))
	require.NoError(t, err)

	// Already completed; finalization must not run twice.
	_, err = svc.CompleteShift(ctx, caller, shift.ID, start.Add(9*time.Hour))
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestReopenShift_ClearsDerivedFields(t *testing.T) {
	svc, _, emp := newTestService(t)
	caller := staffCaller(emp.TenantID)
	ctx := context.Background()

	shift := scheduleShift(t, svc, emp)
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	_, err := svc.StartShift(ctx, caller, shift.ID, start)
	require.NoError(t, err)
	_, err = svc.CompleteShift(ctx, caller, shift.ID, start.Add(8*time.Hour))
	require.NoError(t, err)

	reopened, err := svc.ReopenShift(ctx, caller, shift.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ShiftStatusStarted, reopened.Status)
	assert.Nil(t, reopened.TotalHours)
	assert.Nil(t, reopened.TotalPay)

	// Corrected end time, finalized again.
	done, err := svc.CompleteShift(ctx, caller, shift.ID, start.Add(6*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 5.0, *done.TotalHours)
	assert.Equal(t, 1000.0, *done.TotalPay)

	_, err = svc.ReopenShift(ctx, caller, shift.ID+100)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestShift_CrossTenantHidden(t *testing.T) {
	svc, _, emp := newTestService(t)
	ctx := context.Background()

	shift := scheduleShift(t, svc, emp)

	_, err := svc.StartShift(ctx, staffCaller(emp.TenantID+1), shift.ID, time.Now())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestClockIn_OncePerEmployeeDay(t *testing.T) {
	svc, _, emp := newTestService(t)
	caller := staffCaller(emp.TenantID)
	ctx := context.Background()

	at := time.Date(2025, 6, 2, 8, 55, 0, 0, time.UTC)
	a, err := svc.ClockIn(ctx, caller, nil, emp.ID, at)
	require.NoError(t, err)
	assert.Equal(t, model.AttendanceStatusPresent, a.Status)
	require.NotNil(t, a.ClockIn)

	_, err = svc.ClockIn(ctx, caller, nil, emp.ID, at.Add(2*time.Hour))
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestClockOut_FinalizesHours(t *testing.T) {
	svc, _, emp := newTestService(t)
	caller := staffCaller(emp.TenantID)
	ctx := context.Background()

	in := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	a, err := svc.ClockIn(ctx, caller, nil, emp.ID, in)
	require.NoError(t, err)

	a, err = svc.RecordBreak(ctx, caller, a.ID, in.Add(3*time.Hour), in.Add(3*time.Hour+30*time.Minute))
	require.NoError(t, err)

	a, err = svc.ClockOut(ctx, caller, a.ID, in.Add(8*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 30, a.TotalBreakMinutes)
	require.NotNil(t, a.TotalHours)
	assert.Equal(t, 7.5, *a.TotalHours)

	_, err = svc.ClockOut(ctx, caller, a.ID, in.Add(9*time.Hour))
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestListShifts_Scoped(t *testing.T) {
	svc, db, emp := newTestService(t)
	ctx := context.Background()

	other := &model.Tenant{Name: "Hilltop", Slug: "hilltop", Status: model.TenantStatusActive}
	require.NoError(t, db.Create(other).Error)

	scheduleShift(t, svc, emp)

	own, err := svc.ListShifts(ctx, staffCaller(emp.TenantID), nil)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	foreign, err := svc.ListShifts(ctx, staffCaller(other.ID), nil)
	require.NoError(t, err)
	assert.Empty(t, foreign)
}
