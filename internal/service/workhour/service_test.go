package workhour

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/checkin"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/dayoff"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/workhour"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jakarta = time.FixedZone("WIB", 7*60*60)

func newService(t *testing.T, now time.Time) (*WorkHourService, *memory.Store) {
	t.Helper()
	store := memory.NewStore(clock.New(time.UTC))
	_, err := store.Employees().Create(context.Background(), employee.Employee{
		ID:         "emp-1",
		Username:   "alice",
		FirstName:  "Alice",
		Email:      "alice@example.com",
		Role:       employee.RoleEmployee,
		HourlyRate: decimal.NewFromInt(50000),
	})
	require.NoError(t, err)

	svc := NewWorkHourService(store.Employees(), store.Checkins(), store.DaysOff(), workhour.DefaultSchedule(), clock.Fixed{At: now})
	return svc, store
}

func tap(t *testing.T, store *memory.Store, id string, at time.Time) {
	t.Helper()
	_, err := store.Checkins().Create(context.Background(), checkin.Event{
		ID:         id,
		EmployeeID: "emp-1",
		CardID:     "CARD0001",
		MachineID:  "machine-1",
		CreatedAt:  at,
	})
	require.NoError(t, err)
}

func TestWorkHourService_ComputeWorkSummary(t *testing.T) {
	svc, store := newService(t, time.Date(2024, 1, 31, 18, 0, 0, 0, jakarta))
	ctx := context.Background()

	// Monday and Tuesday, recorded out of order.
	tap(t, store, "c3", time.Date(2024, 1, 9, 17, 0, 0, 0, jakarta))
	tap(t, store, "c1", time.Date(2024, 1, 8, 8, 30, 0, 0, jakarta))
	tap(t, store, "c2", time.Date(2024, 1, 8, 17, 30, 0, 0, jakarta))
	tap(t, store, "c4", time.Date(2024, 1, 9, 9, 0, 0, 0, jakarta))
	tap(t, store, "c5", time.Date(2024, 1, 9, 12, 10, 0, 0, jakarta))

	summary, err := svc.ComputeWorkSummary(ctx, "emp-1", nil, nil)
	require.NoError(t, err)

	require.Len(t, summary.WorkDays, 2)
	assert.Equal(t, 7.0, summary.WorkDays[0].Hours)
	assert.Equal(t, 7.0, summary.WorkDays[1].Hours)
	assert.Equal(t, 14.0, summary.TotalHours)
	assert.Equal(t, 14.0, summary.ExpectedHours)
	assert.Equal(t, 0.0, summary.PunishmentHours)
	assert.True(t, decimal.NewFromInt(700000).Equal(summary.PaidAmount))
}

func TestWorkHourService_ComputeWorkSummary_ApprovedDayOff(t *testing.T) {
	svc, store := newService(t, time.Date(2024, 1, 31, 18, 0, 0, 0, jakarta))
	ctx := context.Background()

	tap(t, store, "c1", time.Date(2024, 1, 8, 9, 0, 0, 0, jakarta))
	tap(t, store, "c2", time.Date(2024, 1, 8, 17, 0, 0, 0, jakarta))
	tap(t, store, "c3", time.Date(2024, 1, 9, 9, 0, 0, 0, jakarta))
	tap(t, store, "c4", time.Date(2024, 1, 9, 11, 0, 0, 0, jakarta))

	approver := "mgr-1"
	approvedAt := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	_, err := store.DaysOff().Create(ctx, dayoff.DayOff{
		ID:         "off-1",
		EmployeeID: "emp-1",
		StartDate:  time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC),
		Reason:     "doctor",
		Type:       dayoff.TypePaid,
		ApprovedBy: &approver,
		ApprovedAt: &approvedAt,
	})
	require.NoError(t, err)

	summary, err := svc.ComputeWorkSummary(ctx, "emp-1", nil, nil)
	require.NoError(t, err)

	require.Len(t, summary.WorkDays, 2)
	require.NotNil(t, summary.WorkDays[1].DayOff)
	assert.Equal(t, "off-1", summary.WorkDays[1].DayOff.ID)
	assert.Equal(t, 7.0, summary.TotalHours)
	assert.Equal(t, 14.0, summary.ExpectedHours)
	assert.Equal(t, 7.0, summary.PunishmentHours)
}

func TestWorkHourService_ComputeWorkSummary_Range(t *testing.T) {
	svc, store := newService(t, time.Date(2024, 1, 31, 18, 0, 0, 0, jakarta))

	tap(t, store, "c1", time.Date(2024, 1, 8, 9, 0, 0, 0, jakarta))
	tap(t, store, "c2", time.Date(2024, 1, 8, 17, 0, 0, 0, jakarta))
	tap(t, store, "c3", time.Date(2024, 1, 10, 9, 0, 0, 0, jakarta))
	tap(t, store, "c4", time.Date(2024, 1, 10, 17, 0, 0, 0, jakarta))

	start := time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)
	summary, err := svc.ComputeWorkSummary(context.Background(), "emp-1", &start, nil)
	require.NoError(t, err)

	require.Len(t, summary.WorkDays, 1)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), summary.WorkDays[0].Date)
	assert.Equal(t, 7.0, summary.TotalHours)
	assert.Equal(t, &start, summary.StartDate)
}

func TestWorkHourService_ComputeWorkSummary_UnknownEmployee(t *testing.T) {
	svc, _ := newService(t, time.Now())

	_, err := svc.ComputeWorkSummary(context.Background(), "missing", nil, nil)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
