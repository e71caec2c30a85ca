package workhour

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/dayoff"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

// Mon 8th 07:00-18:00, Tue 9th 09:00-17:00, Wed 10th 09:00-12:00.
func weekCheckins() []time.Time {
	return []time.Time{
		at(8, 7, 0), at(8, 12, 0), at(8, 18, 0),
		at(9, 9, 0), at(9, 17, 0),
		at(10, 9, 0), at(10, 12, 0),
	}
}

func baseInput() SummaryInput {
	return SummaryInput{
		EmployeeID: "emp-1",
		HourlyRate: decimal.NewFromInt(100000),
		Now:        at(20, 10, 0),
		Location:   ict,
		Checkins:   weekCheckins(),
	}
}

func TestSummarize(t *testing.T) {
	s, err := DefaultSchedule().Summarize(baseInput())
	require.NoError(t, err)

	require.Len(t, s.WorkDays, 3)
	assert.Equal(t, "emp-1", s.EmployeeID)
	assert.Equal(t, 7.0, s.WorkDays[0].Hours)
	assert.Equal(t, 7.0, s.WorkDays[1].Hours)
	assert.Equal(t, 3.0, s.WorkDays[2].Hours)
	assert.Equal(t, 17.0, s.TotalHours)
	assert.Equal(t, 24.0, s.ExpectedHours)
	assert.Equal(t, 7.0, s.PunishmentHours)
	assert.True(t, decimal.NewFromInt(1700000).Equal(s.PaidAmount))
}

func TestSummarize_NoCheckins(t *testing.T) {
	in := baseInput()
	in.Checkins = nil

	s, err := DefaultSchedule().Summarize(in)
	require.NoError(t, err)

	assert.NotNil(t, s.WorkDays)
	assert.Empty(t, s.WorkDays)
	assert.Equal(t, 0.0, s.TotalHours)
	assert.Equal(t, 0.0, s.ExpectedHours)
	assert.Equal(t, 0.0, s.PunishmentHours)
	assert.True(t, s.PaidAmount.IsZero())
}

func TestSummarize_ApprovedDayOffExcludedButListed(t *testing.T) {
	approvedAt := at(5, 10, 0)
	in := baseInput()
	in.DaysOff = []dayoff.DayOff{{
		ID:         "off-1",
		EmployeeID: "emp-1",
		StartDate:  date(2024, 1, 9),
		EndDate:    date(2024, 1, 9),
		Type:       dayoff.TypePaid,
		ApprovedBy: strPtr("mgr-1"),
		ApprovedAt: &approvedAt,
	}}

	s, err := DefaultSchedule().Summarize(in)
	require.NoError(t, err)

	require.Len(t, s.WorkDays, 3)
	require.NotNil(t, s.WorkDays[1].DayOff)
	assert.Equal(t, "off-1", s.WorkDays[1].DayOff.ID)
	assert.Equal(t, 7.0, s.WorkDays[1].Hours)
	assert.False(t, s.WorkDays[1].Counted())
	assert.Equal(t, 10.0, s.TotalHours)
	assert.Equal(t, 24.0, s.ExpectedHours)
	assert.Equal(t, 14.0, s.PunishmentHours)
	assert.True(t, decimal.NewFromInt(1000000).Equal(s.PaidAmount))
}

func TestSummarize_PendingDayOffExcluded(t *testing.T) {
	in := baseInput()
	in.DaysOff = []dayoff.DayOff{{
		ID:        "off-1",
		StartDate: date(2024, 1, 10),
		EndDate:   date(2024, 1, 10),
		Type:      dayoff.TypeUnpaid,
	}}

	s, err := DefaultSchedule().Summarize(in)
	require.NoError(t, err)

	require.Len(t, s.WorkDays, 3)
	day := s.WorkDays[2]
	require.NotNil(t, day.DayOff)
	assert.False(t, day.DayOff.IsApproved())
	assert.Equal(t, 3.0, day.Hours)
	assert.False(t, day.Counted())
	assert.True(t, s.WorkDays[0].Counted())

	assert.Equal(t, 14.0, s.TotalHours)
	assert.Equal(t, 24.0, s.ExpectedHours)
	assert.Equal(t, 10.0, s.PunishmentHours)
	assert.True(t, decimal.NewFromInt(1400000).Equal(s.PaidAmount))
}

func TestSummarize_RangeBounds(t *testing.T) {
	in := baseInput()
	in.StartDate = datePtr(2024, 1, 9)
	in.EndDate = datePtr(2024, 1, 9)

	s, err := DefaultSchedule().Summarize(in)
	require.NoError(t, err)

	require.Len(t, s.WorkDays, 1)
	assert.Equal(t, date(2024, 1, 9), s.WorkDays[0].Date)
	assert.Equal(t, 7.0, s.TotalHours)
	assert.Equal(t, 8.0, s.ExpectedHours)
	assert.Equal(t, in.StartDate, s.StartDate)
	assert.Equal(t, in.EndDate, s.EndDate)
}

func TestSummarize_ExpectedHoursFollowObservedSpan(t *testing.T) {
	in := baseInput()
	// The requested range is wider than the days actually worked.
	in.StartDate = datePtr(2024, 1, 1)
	in.EndDate = datePtr(2024, 1, 31)

	s, err := DefaultSchedule().Summarize(in)
	require.NoError(t, err)

	assert.Equal(t, 24.0, s.ExpectedHours)
}

func TestSummarize_SkipsWeekendAndFuture(t *testing.T) {
	in := baseInput()
	in.Now = at(9, 8, 0)
	in.Checkins = append(in.Checkins, at(13, 9, 0), at(13, 17, 0))

	s, err := DefaultSchedule().Summarize(in)
	require.NoError(t, err)

	// Tuesday is today and stays. Wednesday is in the future.
	require.Len(t, s.WorkDays, 2)
	assert.Equal(t, date(2024, 1, 8), s.WorkDays[0].Date)
	assert.Equal(t, date(2024, 1, 9), s.WorkDays[1].Date)
	assert.Equal(t, 14.0, s.TotalHours)
	assert.Equal(t, 16.0, s.ExpectedHours)
}

func TestSummarize_NegativePunishment(t *testing.T) {
	sched, err := ParseSchedule("08:00", "20:00", "12:00", "13:00")
	require.NoError(t, err)

	in := baseInput()
	in.Checkins = []time.Time{at(8, 8, 0), at(8, 20, 0)}

	s, err := sched.Summarize(in)
	require.NoError(t, err)

	assert.Equal(t, 11.0, s.TotalHours)
	assert.Equal(t, 8.0, s.ExpectedHours)
	assert.Equal(t, -3.0, s.PunishmentHours)
}

func TestSummarize_SingleCheckinIsZeroHours(t *testing.T) {
	in := baseInput()
	in.Checkins = []time.Time{at(8, 10, 0)}

	s, err := DefaultSchedule().Summarize(in)
	require.NoError(t, err)

	require.Len(t, s.WorkDays, 1)
	assert.Equal(t, 0.0, s.TotalHours)
	assert.Equal(t, 8.0, s.PunishmentHours)
}

func TestSummarize_TotalIsRoundedSum(t *testing.T) {
	in := baseInput()
	// 20 minutes a day for three days.
	in.Checkins = []time.Time{
		at(8, 9, 0), at(8, 9, 20),
		at(9, 9, 0), at(9, 9, 20),
		at(10, 9, 0), at(10, 9, 20),
	}

	s, err := DefaultSchedule().Summarize(in)
	require.NoError(t, err)

	assert.Equal(t, 0.33, s.WorkDays[0].Hours)
	assert.Equal(t, 0.99, s.TotalHours)
	assert.Equal(t, 23.01, s.PunishmentHours)
}

func TestNewWorkDaysResponse(t *testing.T) {
	in := baseInput()
	in.StartDate = datePtr(2024, 1, 1)
	in.DaysOff = []dayoff.DayOff{{ID: "off-1", StartDate: date(2024, 1, 8), EndDate: date(2024, 1, 8)}}

	s, err := DefaultSchedule().Summarize(in)
	require.NoError(t, err)

	resp := NewWorkDaysResponse(s)
	require.Len(t, resp.WorkDays, 3)
	assert.Equal(t, "2024-01-08", resp.WorkDays[0].Date)
	require.NotNil(t, resp.WorkDays[0].DayOff)
	assert.False(t, resp.WorkDays[0].DayOff.Approved)
	assert.Nil(t, resp.WorkDays[1].DayOff)
	require.NotNil(t, resp.StartDate)
	assert.Equal(t, "2024-01-01", *resp.StartDate)
	assert.Nil(t, resp.EndDate)
}

func TestWorkDaysRequest_Validate(t *testing.T) {
	req := WorkDaysRequest{EmployeeID: "emp-1", StartDate: "2024-01-01"}
	require.NoError(t, req.Validate())
	start, end := req.Bounds()
	require.NotNil(t, start)
	assert.Equal(t, date(2024, 1, 1), *start)
	assert.Nil(t, end)

	bad := WorkDaysRequest{StartDate: "01/01/2024", EndDate: "2024-13-01"}
	assert.Error(t, bad.Validate())
}

func TestSummarize_SkipsWeekend(t *testing.T) {
	in := baseInput()
	// Saturday the 13th and Sunday the 14th.
	in.Checkins = append(in.Checkins, at(13, 9, 0), at(13, 17, 0), at(14, 10, 0), at(14, 11, 0))

	s, err := DefaultSchedule().Summarize(in)
	require.NoError(t, err)

	require.Len(t, s.WorkDays, 3)
	assert.Equal(t, 17.0, s.TotalHours)
}
