package workhour

import (
	"time"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/dayoff"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/utils"
	"github.com/shopspring/decimal"
)

// WorkDay is one bracketed weekday with its billable hours. DayOff is set
// when a day-off record covers the date.
type WorkDay struct {
	Date      time.Time
	StartTime time.Time
	EndTime   time.Time
	Hours     float64
	DayOff    *dayoff.DayOff
}

// Counted reports whether the day's hours go into the total. Any day-off
// record on the date, pending or approved, takes the day out.
func (w WorkDay) Counted() bool {
	return w.DayOff == nil
}

// Summary is the work-hour and pay report of one employee.
type Summary struct {
	EmployeeID      string
	StartDate       *time.Time
	EndDate         *time.Time
	WorkDays        []WorkDay
	TotalHours      float64
	ExpectedHours   float64
	PunishmentHours float64
	PaidAmount      decimal.Decimal
}

// SummaryInput is everything Summarize needs about one employee.
type SummaryInput struct {
	EmployeeID string
	HourlyRate decimal.Decimal
	StartDate  *time.Time
	EndDate    *time.Time
	Now        time.Time
	Location   *time.Location
	Checkins   []time.Time
	DaysOff    []dayoff.DayOff
}

// Summarize turns check-in timestamps and day-off records into a Summary.
//
// Brackets outside StartDate..EndDate, after today, or on weekends are
// dropped. Days covered by a day-off record keep their hours for display
// but are left out of TotalHours. ExpectedHours spans the first to the last
// kept day, not the requested range.
func (s Schedule) Summarize(in SummaryInput) (Summary, error) {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	today := utils.DateOf(in.Now.In(loc))

	summary := Summary{
		EmployeeID: in.EmployeeID,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		WorkDays:   []WorkDay{},
		PaidAmount: decimal.Zero,
	}

	for _, b := range ExtractDayBrackets(in.Checkins, loc) {
		if !keepBracket(b, in.StartDate, in.EndDate, today) {
			continue
		}

		hours, err := s.DayHours(b.StartTime, b.EndTime)
		if err != nil {
			return Summary{}, err
		}

		summary.WorkDays = append(summary.WorkDays, WorkDay{
			Date:      b.Date,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			Hours:     hours,
			DayOff:    dayoff.Resolve(in.DaysOff, b.Date),
		})
	}

	total := 0.0
	for _, wd := range summary.WorkDays {
		if wd.Counted() {
			total += wd.Hours
		}
	}
	summary.TotalHours = utils.Round2(total)

	if n := len(summary.WorkDays); n > 0 {
		summary.ExpectedHours = WeekdayHoursBetween(summary.WorkDays[0].Date, summary.WorkDays[n-1].Date)
	}
	summary.PunishmentHours = utils.Round2(summary.ExpectedHours - summary.TotalHours)
	summary.PaidAmount = in.HourlyRate.Mul(decimal.NewFromFloat(summary.TotalHours)).Round(2)

	return summary, nil
}

func keepBracket(b DayBracket, startDate, endDate *time.Time, today time.Time) bool {
	if b.StartTime.IsZero() || b.EndTime.IsZero() {
		return false
	}
	if startDate != nil && b.Date.Before(utils.DateOf(*startDate)) {
		return false
	}
	if endDate != nil && b.Date.After(utils.DateOf(*endDate)) {
		return false
	}
	if b.Date.After(today) {
		return false
	}
	return IsWeekday(b.Date)
}
