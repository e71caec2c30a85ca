package workhour

import (
	"iter"
	"time"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/utils"
)

// ExpectedHoursPerWeekday is the baseline credited for every Monday-Friday.
const ExpectedHoursPerWeekday = 8.0

// DateRange yields every civil date from start to end inclusive. The
// sequence is empty when end is before start and can be ranged over again.
func DateRange(start, end time.Time) iter.Seq[time.Time] {
	from := utils.DateOf(start)
	to := utils.DateOf(end)
	return func(yield func(time.Time) bool) {
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			if !yield(d) {
				return
			}
		}
	}
}

// IsWeekday reports whether date is Monday through Friday.
func IsWeekday(date time.Time) bool {
	wd := date.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// CountWeekdays counts the weekdays in start..end inclusive.
func CountWeekdays(start, end time.Time) int {
	n := 0
	for d := range DateRange(start, end) {
		if IsWeekday(d) {
			n++
		}
	}
	return n
}

// WeekdayHoursBetween is the expected working hours for start..end inclusive.
func WeekdayHoursBetween(start, end time.Time) float64 {
	return float64(CountWeekdays(start, end)) * ExpectedHoursPerWeekday
}
