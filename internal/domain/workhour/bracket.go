package workhour

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/utils"
)

// DayBracket holds the first and last check-in of one calendar date.
type DayBracket struct {
	Date      time.Time
	StartTime time.Time
	EndTime   time.Time
}

// ExtractDayBrackets groups timestamps by calendar date in loc and keeps the
// earliest and latest of each date. Output is ordered by date.
func ExtractDayBrackets(timestamps []time.Time, loc *time.Location) []DayBracket {
	if loc == nil {
		loc = time.UTC
	}

	byDate := make(map[time.Time]*DayBracket)
	for _, ts := range timestamps {
		local := ts.In(loc)
		date := utils.DateOf(local)
		b, ok := byDate[date]
		if !ok {
			byDate[date] = &DayBracket{Date: date, StartTime: local, EndTime: local}
			continue
		}
		if local.Before(b.StartTime) {
			b.StartTime = local
		}
		if local.After(b.EndTime) {
			b.EndTime = local
		}
	}

	brackets := make([]DayBracket, 0, len(byDate))
	for _, b := range byDate {
		brackets = append(brackets, *b)
	}
	sort.Slice(brackets, func(i, j int) bool {
		return brackets[i].Date.Before(brackets[j].Date)
	})
	return brackets
}
