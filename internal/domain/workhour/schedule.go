package workhour

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/utils"
)

// ClockTime is a time of day with minute precision.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses "HH:MM".
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("parse clock time %q: %w", s, err)
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// On places c on day's calendar date, in day's location.
func (c ClockTime) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, day.Location())
}

func (c ClockTime) minutes() int {
	return c.Hour*60 + c.Minute
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Schedule is the official working day: WorkStart..WorkEnd minus the
// LunchStart..LunchEnd break.
type Schedule struct {
	WorkStart  ClockTime
	WorkEnd    ClockTime
	LunchStart ClockTime
	LunchEnd   ClockTime
}

// DefaultSchedule is 09:00-17:00 with lunch 12:00-13:00.
func DefaultSchedule() Schedule {
	return Schedule{
		WorkStart:  ClockTime{Hour: 9},
		WorkEnd:    ClockTime{Hour: 17},
		LunchStart: ClockTime{Hour: 12},
		LunchEnd:   ClockTime{Hour: 13},
	}
}

// ParseSchedule builds a Schedule from "HH:MM" strings.
func ParseSchedule(workStart, workEnd, lunchStart, lunchEnd string) (Schedule, error) {
	var s Schedule
	var err error
	if s.WorkStart, err = ParseClockTime(workStart); err != nil {
		return Schedule{}, err
	}
	if s.WorkEnd, err = ParseClockTime(workEnd); err != nil {
		return Schedule{}, err
	}
	if s.LunchStart, err = ParseClockTime(lunchStart); err != nil {
		return Schedule{}, err
	}
	if s.LunchEnd, err = ParseClockTime(lunchEnd); err != nil {
		return Schedule{}, err
	}
	if err := s.Validate(); err != nil {
		return Schedule{}, err
	}
	return s, nil
}

// Validate requires WorkStart <= LunchStart <= LunchEnd <= WorkEnd and a
// non-empty working day.
func (s Schedule) Validate() error {
	if s.WorkStart.minutes() >= s.WorkEnd.minutes() {
		return fmt.Errorf("%w: work start %s must be before work end %s", ErrInvalidSchedule, s.WorkStart, s.WorkEnd)
	}
	if s.LunchStart.minutes() > s.LunchEnd.minutes() {
		return fmt.Errorf("%w: lunch start %s is after lunch end %s", ErrInvalidSchedule, s.LunchStart, s.LunchEnd)
	}
	if s.LunchStart.minutes() < s.WorkStart.minutes() || s.LunchEnd.minutes() > s.WorkEnd.minutes() {
		return fmt.Errorf("%w: lunch %s-%s must be inside work hours %s-%s", ErrInvalidSchedule, s.LunchStart, s.LunchEnd, s.WorkStart, s.WorkEnd)
	}
	return nil
}

// DayHours returns the billable hours between start and end, both read in
// start's location. Time before WorkStart, after WorkEnd and inside lunch is
// not credited. The result is rounded to two decimals.
func (s Schedule) DayHours(start, end time.Time) (float64, error) {
	end = end.In(start.Location())
	if !utils.SameDate(start, end) {
		return 0, ErrInvalidRange
	}
	if !end.After(start) {
		return 0, nil
	}

	workStart := s.WorkStart.On(start)
	workEnd := s.WorkEnd.On(start)
	lunchStart := s.LunchStart.On(start)
	lunchEnd := s.LunchEnd.On(start)

	from := latest(start, workStart)
	to := earliest(end, workEnd)

	morning := overlap(from, to, workStart, lunchStart)
	afternoon := overlap(from, to, lunchEnd, workEnd)

	return utils.Round2((morning + afternoon).Hours()), nil
}

// overlap is the length of [aStart, aEnd] ∩ [bStart, bEnd], never negative.
func overlap(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	lo := latest(aStart, bStart)
	hi := earliest(aEnd, bEnd)
	if !hi.After(lo) {
		return 0
	}
	return hi.Sub(lo)
}

func latest(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earliest(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
