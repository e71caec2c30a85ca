package workhour

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestDateRange(t *testing.T) {
	var got []time.Time
	for d := range DateRange(date(2024, 1, 30), date(2024, 2, 2)) {
		got = append(got, d)
	}
	assert.Equal(t, []time.Time{
		date(2024, 1, 30), date(2024, 1, 31), date(2024, 2, 1), date(2024, 2, 2),
	}, got)
}

func TestDateRange_SingleDay(t *testing.T) {
	n := 0
	for range DateRange(date(2024, 1, 10), date(2024, 1, 10)) {
		n++
	}
	assert.Equal(t, 1, n)
}

func TestDateRange_Empty(t *testing.T) {
	for range DateRange(date(2024, 1, 10), date(2024, 1, 9)) {
		t.Fatal("expected no dates")
	}
}

func TestDateRange_Restartable(t *testing.T) {
	seq := DateRange(date(2024, 1, 1), date(2024, 1, 5))
	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}
	assert.Equal(t, 5, count())
	assert.Equal(t, 5, count())
}

func TestDateRange_StopsEarly(t *testing.T) {
	n := 0
	for range DateRange(date(2024, 1, 1), date(2024, 12, 31)) {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestIsWeekday(t *testing.T) {
	// 2024-01-08 is a Monday.
	for i := 0; i < 5; i++ {
		assert.True(t, IsWeekday(date(2024, 1, 8+i)))
	}
	assert.False(t, IsWeekday(date(2024, 1, 13)))
	assert.False(t, IsWeekday(date(2024, 1, 14)))
}

func TestCountWeekdays(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"full week", date(2024, 1, 8), date(2024, 1, 14), 5},
		{"weekend only", date(2024, 1, 13), date(2024, 1, 14), 0},
		{"two weeks", date(2024, 1, 1), date(2024, 1, 14), 10},
		{"reversed", date(2024, 1, 14), date(2024, 1, 1), 0},
		{"month of january", date(2024, 1, 1), date(2024, 1, 31), 23},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, CountWeekdays(c.start, c.end))
		})
	}
}

func TestWeekdayHoursBetween(t *testing.T) {
	assert.Equal(t, 40.0, WeekdayHoursBetween(date(2024, 1, 8), date(2024, 1, 14)))
	assert.Equal(t, 0.0, WeekdayHoursBetween(date(2024, 1, 13), date(2024, 1, 14)))
}
