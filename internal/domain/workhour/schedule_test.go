package workhour

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ict = time.FixedZone("ICT", 7*60*60)

func at(day, hour, minute int) time.Time {
	return time.Date(2024, time.January, day, hour, minute, 0, 0, ict)
}

func TestSchedule_DayHours(t *testing.T) {
	s := DefaultSchedule()

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  float64
	}{
		{"end equals start", at(10, 10, 0), at(10, 10, 0), 0},
		{"end before start", at(10, 15, 0), at(10, 10, 0), 0},
		{"full morning", at(10, 9, 0), at(10, 12, 0), 3},
		{"full afternoon", at(10, 13, 0), at(10, 17, 0), 4},
		{"official day", at(10, 9, 0), at(10, 17, 0), 7},
		{"early in late out", at(10, 7, 0), at(10, 18, 0), 7},
		{"clock in one hour early", at(10, 8, 0), at(10, 17, 0), 7},
		{"inside lunch", at(10, 12, 30), at(10, 12, 45), 0},
		{"exactly lunch", at(10, 12, 0), at(10, 13, 0), 0},
		{"through lunch", at(10, 11, 0), at(10, 14, 0), 2},
		{"leave during lunch", at(10, 10, 0), at(10, 12, 30), 2},
		{"arrive during lunch", at(10, 12, 30), at(10, 14, 0), 1},
		{"partial morning", at(10, 9, 30), at(10, 11, 15), 1.75},
		{"partial afternoon", at(10, 14, 0), at(10, 16, 30), 2.5},
		{"before work only", at(10, 7, 0), at(10, 8, 30), 0},
		{"after work only", at(10, 17, 30), at(10, 19, 0), 0},
		{"late stay clipped", at(10, 16, 0), at(10, 20, 0), 1},
		{"early arrival clipped", at(10, 6, 0), at(10, 10, 20), 1.33},
		{"one minute rounds up", at(10, 9, 0), at(10, 9, 1), 0.02},
		{"midnight to midnight minus one", at(10, 0, 0), at(10, 23, 59), 7},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := s.DayHours(c.start, c.end)
			require.NoError(t, err)
			assert.InDelta(t, c.want, got, 1e-9)
		})
	}
}

func TestSchedule_DayHours_CrossDay(t *testing.T) {
	s := DefaultSchedule()

	_, err := s.DayHours(at(1, 23, 0), at(2, 1, 0))
	assert.True(t, errors.Is(err, ErrInvalidRange))

	// Reversed cross-day range is still a range error, not zero hours.
	_, err = s.DayHours(at(2, 1, 0), at(1, 23, 0))
	assert.True(t, errors.Is(err, ErrInvalidRange))
}

func TestSchedule_DayHours_EndReadInStartLocation(t *testing.T) {
	s := DefaultSchedule()

	// 10:00 UTC is 17:00 ICT, same calendar day as 09:00 ICT.
	end := time.Date(2024, time.January, 10, 10, 0, 0, 0, time.UTC)
	got, err := s.DayHours(at(10, 9, 0), end)
	require.NoError(t, err)
	assert.InDelta(t, 7.0, got, 1e-9)
}

func TestSchedule_DayHours_InsideWorkingSegmentsIsExact(t *testing.T) {
	s := DefaultSchedule()

	segments := [][2]int{{9 * 60, 12 * 60}, {13 * 60, 17 * 60}}
	for _, seg := range segments {
		for from := seg[0]; from <= seg[1]; from += 15 {
			for to := from; to <= seg[1]; to += 15 {
				start := at(10, from/60, from%60)
				end := at(10, to/60, to%60)
				got, err := s.DayHours(start, end)
				require.NoError(t, err)
				assert.InDelta(t, end.Sub(start).Hours(), got, 1e-9, "%s-%s", start.Format("15:04"), end.Format("15:04"))
			}
		}
	}
}

func TestSchedule_DayHours_NeverNegative(t *testing.T) {
	s := DefaultSchedule()

	for from := 0; from < 24*60; from += 30 {
		for to := 0; to < 24*60; to += 30 {
			got, err := s.DayHours(at(10, from/60, from%60), at(10, to/60, to%60))
			require.NoError(t, err)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 7.0)
		}
	}
}

func TestSchedule_DayHours_CustomSchedule(t *testing.T) {
	s, err := ParseSchedule("08:00", "16:00", "12:00", "12:30")
	require.NoError(t, err)

	got, err := s.DayHours(at(10, 7, 0), at(10, 18, 0))
	require.NoError(t, err)
	assert.InDelta(t, 7.5, got, 1e-9)
}

func TestParseSchedule(t *testing.T) {
	s, err := ParseSchedule("09:00", "17:00", "12:00", "13:00")
	require.NoError(t, err)
	assert.Equal(t, DefaultSchedule(), s)

	invalid := [][4]string{
		{"17:00", "09:00", "12:00", "13:00"},
		{"09:00", "17:00", "13:00", "12:00"},
		{"09:00", "17:00", "08:00", "09:30"},
		{"09:00", "17:00", "16:30", "17:30"},
	}
	for _, in := range invalid {
		_, err := ParseSchedule(in[0], in[1], in[2], in[3])
		assert.True(t, errors.Is(err, ErrInvalidSchedule), "%v", in)
	}

	_, err = ParseSchedule("9am", "17:00", "12:00", "13:00")
	assert.Error(t, err)
}

func TestClockTime(t *testing.T) {
	c, err := ParseClockTime("08:45")
	require.NoError(t, err)
	assert.Equal(t, ClockTime{Hour: 8, Minute: 45}, c)
	assert.Equal(t, "08:45", c.String())
	assert.Equal(t, at(3, 8, 45), c.On(at(3, 22, 10)))
}
