package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*60*60)
	ts := time.Date(2024, 1, 10, 23, 30, 0, 0, loc)

	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), DateOf(ts))
	// Same instant read in UTC is still the 10th at 16:30.
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), DateOf(ts.UTC()))
	// 01:00 at +07:00 is the previous day in UTC.
	early := time.Date(2024, 1, 10, 1, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), DateOf(early.UTC()))
}

func TestSameDate(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*60*60)
	a := time.Date(2024, 1, 1, 23, 0, 0, 0, loc)
	b := time.Date(2024, 1, 2, 1, 0, 0, 0, loc)
	c := time.Date(2024, 1, 1, 8, 0, 0, 0, loc)

	assert.False(t, SameDate(a, b))
	assert.True(t, SameDate(a, c))
	// b expressed in UTC is still read in a's location.
	assert.True(t, SameDate(c, a.UTC()))
}

func TestParseAndFormatDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", FormatDate(d))

	_, err = ParseDate("2024-13-01")
	assert.Error(t, err)

	assert.Nil(t, FormatDatePtr(nil))
	assert.Equal(t, "2024-02-29", *FormatDatePtr(&d))
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{7, 7},
		{1.005, 1},
		{2.3333333, 2.33},
		{2.6666666, 2.67},
		{-0.125, -0.13},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, Round2(c.in), 1e-9, "Round2(%v)", c.in)
	}
}
