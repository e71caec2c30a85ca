package workhour

import "errors"

var (
	ErrInvalidRange    = errors.New("start time and end time must be on the same day")
	ErrInvalidSchedule = errors.New("invalid working schedule")
)
