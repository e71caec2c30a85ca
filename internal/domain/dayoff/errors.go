package dayoff

import "errors"

var (
	ErrDayOffNotFound     = errors.New("day off not found")
	ErrOverlap            = errors.New("employee already has a day off in this date range")
	ErrInvalidDateRange   = errors.New("end date must not be before start date")
	ErrAlreadyApproved    = errors.New("day off already approved")
	ErrApproverNotFound   = errors.New("approver not found")
	ErrApproverNotManager = errors.New("only managers can approve days off")
)
