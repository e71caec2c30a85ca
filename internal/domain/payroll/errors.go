package payroll

import "errors"

var (
	ErrInvalidPeriod = errors.New("invalid payroll period")
	ErrNoRecipient   = errors.New("employee has no email address")
)
