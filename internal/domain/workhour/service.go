package workhour

import (
	"context"
	"time"
)

type Service interface {
	// ComputeWorkSummary builds the work-hour report of one employee. A nil
	// bound leaves that side of the range open.
	ComputeWorkSummary(ctx context.Context, employeeID string, startDate, endDate *time.Time) (Summary, error)
}
