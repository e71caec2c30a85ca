package dayoff

import "context"

type Service interface {
	// RequestDayOff validates the range against the employee's existing
	// records and stores a pending record.
	RequestDayOff(ctx context.Context, req CreateDayOffRequest) (DayOff, error)
	UpdateDayOff(ctx context.Context, req UpdateDayOffRequest) (DayOff, error)
	ApproveDayOff(ctx context.Context, id string, approverID string) (DayOff, error)
	DeleteDayOff(ctx context.Context, id string) (DayOff, error)
	GetDayOff(ctx context.Context, id string) (DayOff, error)
	ListDaysOff(ctx context.Context, filter Filter) ([]DayOff, error)
}

// Notifier tells an employee their day off was approved.
type Notifier interface {
	SendDayOffApproved(ctx context.Context, to, name string, d DayOff) error
}
