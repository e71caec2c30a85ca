package dayoff

import "context"

// Repository - interface for days_off table
type Repository interface {
	Create(ctx context.Context, dayOff DayOff) (DayOff, error)
	GetByID(ctx context.Context, id string) (DayOff, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]DayOff, error)
	List(ctx context.Context, filter Filter) ([]DayOff, error)
	Update(ctx context.Context, dayOff DayOff) (DayOff, error)
	Delete(ctx context.Context, id string) error
}
