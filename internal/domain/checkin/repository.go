package checkin

import "context"

type Repository interface {
	Create(ctx context.Context, e Event) (Event, error)

	// ListByEmployee returns the employee's events ordered by CreatedAt.
	ListByEmployee(ctx context.Context, employeeID string) ([]Event, error)

	// List returns events matching every set field, newest first.
	List(ctx context.Context, filter Filter) ([]Event, error)
}
