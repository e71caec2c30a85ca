package employee

import "context"

type Repository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUsername(ctx context.Context, username string) (Employee, error)
	List(ctx context.Context, filter Filter) ([]Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	Delete(ctx context.Context, id string) error

	// LockForUpdate takes a row lock on the employee for the rest of the
	// surrounding transaction. Returns ErrEmployeeNotFound for unknown ids.
	LockForUpdate(ctx context.Context, id string) error
}
