package room

import "context"

type Repository interface {
	Create(ctx context.Context, r Room) (Room, error)
	GetByID(ctx context.Context, id string) (Room, error)
	List(ctx context.Context, filter Filter) ([]Room, error)

	// Delete removes the room after detaching its machines and allowed employees.
	Delete(ctx context.Context, id string) error

	HasAccess(ctx context.Context, employeeID, roomID string) (bool, error)

	// ReplaceForEmployee sets the employee's allowed rooms to exactly roomIDs.
	// Unknown room ids fail with ErrRoomNotFound and nothing changes.
	ReplaceForEmployee(ctx context.Context, employeeID string, roomIDs []string) error

	// ReplaceEmployees sets the room's allowed employees to exactly
	// employeeIDs. Unknown employee ids fail with employee.ErrEmployeeNotFound.
	ReplaceEmployees(ctx context.Context, roomID string, employeeIDs []string) error
}
