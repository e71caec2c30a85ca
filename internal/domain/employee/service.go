package employee

import "context"

type Service interface {
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// GetEmployee returns the employee with card, allowed rooms and check-in history.
	GetEmployee(ctx context.Context, id string) (EmployeeDetailResponse, error)

	ListEmployees(ctx context.Context, filter Filter) ([]EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, id string) error

	// ReplaceRooms swaps the employee's allowed rooms for exactly req.RoomIDs.
	ReplaceRooms(ctx context.Context, req ReplaceRoomsRequest) ([]RoomSummary, error)
}
