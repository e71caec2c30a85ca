package rfid

import "context"

type MachineRepository interface {
	Create(ctx context.Context, m Machine) (Machine, error)
	GetByID(ctx context.Context, id string) (Machine, error)
	List(ctx context.Context, filter MachineFilter) ([]Machine, error)
	Delete(ctx context.Context, id string) error

	// ReplaceForRoom detaches every machine from roomID and attaches
	// machineIDs instead. Unknown ids fail with ErrMachineNotFound and
	// nothing changes.
	ReplaceForRoom(ctx context.Context, roomID string, machineIDs []string) error
}

type CardRepository interface {
	Create(ctx context.Context, c Card) (Card, error)
	GetByID(ctx context.Context, id string) (Card, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (Card, error)
	List(ctx context.Context, filter CardFilter) ([]Card, error)
	AssignEmployee(ctx context.Context, cardID string, employeeID string) (Card, error)
	Delete(ctx context.Context, id string) error
}
