package rfid

import "context"

type MachineService interface {
	CreateMachine(ctx context.Context, req CreateMachineRequest) (MachineResponse, error)
	ListMachines(ctx context.Context, filter MachineFilter) ([]MachineResponse, error)
	DeleteMachine(ctx context.Context, id string) error
}

type CardService interface {
	CreateCard(ctx context.Context, req CreateCardRequest) (CardResponse, error)
	ListCards(ctx context.Context, filter CardFilter) ([]CardResponse, error)
	AssignCard(ctx context.Context, req AssignCardRequest) (CardResponse, error)
	DeleteCard(ctx context.Context, id string) error
}
