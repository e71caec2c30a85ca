package room

import (
	"context"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/rfid"
)

type Service interface {
	CreateRoom(ctx context.Context, req CreateRoomRequest) (RoomResponse, error)
	ListRooms(ctx context.Context, filter Filter) ([]RoomResponse, error)
	DeleteRoom(ctx context.Context, id string) error
	ReplaceEmployees(ctx context.Context, req ReplaceEmployeesRequest) ([]employee.EmployeeResponse, error)
	ReplaceMachines(ctx context.Context, req ReplaceMachinesRequest) ([]rfid.MachineResponse, error)
}
