package room

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/rfid"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/room"
	"github.com/google/uuid"
)

type RoomServiceImpl struct {
	roomRepo     room.Repository
	employeeRepo employee.Repository
	machineRepo  rfid.MachineRepository
}

func NewRoomService(roomRepo room.Repository, employeeRepo employee.Repository, machineRepo rfid.MachineRepository) room.Service {
	return &RoomServiceImpl{
		roomRepo:     roomRepo,
		employeeRepo: employeeRepo,
		machineRepo:  machineRepo,
	}
}

// CreateRoom implements room.Service.
func (s *RoomServiceImpl) CreateRoom(ctx context.Context, req room.CreateRoomRequest) (room.RoomResponse, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return room.RoomResponse{}, fmt.Errorf("failed to generate room id: %w", err)
	}

	created, err := s.roomRepo.Create(ctx, room.Room{ID: id.String(), Name: req.Name})
	if err != nil {
		return room.RoomResponse{}, fmt.Errorf("failed to create room: %w", err)
	}
	return room.NewRoomResponse(created), nil
}

// ListRooms implements room.Service.
func (s *RoomServiceImpl) ListRooms(ctx context.Context, filter room.Filter) ([]room.RoomResponse, error) {
	rooms, err := s.roomRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	responses := make([]room.RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		responses = append(responses, room.NewRoomResponse(r))
	}
	return responses, nil
}

// DeleteRoom implements room.Service.
func (s *RoomServiceImpl) DeleteRoom(ctx context.Context, id string) error {
	if err := s.roomRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete room %s: %w", id, err)
	}
	return nil
}

// ReplaceEmployees implements room.Service.
func (s *RoomServiceImpl) ReplaceEmployees(ctx context.Context, req room.ReplaceEmployeesRequest) ([]employee.EmployeeResponse, error) {
	if err := s.roomRepo.ReplaceEmployees(ctx, req.RoomID, req.EmployeeIDs); err != nil {
		return nil, fmt.Errorf("failed to replace employees of room %s: %w", req.RoomID, err)
	}

	employees, err := s.employeeRepo.List(ctx, employee.Filter{RoomID: &req.RoomID})
	if err != nil {
		return nil, fmt.Errorf("failed to list employees of room %s: %w", req.RoomID, err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.NewEmployeeResponse(e))
	}
	return responses, nil
}

// ReplaceMachines implements room.Service.
func (s *RoomServiceImpl) ReplaceMachines(ctx context.Context, req room.ReplaceMachinesRequest) ([]rfid.MachineResponse, error) {
	if _, err := s.roomRepo.GetByID(ctx, req.RoomID); err != nil {
		return nil, fmt.Errorf("failed to get room %s: %w", req.RoomID, err)
	}

	if err := s.machineRepo.ReplaceForRoom(ctx, req.RoomID, req.MachineIDs); err != nil {
		return nil, fmt.Errorf("failed to replace machines of room %s: %w", req.RoomID, err)
	}

	machines, err := s.machineRepo.List(ctx, rfid.MachineFilter{RoomID: &req.RoomID})
	if err != nil {
		return nil, fmt.Errorf("failed to list machines of room %s: %w", req.RoomID, err)
	}

	responses := make([]rfid.MachineResponse, 0, len(machines))
	for _, m := range machines {
		responses = append(responses, rfid.NewMachineResponse(m))
	}
	return responses, nil
}
