package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/checkin"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/rfid"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/room"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	transactor   database.Transactor
	employeeRepo employee.Repository
	roomRepo     room.Repository
	cardRepo     rfid.CardRepository
	checkinRepo  checkin.Repository
}

func NewEmployeeService(
	transactor database.Transactor,
	employeeRepo employee.Repository,
	roomRepo room.Repository,
	cardRepo rfid.CardRepository,
	checkinRepo checkin.Repository,
) employee.Service {
	return &EmployeeServiceImpl{
		transactor:   transactor,
		employeeRepo: employeeRepo,
		roomRepo:     roomRepo,
		cardRepo:     cardRepo,
		checkinRepo:  checkinRepo,
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CreateEmployee implements employee.Service.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to generate employee id: %w", err)
	}

	var created employee.Employee
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err = s.employeeRepo.Create(ctx, employee.Employee{
			ID:           id.String(),
			Username:     req.Username,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Email:        req.Email,
			Role:         req.Role,
			PasswordHash: passwordHash,
			HourlyRate:   req.HourlyRate,
		})
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}

		if len(req.RoomIDs) > 0 {
			if err := s.roomRepo.ReplaceForEmployee(ctx, created.ID, req.RoomIDs); err != nil {
				return fmt.Errorf("failed to assign rooms: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee created", "id", created.ID, "username", created.Username, "role", created.Role)
	return employee.NewEmployeeResponse(created), nil
}

// GetEmployee implements employee.Service.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeDetailResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeDetailResponse{}, fmt.Errorf("failed to get employee %s: %w", id, err)
	}

	detail := employee.EmployeeDetailResponse{
		EmployeeResponse: employee.NewEmployeeResponse(emp),
		Rooms:            []employee.RoomSummary{},
		Checkins:         []employee.CheckinSummary{},
	}

	card, err := s.cardRepo.GetByEmployeeID(ctx, emp.ID)
	switch {
	case err == nil:
		detail.CardID = &card.ID
	case !errors.Is(err, rfid.ErrCardNotFound):
		return employee.EmployeeDetailResponse{}, fmt.Errorf("failed to get card of employee %s: %w", emp.ID, err)
	}

	rooms, err := s.roomRepo.List(ctx, room.Filter{EmployeeID: &emp.ID})
	if err != nil {
		return employee.EmployeeDetailResponse{}, fmt.Errorf("failed to list rooms of employee %s: %w", emp.ID, err)
	}
	for _, r := range rooms {
		detail.Rooms = append(detail.Rooms, employee.RoomSummary{ID: r.ID, Name: r.Name})
	}

	events, err := s.checkinRepo.List(ctx, checkin.Filter{EmployeeID: &emp.ID})
	if err != nil {
		return employee.EmployeeDetailResponse{}, fmt.Errorf("failed to list checkins of employee %s: %w", emp.ID, err)
	}
	for _, e := range events {
		detail.Checkins = append(detail.Checkins, employee.CheckinSummary{
			ID:           e.ID,
			CardID:       e.CardID,
			MachineID:    e.MachineID,
			RoomID:       e.RoomID,
			AllowCheckin: e.AllowCheckin,
			CreatedAt:    e.CreatedAt,
		})
	}

	return detail, nil
}

// ListEmployees implements employee.Service.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.Filter) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.NewEmployeeResponse(e))
	}
	return responses, nil
}

// UpdateEmployee implements employee.Service.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	current, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee %s: %w", req.ID, err)
	}

	if req.FirstName != nil {
		current.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		current.LastName = *req.LastName
	}
	if req.Email != nil {
		current.Email = *req.Email
	}
	if req.Role != nil {
		current.Role = *req.Role
	}
	if req.HourlyRate != nil {
		current.HourlyRate = *req.HourlyRate
	}
	if req.Password != nil {
		current.PasswordHash, err = hashPassword(*req.Password)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	updated, err := s.employeeRepo.Update(ctx, current)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee %s: %w", req.ID, err)
	}
	return employee.NewEmployeeResponse(updated), nil
}

// DeleteEmployee implements employee.Service. The card is released and the
// employee's check-ins, days off and room access go with them.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete employee %s: %w", id, err)
	}
	slog.Info("Employee deleted", "id", id)
	return nil
}

// ReplaceRooms implements employee.Service.
func (s *EmployeeServiceImpl) ReplaceRooms(ctx context.Context, req employee.ReplaceRoomsRequest) ([]employee.RoomSummary, error) {
	if err := s.roomRepo.ReplaceForEmployee(ctx, req.EmployeeID, req.RoomIDs); err != nil {
		return nil, fmt.Errorf("failed to replace rooms of employee %s: %w", req.EmployeeID, err)
	}

	rooms, err := s.roomRepo.List(ctx, room.Filter{EmployeeID: &req.EmployeeID})
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms of employee %s: %w", req.EmployeeID, err)
	}

	summaries := make([]employee.RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		summaries = append(summaries, employee.RoomSummary{ID: r.ID, Name: r.Name})
	}
	return summaries, nil
}
