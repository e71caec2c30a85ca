package rfid

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/rfid"
	"github.com/google/uuid"
)

type MachineServiceImpl struct {
	machineRepo rfid.MachineRepository
}

func NewMachineService(machineRepo rfid.MachineRepository) rfid.MachineService {
	return &MachineServiceImpl{machineRepo: machineRepo}
}

// CreateMachine implements rfid.MachineService.
func (s *MachineServiceImpl) CreateMachine(ctx context.Context, req rfid.CreateMachineRequest) (rfid.MachineResponse, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return rfid.MachineResponse{}, fmt.Errorf("failed to generate machine id: %w", err)
	}

	created, err := s.machineRepo.Create(ctx, rfid.Machine{
		ID:           id.String(),
		Name:         req.Name,
		RoomID:       req.RoomID,
		AllowCheckin: req.AllowCheckin,
	})
	if err != nil {
		return rfid.MachineResponse{}, fmt.Errorf("failed to create machine: %w", err)
	}

	slog.Info("RFID machine registered", "id", created.ID, "room_id", created.RoomID)
	return rfid.NewMachineResponse(created), nil
}

// ListMachines implements rfid.MachineService.
func (s *MachineServiceImpl) ListMachines(ctx context.Context, filter rfid.MachineFilter) ([]rfid.MachineResponse, error) {
	machines, err := s.machineRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}

	responses := make([]rfid.MachineResponse, 0, len(machines))
	for _, m := range machines {
		responses = append(responses, rfid.NewMachineResponse(m))
	}
	return responses, nil
}

// DeleteMachine implements rfid.MachineService.
func (s *MachineServiceImpl) DeleteMachine(ctx context.Context, id string) error {
	if err := s.machineRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete machine %s: %w", id, err)
	}
	return nil
}

type CardServiceImpl struct {
	cardRepo rfid.CardRepository
}

func NewCardService(cardRepo rfid.CardRepository) rfid.CardService {
	return &CardServiceImpl{cardRepo: cardRepo}
}

// CreateCard implements rfid.CardService.
func (s *CardServiceImpl) CreateCard(ctx context.Context, req rfid.CreateCardRequest) (rfid.CardResponse, error) {
	created, err := s.cardRepo.Create(ctx, rfid.Card{ID: req.ID, EmployeeID: req.EmployeeID})
	if err != nil {
		return rfid.CardResponse{}, fmt.Errorf("failed to create card: %w", err)
	}
	return rfid.NewCardResponse(created), nil
}

// ListCards implements rfid.CardService.
func (s *CardServiceImpl) ListCards(ctx context.Context, filter rfid.CardFilter) ([]rfid.CardResponse, error) {
	cards, err := s.cardRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	responses := make([]rfid.CardResponse, 0, len(cards))
	for _, c := range cards {
		responses = append(responses, rfid.NewCardResponse(c))
	}
	return responses, nil
}

// AssignCard implements rfid.CardService.
func (s *CardServiceImpl) AssignCard(ctx context.Context, req rfid.AssignCardRequest) (rfid.CardResponse, error) {
	card, err := s.cardRepo.AssignEmployee(ctx, req.CardID, req.EmployeeID)
	if err != nil {
		return rfid.CardResponse{}, fmt.Errorf("failed to assign card %s: %w", req.CardID, err)
	}

	slog.Info("RFID card assigned", "card_id", card.ID, "employee_id", req.EmployeeID)
	return rfid.NewCardResponse(card), nil
}

// DeleteCard implements rfid.CardService.
func (s *CardServiceImpl) DeleteCard(ctx context.Context, id string) error {
	if err := s.cardRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete card %s: %w", id, err)
	}
	return nil
}
