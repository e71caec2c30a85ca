package checkin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/checkin"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/rfid"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/room"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/clock"
	"github.com/google/uuid"
)

type CheckinServiceImpl struct {
	checkinRepo checkin.Repository
	cardRepo    rfid.CardRepository
	machineRepo rfid.MachineRepository
	roomRepo    room.Repository
	feed        checkin.Feed
	clock       clock.Clock
}

func NewCheckinService(
	checkinRepo checkin.Repository,
	cardRepo rfid.CardRepository,
	machineRepo rfid.MachineRepository,
	roomRepo room.Repository,
	feed checkin.Feed,
	clk clock.Clock,
) checkin.Service {
	return &CheckinServiceImpl{
		checkinRepo: checkinRepo,
		cardRepo:    cardRepo,
		machineRepo: machineRepo,
		roomRepo:    roomRepo,
		feed:        feed,
		clock:       clk,
	}
}

// Record implements checkin.Service.
func (s *CheckinServiceImpl) Record(ctx context.Context, req checkin.RecordCheckinRequest) (checkin.CheckinResponse, error) {
	card, err := s.cardRepo.GetByID(ctx, req.CardID)
	if err != nil {
		if errors.Is(err, rfid.ErrCardNotFound) {
			return checkin.CheckinResponse{}, checkin.ErrUnknownCard
		}
		return checkin.CheckinResponse{}, fmt.Errorf("failed to get card %s: %w", req.CardID, err)
	}
	if card.EmployeeID == nil {
		return checkin.CheckinResponse{}, checkin.ErrUnassignedCard
	}

	machine, err := s.machineRepo.GetByID(ctx, req.MachineID)
	if err != nil {
		if errors.Is(err, rfid.ErrMachineNotFound) {
			return checkin.CheckinResponse{}, checkin.ErrUnknownMachine
		}
		return checkin.CheckinResponse{}, fmt.Errorf("failed to get machine %s: %w", req.MachineID, err)
	}

	if machine.RoomID != nil {
		allowed, err := s.roomRepo.HasAccess(ctx, *card.EmployeeID, *machine.RoomID)
		if err != nil {
			return checkin.CheckinResponse{}, fmt.Errorf("failed to check room access: %w", err)
		}
		if !allowed {
			slog.Warn("Checkin rejected", "card_id", card.ID, "employee_id", *card.EmployeeID, "room_id", *machine.RoomID)
			return checkin.CheckinResponse{}, checkin.ErrRoomAccessDenied
		}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return checkin.CheckinResponse{}, fmt.Errorf("failed to generate checkin id: %w", err)
	}

	event, err := s.checkinRepo.Create(ctx, checkin.Event{
		ID:           id.String(),
		EmployeeID:   *card.EmployeeID,
		CardID:       card.ID,
		MachineID:    machine.ID,
		RoomID:       machine.RoomID,
		AllowCheckin: machine.AllowCheckin,
		CreatedAt:    s.clock.Now(),
	})
	if err != nil {
		return checkin.CheckinResponse{}, fmt.Errorf("failed to record checkin: %w", err)
	}

	if s.feed != nil {
		s.feed.Publish(event)
	}
	return checkin.NewCheckinResponse(event), nil
}

// List implements checkin.Service.
func (s *CheckinServiceImpl) List(ctx context.Context, filter checkin.Filter) ([]checkin.CheckinResponse, error) {
	events, err := s.checkinRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkins: %w", err)
	}

	responses := make([]checkin.CheckinResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, checkin.NewCheckinResponse(e))
	}
	return responses, nil
}
