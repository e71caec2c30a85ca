package dayoff

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/dayoff"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
)

type DayOffService struct {
	transactor   database.Transactor
	dayOffRepo   dayoff.Repository
	employeeRepo employee.Repository
	notifier     dayoff.Notifier
	clock        clock.Clock
}

func NewDayOffService(
	transactor database.Transactor,
	dayOffRepo dayoff.Repository,
	employeeRepo employee.Repository,
	notifier dayoff.Notifier,
	clk clock.Clock,
) *DayOffService {
	return &DayOffService{
		transactor:   transactor,
		dayOffRepo:   dayOffRepo,
		employeeRepo: employeeRepo,
		notifier:     notifier,
		clock:        clk,
	}
}

// RequestDayOff implements dayoff.Service. The employee row is locked while
// the overlap check and insert run, so two concurrent requests for the same
// employee cannot both pass the check.
func (s *DayOffService) RequestDayOff(ctx context.Context, req dayoff.CreateDayOffRequest) (dayoff.DayOff, error) {
	start, end, err := req.Dates()
	if err != nil {
		return dayoff.DayOff{}, err
	}

	var created dayoff.DayOff
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.employeeRepo.LockForUpdate(ctx, req.EmployeeID); err != nil {
			return fmt.Errorf("failed to lock employee %s: %w", req.EmployeeID, err)
		}

		existing, err := s.dayOffRepo.ListByEmployee(ctx, req.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to list days off: %w", err)
		}
		if conflict := dayoff.FindConflict(existing, start, end, ""); conflict != nil {
			return fmt.Errorf("%w: conflicts with %s", dayoff.ErrOverlap, conflict.ID)
		}

		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate day off id: %w", err)
		}

		created, err = s.dayOffRepo.Create(ctx, dayoff.DayOff{
			ID:         id.String(),
			EmployeeID: req.EmployeeID,
			StartDate:  start,
			EndDate:    end,
			Reason:     req.Reason,
			Type:       req.Type,
		})
		if err != nil {
			return fmt.Errorf("failed to create day off: %w", err)
		}
		return nil
	})
	if err != nil {
		return dayoff.DayOff{}, err
	}

	slog.Info("Day off requested", "id", created.ID, "employee_id", created.EmployeeID,
		"start_date", req.StartDate, "end_date", req.EndDate)
	return created, nil
}

// UpdateDayOff implements dayoff.Service. Approval state is kept.
func (s *DayOffService) UpdateDayOff(ctx context.Context, req dayoff.UpdateDayOffRequest) (dayoff.DayOff, error) {
	start, end, err := req.Dates()
	if err != nil {
		return dayoff.DayOff{}, err
	}

	var updated dayoff.DayOff
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.dayOffRepo.GetByID(ctx, req.ID)
		if err != nil {
			return fmt.Errorf("failed to get day off %s: %w", req.ID, err)
		}

		if err := s.employeeRepo.LockForUpdate(ctx, current.EmployeeID); err != nil {
			return fmt.Errorf("failed to lock employee %s: %w", current.EmployeeID, err)
		}
		if current, err = s.dayOffRepo.GetByID(ctx, req.ID); err != nil {
			return fmt.Errorf("failed to get day off %s: %w", req.ID, err)
		}

		existing, err := s.dayOffRepo.ListByEmployee(ctx, current.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to list days off: %w", err)
		}
		if conflict := dayoff.FindConflict(existing, start, end, current.ID); conflict != nil {
			return fmt.Errorf("%w: conflicts with %s", dayoff.ErrOverlap, conflict.ID)
		}

		current.StartDate = start
		current.EndDate = end
		current.Reason = req.Reason
		current.Type = req.Type

		updated, err = s.dayOffRepo.Update(ctx, current)
		if err != nil {
			return fmt.Errorf("failed to update day off %s: %w", req.ID, err)
		}
		return nil
	})
	if err != nil {
		return dayoff.DayOff{}, err
	}

	return updated, nil
}

// ApproveDayOff implements dayoff.Service.
func (s *DayOffService) ApproveDayOff(ctx context.Context, id string, approverID string) (dayoff.DayOff, error) {
	approver, err := s.employeeRepo.GetByID(ctx, approverID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return dayoff.DayOff{}, dayoff.ErrApproverNotFound
		}
		return dayoff.DayOff{}, fmt.Errorf("failed to get approver %s: %w", approverID, err)
	}
	if !approver.IsManager() {
		return dayoff.DayOff{}, dayoff.ErrApproverNotManager
	}

	record, err := s.dayOffRepo.GetByID(ctx, id)
	if err != nil {
		return dayoff.DayOff{}, fmt.Errorf("failed to get day off %s: %w", id, err)
	}

	var approved dayoff.DayOff
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.employeeRepo.LockForUpdate(ctx, record.EmployeeID); err != nil {
			return fmt.Errorf("failed to lock employee %s: %w", record.EmployeeID, err)
		}

		// Re-read under the lock so a concurrent correction is not overwritten.
		current, err := s.dayOffRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get day off %s: %w", id, err)
		}
		if current.IsApproved() {
			return dayoff.ErrAlreadyApproved
		}

		approvedAt := s.clock.Now()
		current.ApprovedBy = &approver.ID
		current.ApprovedAt = &approvedAt

		approved, err = s.dayOffRepo.Update(ctx, current)
		if err != nil {
			return fmt.Errorf("failed to approve day off %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return dayoff.DayOff{}, err
	}

	s.notifyApproved(ctx, approved)

	return approved, nil
}

// notifyApproved mails the employee. Failures are logged only; the approval
// is already committed.
func (s *DayOffService) notifyApproved(ctx context.Context, d dayoff.DayOff) {
	if s.notifier == nil {
		return
	}
	emp, err := s.employeeRepo.GetByID(ctx, d.EmployeeID)
	if err != nil {
		slog.Error("Failed to load employee for day off email", "day_off_id", d.ID, "error", err)
		return
	}
	if err := s.notifier.SendDayOffApproved(ctx, emp.Email, emp.FullName(), d); err != nil {
		slog.Error("Failed to send day off approval email", "day_off_id", d.ID, "employee_id", emp.ID, "error", err)
	}
}

// DeleteDayOff implements dayoff.Service.
func (s *DayOffService) DeleteDayOff(ctx context.Context, id string) (dayoff.DayOff, error) {
	record, err := s.dayOffRepo.GetByID(ctx, id)
	if err != nil {
		return dayoff.DayOff{}, fmt.Errorf("failed to get day off %s: %w", id, err)
	}
	if err := s.dayOffRepo.Delete(ctx, id); err != nil {
		return dayoff.DayOff{}, fmt.Errorf("failed to delete day off %s: %w", id, err)
	}
	return record, nil
}

// GetDayOff implements dayoff.Service.
func (s *DayOffService) GetDayOff(ctx context.Context, id string) (dayoff.DayOff, error) {
	return s.dayOffRepo.GetByID(ctx, id)
}

// ListDaysOff implements dayoff.Service.
func (s *DayOffService) ListDaysOff(ctx context.Context, filter dayoff.Filter) ([]dayoff.DayOff, error) {
	records, err := s.dayOffRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list days off: %w", err)
	}
	return records, nil
}

var _ dayoff.Service = (*DayOffService)(nil)
