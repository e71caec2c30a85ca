package workhour

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/checkin"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/dayoff"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/workhour"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/clock"
)

type WorkHourService struct {
	employeeRepo employee.Repository
	checkinRepo  checkin.Repository
	dayOffRepo   dayoff.Repository
	schedule     workhour.Schedule
	clock        clock.Clock
}

func NewWorkHourService(
	employeeRepo employee.Repository,
	checkinRepo checkin.Repository,
	dayOffRepo dayoff.Repository,
	schedule workhour.Schedule,
	clk clock.Clock,
) *WorkHourService {
	return &WorkHourService{
		employeeRepo: employeeRepo,
		checkinRepo:  checkinRepo,
		dayOffRepo:   dayOffRepo,
		schedule:     schedule,
		clock:        clk,
	}
}

// ComputeWorkSummary implements workhour.Service.
func (s *WorkHourService) ComputeWorkSummary(ctx context.Context, employeeID string, startDate, endDate *time.Time) (workhour.Summary, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return workhour.Summary{}, fmt.Errorf("failed to get employee %s: %w", employeeID, err)
	}

	events, err := s.checkinRepo.ListByEmployee(ctx, emp.ID)
	if err != nil {
		return workhour.Summary{}, fmt.Errorf("failed to list checkins of employee %s: %w", emp.ID, err)
	}

	daysOff, err := s.dayOffRepo.ListByEmployee(ctx, emp.ID)
	if err != nil {
		return workhour.Summary{}, fmt.Errorf("failed to list days off of employee %s: %w", emp.ID, err)
	}

	summary, err := s.schedule.Summarize(workhour.SummaryInput{
		EmployeeID: emp.ID,
		HourlyRate: emp.HourlyRate,
		StartDate:  startDate,
		EndDate:    endDate,
		Now:        s.clock.Now(),
		Location:   s.clock.Location(),
		Checkins:   checkin.Timestamps(events),
		DaysOff:    daysOff,
	})
	if err != nil {
		return workhour.Summary{}, fmt.Errorf("failed to summarize work hours of employee %s: %w", emp.ID, err)
	}

	return summary, nil
}
