package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/workhour"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/clock"
)

type PayrollServiceImpl struct {
	employeeRepo employee.Repository
	workHours    workhour.Service
	notifier     payroll.Notifier
	publisher    payroll.Publisher
	clock        clock.Clock
}

func NewPayrollService(
	employeeRepo employee.Repository,
	workHours workhour.Service,
	notifier payroll.Notifier,
	publisher payroll.Publisher,
	clk clock.Clock,
) payroll.Service {
	return &PayrollServiceImpl{
		employeeRepo: employeeRepo,
		workHours:    workHours,
		notifier:     notifier,
		publisher:    publisher,
		clock:        clk,
	}
}

// SendSalaryEmail implements payroll.Service.
func (s *PayrollServiceImpl) SendSalaryEmail(ctx context.Context, req payroll.SalaryEmailRequest) (payroll.PayslipResponse, error) {
	period, err := req.Period()
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.PayslipResponse{}, fmt.Errorf("failed to get employee %s: %w", req.EmployeeID, err)
	}

	summary, err := s.workHours.ComputeWorkSummary(ctx, emp.ID, &period.Start, &period.End)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	event, err := s.send(ctx, emp, period, summary)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	return payroll.NewPayslipResponse(event), nil
}

// SendSalaryEmails implements payroll.Service.
func (s *PayrollServiceImpl) SendSalaryEmails(ctx context.Context, period payroll.Period) (payroll.BatchResponse, error) {
	if period.End.Before(period.Start) {
		return payroll.BatchResponse{}, payroll.ErrInvalidPeriod
	}

	employees, err := s.employeeRepo.List(ctx, employee.Filter{})
	if err != nil {
		return payroll.BatchResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	result := payroll.BatchResponse{Failed: []string{}}
	for _, emp := range employees {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		summary, err := s.workHours.ComputeWorkSummary(ctx, emp.ID, &period.Start, &period.End)
		if err != nil {
			slog.Error("Failed to compute work summary", "employee_id", emp.ID, "error", err)
			result.Failed = append(result.Failed, emp.ID)
			continue
		}
		if !summary.PaidAmount.IsPositive() {
			result.Skipped++
			continue
		}

		if _, err := s.send(ctx, emp, period, summary); err != nil {
			slog.Error("Failed to send salary email", "employee_id", emp.ID, "error", err)
			result.Failed = append(result.Failed, emp.ID)
			continue
		}
		result.Sent++
	}

	slog.Info("Salary emails processed",
		"start_date", period.Start.Format("2006-01-02"),
		"end_date", period.End.Format("2006-01-02"),
		"sent", result.Sent,
		"skipped", result.Skipped,
		"failed", len(result.Failed),
	)
	return result, nil
}

// send mails the payslip and then announces it. A failed announcement is
// logged only; the email has already gone out.
func (s *PayrollServiceImpl) send(ctx context.Context, emp employee.Employee, period payroll.Period, summary workhour.Summary) (payroll.PayslipEvent, error) {
	if strings.TrimSpace(emp.Email) == "" {
		return payroll.PayslipEvent{}, payroll.ErrNoRecipient
	}

	if err := s.notifier.SendPayslip(ctx, emp.Email, emp.FullName(), summary); err != nil {
		return payroll.PayslipEvent{}, fmt.Errorf("failed to send payslip to %s: %w", emp.Email, err)
	}

	event := payroll.NewPayslipEvent(emp.Email, period, summary, s.clock.Now())
	if s.publisher != nil {
		if err := s.publisher.PublishPayslip(ctx, event); err != nil {
			slog.Error("Failed to publish payslip event", "employee_id", emp.ID, "error", err)
		}
	}
	return event, nil
}
