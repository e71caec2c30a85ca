package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/clock"
)

type PayrollJobs struct {
	payrollSvc payroll.Service
	clock      clock.Clock

	mu         sync.Mutex
	lastPeriod time.Time
}

func NewPayrollJobs(payrollSvc payroll.Service, clk clock.Clock) *PayrollJobs {
	return &PayrollJobs{
		payrollSvc: payrollSvc,
		clock:      clk,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJobWithTimeout("send_salary_emails", interval, 30*time.Minute, j.SendMonthlySalaryEmails)
}

// SendMonthlySalaryEmails mails last month's payslips. It only acts on the
// first day of the month and at most once per period for this process.
func (j *PayrollJobs) SendMonthlySalaryEmails(ctx context.Context) error {
	now := j.clock.Now()
	if now.Day() != 1 {
		return nil
	}

	period := payroll.PreviousMonth(now)

	j.mu.Lock()
	if j.lastPeriod.Equal(period.Start) {
		j.mu.Unlock()
		return nil
	}
	j.lastPeriod = period.Start
	j.mu.Unlock()

	slog.Info("Cron: Starting monthly salary emails", "start_date", period.Start.Format("2006-01-02"))

	result, err := j.payrollSvc.SendSalaryEmails(ctx, period)
	if err != nil {
		j.mu.Lock()
		j.lastPeriod = time.Time{}
		j.mu.Unlock()
		return fmt.Errorf("failed to send salary emails: %w", err)
	}

	if len(result.Failed) > 0 {
		slog.Warn("Cron: Some salary emails failed", "failed_employee_ids", result.Failed)
	}
	return nil
}
