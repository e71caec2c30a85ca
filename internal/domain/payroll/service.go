package payroll

import (
	"context"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/workhour"
)

type Service interface {
	// SendSalaryEmail computes one employee's summary for the period and
	// mails it, whatever the amount.
	SendSalaryEmail(ctx context.Context, req SalaryEmailRequest) (PayslipResponse, error)

	// SendSalaryEmails mails every employee whose paid amount for the period
	// is positive. Per-employee failures are collected, not fatal.
	SendSalaryEmails(ctx context.Context, period Period) (BatchResponse, error)
}

// Notifier delivers a payslip to a person.
type Notifier interface {
	SendPayslip(ctx context.Context, to, name string, summary workhour.Summary) error
}

// Publisher announces sent payslips to other systems.
type Publisher interface {
	PublishPayslip(ctx context.Context, event PayslipEvent) error
}
