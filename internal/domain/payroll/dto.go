package payroll

import (
	"time"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SalaryEmailRequest struct {
	EmployeeID string `json:"-"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

func (r *SalaryEmailRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Period parses the request range. Call after Validate.
func (r *SalaryEmailRequest) Period() (Period, error) {
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	if end.Before(start) {
		return Period{}, ErrInvalidPeriod
	}
	return Period{Start: start, End: end}, nil
}

// ParsePeriod validates and parses an inclusive YYYY-MM-DD range.
func ParsePeriod(startDate, endDate string) (Period, error) {
	var errs validator.ValidationErrors

	start, ok := validator.IsValidDate(startDate)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}
	end, ok := validator.IsValidDate(endDate)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}
	if len(errs) > 0 {
		return Period{}, errs
	}

	if end.Before(start) {
		return Period{}, ErrInvalidPeriod
	}
	return Period{Start: start, End: end}, nil
}

type PayslipResponse struct {
	EmployeeID      string          `json:"employee_id"`
	Email           string          `json:"email"`
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date"`
	TotalHours      float64         `json:"total_hours"`
	ExpectedHours   float64         `json:"expected_hours"`
	PunishmentHours float64         `json:"punishment_hours"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	SentAt          time.Time       `json:"sent_at"`
}

func NewPayslipResponse(e PayslipEvent) PayslipResponse {
	return PayslipResponse(e)
}

type BatchResponse struct {
	Sent    int      `json:"sent"`
	Skipped int      `json:"skipped"`
	Failed  []string `json:"failed_employee_ids"`
}
