package workhour

import (
	"time"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/dayoff"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/utils"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type WorkDaysRequest struct {
	EmployeeID string
	StartDate  string
	EndDate    string
}

func (r *WorkDaysRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.StartDate != "" {
		if _, ok := validator.IsValidDate(r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.EndDate != "" {
		if _, ok := validator.IsValidDate(r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Bounds returns the optional range. Call after Validate.
func (r *WorkDaysRequest) Bounds() (startDate, endDate *time.Time) {
	if d, ok := validator.IsValidDate(r.StartDate); ok {
		startDate = &d
	}
	if d, ok := validator.IsValidDate(r.EndDate); ok {
		endDate = &d
	}
	return startDate, endDate
}

type WorkDayResponse struct {
	Date       string                 `json:"date"`
	StartTime  time.Time              `json:"start_time"`
	EndTime    time.Time              `json:"end_time"`
	TotalHours float64                `json:"total_hours"`
	DayOff     *dayoff.DayOffResponse `json:"day_off"`
}

type WorkDaysResponse struct {
	EmployeeID      string            `json:"employee_id"`
	StartDate       *string           `json:"start_date"`
	EndDate         *string           `json:"end_date"`
	WorkDays        []WorkDayResponse `json:"work_days"`
	TotalHours      float64           `json:"total_hours"`
	ExpectedHours   float64           `json:"expected_hours"`
	PunishmentHours float64           `json:"punishment_hours"`
	PaidAmount      decimal.Decimal   `json:"paid_amount"`
}

func NewWorkDaysResponse(s Summary) WorkDaysResponse {
	days := make([]WorkDayResponse, 0, len(s.WorkDays))
	for _, wd := range s.WorkDays {
		day := WorkDayResponse{
			Date:       utils.FormatDate(wd.Date),
			StartTime:  wd.StartTime,
			EndTime:    wd.EndTime,
			TotalHours: wd.Hours,
		}
		if wd.DayOff != nil {
			resp := dayoff.NewDayOffResponse(*wd.DayOff)
			day.DayOff = &resp
		}
		days = append(days, day)
	}

	return WorkDaysResponse{
		EmployeeID:      s.EmployeeID,
		StartDate:       utils.FormatDatePtr(s.StartDate),
		EndDate:         utils.FormatDatePtr(s.EndDate),
		WorkDays:        days,
		TotalHours:      s.TotalHours,
		ExpectedHours:   s.ExpectedHours,
		PunishmentHours: s.PunishmentHours,
		PaidAmount:      s.PaidAmount,
	}
}
