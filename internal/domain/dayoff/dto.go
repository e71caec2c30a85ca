package dayoff

import (
	"time"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/utils"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/validator"
)

type CreateDayOffRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason"`
	Type       Type   `json:"type"`
}

func (r *CreateDayOffRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	errs = append(errs, validateDayOffFields(r.StartDate, r.EndDate, r.Reason, r.Type)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Dates parses the request range. Call after Validate.
func (r *CreateDayOffRequest) Dates() (time.Time, time.Time, error) {
	return parseRange(r.StartDate, r.EndDate)
}

type UpdateDayOffRequest struct {
	ID        string `json:"-"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
	Type      Type   `json:"type"`
}

func (r *UpdateDayOffRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	errs = append(errs, validateDayOffFields(r.StartDate, r.EndDate, r.Reason, r.Type)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Dates parses the request range. Call after Validate.
func (r *UpdateDayOffRequest) Dates() (time.Time, time.Time, error) {
	return parseRange(r.StartDate, r.EndDate)
}

func validateDayOffFields(startDate, endDate, reason string, t Type) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(startDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	if _, ok := validator.IsValidDate(endDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if validator.IsEmpty(reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}
	if len(reason) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 500 characters",
		})
	}
	if !t.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be paid or unpaid",
		})
	}

	return errs
}

func parseRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := utils.ParseDate(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := utils.ParseDate(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return start, end, nil
}

type Filter struct {
	EmployeeID *string
	Approved   *bool
}

type DayOffResponse struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employee_id"`
	StartDate  string     `json:"start_date"`
	EndDate    string     `json:"end_date"`
	Reason     string     `json:"reason"`
	Type       Type       `json:"type"`
	Approved   bool       `json:"approved"`
	ApprovedBy *string    `json:"approved_by_id,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	CreatedAt  time.Time  `json:"date_created"`
}

func NewDayOffResponse(d DayOff) DayOffResponse {
	return DayOffResponse{
		ID:         d.ID,
		EmployeeID: d.EmployeeID,
		StartDate:  utils.FormatDate(d.StartDate),
		EndDate:    utils.FormatDate(d.EndDate),
		Reason:     d.Reason,
		Type:       d.Type,
		Approved:   d.IsApproved(),
		ApprovedBy: d.ApprovedBy,
		ApprovedAt: d.ApprovedAt,
		CreatedAt:  d.CreatedAt,
	}
}
