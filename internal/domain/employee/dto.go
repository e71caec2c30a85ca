package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	Username   string          `json:"username"`
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	Email      string          `json:"email"`
	Password   string          `json:"password"`
	Role       Role            `json:"role"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	RoomIDs    []string        `json:"room_ids"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))

	if !validator.IsValidUsername(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username must be 3-100 characters of letters, numbers, dots, underscores or hyphens",
		})
	}
	errs = append(errs, validateName("first_name", r.FirstName, true)...)
	errs = append(errs, validateName("last_name", r.LastName, false)...)

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters long",
		})
	} else if len(r.Password) > 72 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must not exceed 72 characters",
		})
	}

	if r.Role == "" {
		r.Role = RoleEmployee
	}
	if !r.Role.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be manager or employee",
		})
	}

	if r.HourlyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "hourly_rate",
			Message: "hourly_rate must not be negative",
		})
	}

	if validator.HasDuplicates(r.RoomIDs) {
		errs = append(errs, validator.ValidationError{
			Field:   "room_ids",
			Message: "room_ids must not contain duplicates",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateEmployeeRequest is a partial update. Nil fields are left unchanged.
type UpdateEmployeeRequest struct {
	ID         string           `json:"-"`
	FirstName  *string          `json:"first_name,omitempty"`
	LastName   *string          `json:"last_name,omitempty"`
	Email      *string          `json:"email,omitempty"`
	Password   *string          `json:"password,omitempty"`
	Role       *Role            `json:"role,omitempty"`
	HourlyRate *decimal.Decimal `json:"hourly_rate,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}

	if r.FirstName == nil && r.LastName == nil && r.Email == nil && r.Password == nil && r.Role == nil && r.HourlyRate == nil {
		return ErrNoFieldsToUpdate
	}

	if r.FirstName != nil {
		errs = append(errs, validateName("first_name", *r.FirstName, true)...)
	}
	if r.LastName != nil {
		errs = append(errs, validateName("last_name", *r.LastName, false)...)
	}
	if r.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*r.Email))
		r.Email = &email
		if !validator.IsValidEmail(email) {
			errs = append(errs, validator.ValidationError{Field: "email", Message: "email must be a valid email address"})
		}
	}
	if r.Password != nil && (len(*r.Password) < 8 || len(*r.Password) > 72) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be 8-72 characters long"})
	}
	if r.Role != nil && !r.Role.IsValid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be manager or employee"})
	}
	if r.HourlyRate != nil && r.HourlyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "hourly_rate must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReplaceRoomsRequest struct {
	EmployeeID string   `json:"-"`
	RoomIDs    []string `json:"room_ids"`
}

func (r *ReplaceRoomsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if validator.HasDuplicates(r.RoomIDs) {
		errs = append(errs, validator.ValidationError{Field: "room_ids", Message: "room_ids must not contain duplicates"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateName(field, value string, required bool) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if required && validator.IsEmpty(value) {
		errs = append(errs, validator.ValidationError{Field: field, Message: field + " is required"})
	}
	if len(value) > 30 {
		errs = append(errs, validator.ValidationError{Field: field, Message: field + " must not exceed 30 characters"})
	}
	return errs
}

type Filter struct {
	RoomID *string
}

type EmployeeResponse struct {
	ID         string          `json:"id"`
	Username   string          `json:"username"`
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	Email      string          `json:"email"`
	Role       Role            `json:"role"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	CreatedAt  time.Time       `json:"date_created"`
	UpdatedAt  time.Time       `json:"date_updated"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		Username:   e.Username,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		Role:       e.Role,
		HourlyRate: e.HourlyRate,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

type RoomSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CheckinSummary struct {
	ID           string    `json:"id"`
	CardID       string    `json:"card_id"`
	MachineID    string    `json:"rfid_machine_id"`
	RoomID       *string   `json:"room_id"`
	AllowCheckin bool      `json:"allow_checkin"`
	CreatedAt    time.Time `json:"date_created"`
}

type EmployeeDetailResponse struct {
	EmployeeResponse
	CardID   *string          `json:"card_id"`
	Rooms    []RoomSummary    `json:"allowed_rooms"`
	Checkins []CheckinSummary `json:"checkin_history"`
}
