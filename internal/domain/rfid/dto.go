package rfid

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/validator"
)

type CreateMachineRequest struct {
	Name         *string `json:"name"`
	RoomID       *string `json:"room_id"`
	AllowCheckin bool    `json:"allow_checkin"`
}

func (r *CreateMachineRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
		if len(name) > 200 {
			errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 200 characters"})
		}
	}
	if r.RoomID != nil && validator.IsEmpty(*r.RoomID) {
		errs = append(errs, validator.ValidationError{Field: "room_id", Message: "room_id must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MachineFilter struct {
	RoomID *string
}

type MachineResponse struct {
	ID           string    `json:"id"`
	Name         *string   `json:"name"`
	RoomID       *string   `json:"room_id"`
	AllowCheckin bool      `json:"allow_checkin"`
	CreatedAt    time.Time `json:"date_created"`
}

func NewMachineResponse(m Machine) MachineResponse {
	return MachineResponse{
		ID:           m.ID,
		Name:         m.Name,
		RoomID:       m.RoomID,
		AllowCheckin: m.AllowCheckin,
		CreatedAt:    m.CreatedAt,
	}
}

type CreateCardRequest struct {
	ID         string  `json:"id"`
	EmployeeID *string `json:"employee_id"`
}

func (r *CreateCardRequest) Validate() error {
	var errs validator.ValidationErrors

	r.ID = strings.TrimSpace(r.ID)
	if !validator.IsValidCardID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id must be 4-100 letters or digits"})
	}
	if r.EmployeeID != nil && validator.IsEmpty(*r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AssignCardRequest struct {
	CardID     string `json:"-"`
	EmployeeID string `json:"employee_id"`
}

func (r *AssignCardRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CardID) {
		errs = append(errs, validator.ValidationError{Field: "card_id", Message: "card_id is required"})
	}
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CardFilter struct {
	AvailableOnly bool
}

type CardResponse struct {
	ID         string    `json:"id"`
	EmployeeID *string   `json:"employee_id"`
	CreatedAt  time.Time `json:"date_created"`
}

func NewCardResponse(c Card) CardResponse {
	return CardResponse{ID: c.ID, EmployeeID: c.EmployeeID, CreatedAt: c.CreatedAt}
}
