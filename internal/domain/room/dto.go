package room

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/validator"
)

type CreateRoomRequest struct {
	Name string `json:"name"`
}

func (r *CreateRoomRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return ErrRoomNameEmpty
	}
	if len(r.Name) > 200 {
		return validator.ValidationErrors{{Field: "name", Message: "name must not exceed 200 characters"}}
	}
	return nil
}

type ReplaceEmployeesRequest struct {
	RoomID      string   `json:"-"`
	EmployeeIDs []string `json:"employee_ids"`
}

func (r *ReplaceEmployeesRequest) Validate() error {
	return validateReplace(r.RoomID, "employee_ids", r.EmployeeIDs)
}

type ReplaceMachinesRequest struct {
	RoomID     string   `json:"-"`
	MachineIDs []string `json:"rfid_machine_ids"`
}

func (r *ReplaceMachinesRequest) Validate() error {
	return validateReplace(r.RoomID, "rfid_machine_ids", r.MachineIDs)
}

func validateReplace(roomID, field string, ids []string) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(roomID) {
		errs = append(errs, validator.ValidationError{Field: "room_id", Message: "room_id is required"})
	}
	if validator.HasDuplicates(ids) {
		errs = append(errs, validator.ValidationError{Field: field, Message: field + " must not contain duplicates"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type Filter struct {
	EmployeeID *string
}

type RoomResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"date_created"`
}

func NewRoomResponse(r Room) RoomResponse {
	return RoomResponse{ID: r.ID, Name: r.Name, CreatedAt: r.CreatedAt}
}
