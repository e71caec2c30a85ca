package checkin

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/validator"
)

type RecordCheckinRequest struct {
	CardID    string `json:"card_id"`
	MachineID string `json:"rfid_machine_id"`
}

func (r *RecordCheckinRequest) Validate() error {
	var errs validator.ValidationErrors

	r.CardID = strings.TrimSpace(r.CardID)
	if validator.IsEmpty(r.CardID) {
		errs = append(errs, validator.ValidationError{Field: "card_id", Message: "card_id is required"})
	}
	if validator.IsEmpty(r.MachineID) {
		errs = append(errs, validator.ValidationError{Field: "rfid_machine_id", Message: "rfid_machine_id is required"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type Filter struct {
	RoomID     *string
	MachineID  *string
	EmployeeID *string
	CardID     *string
}

// Matches reports whether e satisfies every set field of f.
func (f Filter) Matches(e Event) bool {
	if f.RoomID != nil && (e.RoomID == nil || *e.RoomID != *f.RoomID) {
		return false
	}
	if f.MachineID != nil && e.MachineID != *f.MachineID {
		return false
	}
	if f.EmployeeID != nil && e.EmployeeID != *f.EmployeeID {
		return false
	}
	if f.CardID != nil && e.CardID != *f.CardID {
		return false
	}
	return true
}

type CheckinResponse struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	CardID       string    `json:"card_id"`
	MachineID    string    `json:"rfid_machine_id"`
	RoomID       *string   `json:"room_id"`
	AllowCheckin bool      `json:"allow_checkin"`
	CreatedAt    time.Time `json:"date_created"`
}

func NewCheckinResponse(e Event) CheckinResponse {
	return CheckinResponse{
		ID:           e.ID,
		EmployeeID:   e.EmployeeID,
		CardID:       e.CardID,
		MachineID:    e.MachineID,
		RoomID:       e.RoomID,
		AllowCheckin: e.AllowCheckin,
		CreatedAt:    e.CreatedAt,
	}
}
