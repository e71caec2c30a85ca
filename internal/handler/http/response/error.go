package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/checkin"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/dayoff"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/rfid"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/room"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/workhour"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrUsernameExists):
		Conflict(w, "Username already taken")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrNoFieldsToUpdate):
		BadRequest(w, "No fields to update", nil)
	case errors.Is(err, employee.ErrCannotDeleteSelf):
		BadRequest(w, "You cannot delete your own account", nil)

	// Room domain errors
	case errors.Is(err, room.ErrRoomNotFound):
		NotFound(w, "Room not found")
	case errors.Is(err, room.ErrRoomNameEmpty):
		BadRequest(w, "Room name must not be empty", map[string]string{"name": "name is required"})

	// RFID domain errors
	case errors.Is(err, rfid.ErrMachineNotFound):
		NotFound(w, "RFID machine not found")
	case errors.Is(err, rfid.ErrCardNotFound):
		NotFound(w, "RFID card not found")
	case errors.Is(err, rfid.ErrCardExists):
		Conflict(w, "RFID card already registered")
	case errors.Is(err, rfid.ErrEmployeeHasCard):
		Conflict(w, "Employee already holds a card")

	// Check-in domain errors
	case errors.Is(err, checkin.ErrUnknownCard):
		BadRequest(w, "Unknown card", nil)
	case errors.Is(err, checkin.ErrUnassignedCard):
		BadRequest(w, "Card is not assigned to an employee", nil)
	case errors.Is(err, checkin.ErrUnknownMachine):
		BadRequest(w, "Unknown RFID machine", nil)
	case errors.Is(err, checkin.ErrRoomAccessDenied):
		Forbidden(w, "Employee is not allowed in this room")

	// Day-off domain errors
	case errors.Is(err, dayoff.ErrDayOffNotFound):
		NotFound(w, "Day off not found")
	case errors.Is(err, dayoff.ErrOverlap):
		Conflict(w, "Day off overlaps an existing day off")
	case errors.Is(err, dayoff.ErrInvalidDateRange):
		BadRequest(w, "end_date must not be before start_date", nil)
	case errors.Is(err, dayoff.ErrAlreadyApproved):
		Conflict(w, "Day off already approved")
	case errors.Is(err, dayoff.ErrApproverNotFound):
		NotFound(w, "Approver not found")
	case errors.Is(err, dayoff.ErrApproverNotManager):
		Forbidden(w, "Only managers can approve days off")

	// Work-hour and payroll errors
	case errors.Is(err, workhour.ErrInvalidRange):
		BadRequest(w, "Start and end must fall on the same day", nil)
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "end_date must not be before start_date", nil)
	case errors.Is(err, payroll.ErrNoRecipient):
		BadRequest(w, "Employee has no email address", nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
