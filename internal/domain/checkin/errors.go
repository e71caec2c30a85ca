package checkin

import "errors"

var (
	ErrUnknownCard      = errors.New("card is not registered")
	ErrUnassignedCard   = errors.New("card is not assigned to an employee")
	ErrUnknownMachine   = errors.New("rfid machine is not registered")
	ErrRoomAccessDenied = errors.New("employee is not allowed in this room")
)
