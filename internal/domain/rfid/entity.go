package rfid

import "time"

// Machine is an RFID reader, optionally installed in a room.
type Machine struct {
	ID           string
	Name         *string
	RoomID       *string
	AllowCheckin bool
	CreatedAt    time.Time
}

// Card is an RFID card identified by its printed UID.
type Card struct {
	ID         string
	EmployeeID *string
	CreatedAt  time.Time
}

func (c Card) IsAvailable() bool {
	return c.EmployeeID == nil
}
