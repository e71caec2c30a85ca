package checkin

import "time"

// Event is one card tap on a reader. Events are append-only.
type Event struct {
	ID           string
	EmployeeID   string
	CardID       string
	MachineID    string
	RoomID       *string
	AllowCheckin bool
	CreatedAt    time.Time
}

// Timestamps returns the CreatedAt of every event, in order.
func Timestamps(events []Event) []time.Time {
	out := make([]time.Time, len(events))
	for i, e := range events {
		out[i] = e.CreatedAt
	}
	return out
}
