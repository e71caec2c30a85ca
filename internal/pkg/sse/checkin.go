package sse

import "github.com/cmlabs-hris/rfid-attendance-go/internal/domain/checkin"

const CheckinEventName = "checkin"

// RoomTopic is the topic carrying check-ins recorded by readers of one room.
func RoomTopic(roomID string) string {
	return "room:" + roomID
}

// CheckinFeed publishes recorded check-ins on the hub.
type CheckinFeed struct {
	hub *Hub
}

func NewCheckinFeed(hub *Hub) *CheckinFeed {
	return &CheckinFeed{hub: hub}
}

// Publish implements checkin.Feed.
func (f *CheckinFeed) Publish(e checkin.Event) {
	event := Event{Name: CheckinEventName, Data: checkin.NewCheckinResponse(e)}
	f.hub.Publish(AllTopic, event)
	if e.RoomID != nil {
		f.hub.Publish(RoomTopic(*e.RoomID), event)
	}
}
