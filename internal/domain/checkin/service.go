package checkin

import "context"

type Service interface {
	// Record resolves the card and the reader, checks room access and
	// stores the event stamped with the current time.
	Record(ctx context.Context, req RecordCheckinRequest) (CheckinResponse, error)
	List(ctx context.Context, filter Filter) ([]CheckinResponse, error)
}

// Feed receives every recorded event for live subscribers.
type Feed interface {
	Publish(e Event)
}
