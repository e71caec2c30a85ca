package memory

import (
	"context"
	"slices"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/checkin"
)

type checkinRepository struct {
	s *Store
}

func (r checkinRepository) Create(ctx context.Context, e checkin.Event) (checkin.Event, error) {
	defer r.s.lockWrite(ctx)()

	r.s.data.checkins = append(r.s.data.checkins, e)
	return e, nil
}

func (r checkinRepository) ListByEmployee(ctx context.Context, employeeID string) ([]checkin.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []checkin.Event{}
	for _, e := range r.s.data.checkins {
		if e.EmployeeID == employeeID {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b checkin.Event) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

func (r checkinRepository) List(ctx context.Context, filter checkin.Filter) ([]checkin.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []checkin.Event{}
	for _, e := range r.s.data.checkins {
		if filter.Matches(e) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b checkin.Event) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}
