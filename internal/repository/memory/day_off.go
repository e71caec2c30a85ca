package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/dayoff"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/employee"
)

type dayOffRepository struct {
	s *Store
}

func (r dayOffRepository) Create(ctx context.Context, d dayoff.DayOff) (dayoff.DayOff, error) {
	defer r.s.lockWrite(ctx)()

	if _, ok := r.s.data.employees[d.EmployeeID]; !ok {
		return dayoff.DayOff{}, employee.ErrEmployeeNotFound
	}
	now := r.s.now()
	d.CreatedAt, d.UpdatedAt = now, now
	r.s.data.daysOff[d.ID] = d
	return d, nil
}

func (r dayOffRepository) GetByID(ctx context.Context, id string) (dayoff.DayOff, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	d, ok := r.s.data.daysOff[id]
	if !ok {
		return dayoff.DayOff{}, dayoff.ErrDayOffNotFound
	}
	return d, nil
}

func (r dayOffRepository) ListByEmployee(ctx context.Context, employeeID string) ([]dayoff.DayOff, error) {
	return r.List(ctx, dayoff.Filter{EmployeeID: &employeeID})
}

func (r dayOffRepository) List(ctx context.Context, filter dayoff.Filter) ([]dayoff.DayOff, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []dayoff.DayOff{}
	for _, d := range r.s.data.daysOff {
		if filter.EmployeeID != nil && d.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Approved != nil && d.IsApproved() != *filter.Approved {
			continue
		}
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b dayoff.DayOff) int {
		if c := a.StartDate.Compare(b.StartDate); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (r dayOffRepository) Update(ctx context.Context, d dayoff.DayOff) (dayoff.DayOff, error) {
	defer r.s.lockWrite(ctx)()

	current, ok := r.s.data.daysOff[d.ID]
	if !ok {
		return dayoff.DayOff{}, dayoff.ErrDayOffNotFound
	}
	d.EmployeeID = current.EmployeeID
	d.CreatedAt = current.CreatedAt
	d.UpdatedAt = r.s.now()
	r.s.data.daysOff[d.ID] = d
	return d, nil
}

func (r dayOffRepository) Delete(ctx context.Context, id string) error {
	defer r.s.lockWrite(ctx)()

	if _, ok := r.s.data.daysOff[id]; !ok {
		return dayoff.ErrDayOffNotFound
	}
	delete(r.s.data.daysOff, id)
	return nil
}
