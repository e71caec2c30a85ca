package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/checkin"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/employee"
)

type employeeRepository struct {
	s *Store
}

func (r employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	defer r.s.lockWrite(ctx)()

	for _, existing := range r.s.data.employees {
		if existing.Username == e.Username {
			return employee.Employee{}, employee.ErrUsernameExists
		}
		if strings.EqualFold(existing.Email, e.Email) {
			return employee.Employee{}, employee.ErrEmailExists
		}
	}

	now := r.s.now()
	e.CreatedAt, e.UpdatedAt = now, now
	r.s.data.employees[e.ID] = e
	return e, nil
}

func (r employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.data.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r employeeRepository) GetByUsername(ctx context.Context, username string) (employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, e := range r.s.data.employees {
		if e.Username == username {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r employeeRepository) List(ctx context.Context, filter employee.Filter) ([]employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []employee.Employee{}
	for _, e := range r.s.data.employees {
		if filter.RoomID != nil {
			if _, ok := r.s.data.roomEmployees[*filter.RoomID][e.ID]; !ok {
				continue
			}
		}
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b employee.Employee) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (r employeeRepository) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	defer r.s.lockWrite(ctx)()

	current, ok := r.s.data.employees[e.ID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	for _, existing := range r.s.data.employees {
		if existing.ID != e.ID && strings.EqualFold(existing.Email, e.Email) {
			return employee.Employee{}, employee.ErrEmailExists
		}
	}

	e.Username = current.Username
	e.CreatedAt = current.CreatedAt
	e.UpdatedAt = r.s.now()
	r.s.data.employees[e.ID] = e
	return e, nil
}

func (r employeeRepository) Delete(ctx context.Context, id string) error {
	defer r.s.lockWrite(ctx)()

	if _, ok := r.s.data.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(r.s.data.employees, id)

	for _, members := range r.s.data.roomEmployees {
		delete(members, id)
	}
	for cardID, c := range r.s.data.cards {
		if c.EmployeeID != nil && *c.EmployeeID == id {
			c.EmployeeID = nil
			r.s.data.cards[cardID] = c
		}
	}
	r.s.data.checkins = slices.DeleteFunc(r.s.data.checkins, func(e checkin.Event) bool {
		return e.EmployeeID == id
	})
	for dayOffID, d := range r.s.data.daysOff {
		if d.EmployeeID == id {
			delete(r.s.data.daysOff, dayOffID)
		} else if d.ApprovedBy != nil && *d.ApprovedBy == id {
			d.ApprovedBy = nil
			r.s.data.daysOff[dayOffID] = d
		}
	}
	return nil
}

// LockForUpdate only checks existence. Writers are already serialized by
// Store.WithinTransaction.
func (r employeeRepository) LockForUpdate(ctx context.Context, id string) error {
	_, err := r.GetByID(ctx, id)
	return err
}
