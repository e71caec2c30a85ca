package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/rfid"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/room"
)

type machineRepository struct {
	s *Store
}

func (r machineRepository) Create(ctx context.Context, m rfid.Machine) (rfid.Machine, error) {
	defer r.s.lockWrite(ctx)()

	if m.RoomID != nil {
		if _, ok := r.s.data.rooms[*m.RoomID]; !ok {
			return rfid.Machine{}, room.ErrRoomNotFound
		}
	}
	m.CreatedAt = r.s.now()
	r.s.data.machines[m.ID] = m
	return m, nil
}

func (r machineRepository) GetByID(ctx context.Context, id string) (rfid.Machine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.data.machines[id]
	if !ok {
		return rfid.Machine{}, rfid.ErrMachineNotFound
	}
	return m, nil
}

func (r machineRepository) List(ctx context.Context, filter rfid.MachineFilter) ([]rfid.Machine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []rfid.Machine{}
	for _, m := range r.s.data.machines {
		if filter.RoomID != nil && (m.RoomID == nil || *m.RoomID != *filter.RoomID) {
			continue
		}
		out = append(out, m)
	}
	slices.SortFunc(out, func(a, b rfid.Machine) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (r machineRepository) Delete(ctx context.Context, id string) error {
	defer r.s.lockWrite(ctx)()

	if _, ok := r.s.data.machines[id]; !ok {
		return rfid.ErrMachineNotFound
	}
	delete(r.s.data.machines, id)
	return nil
}

func (r machineRepository) ReplaceForRoom(ctx context.Context, roomID string, machineIDs []string) error {
	defer r.s.lockWrite(ctx)()

	if _, ok := r.s.data.rooms[roomID]; !ok {
		return room.ErrRoomNotFound
	}
	for _, id := range machineIDs {
		if _, ok := r.s.data.machines[id]; !ok {
			return rfid.ErrMachineNotFound
		}
	}

	for id, m := range r.s.data.machines {
		if m.RoomID != nil && *m.RoomID == roomID {
			m.RoomID = nil
			r.s.data.machines[id] = m
		}
	}
	for _, id := range machineIDs {
		m := r.s.data.machines[id]
		rid := roomID
		m.RoomID = &rid
		r.s.data.machines[id] = m
	}
	return nil
}

type cardRepository struct {
	s *Store
}

func (r cardRepository) Create(ctx context.Context, c rfid.Card) (rfid.Card, error) {
	defer r.s.lockWrite(ctx)()

	if _, ok := r.s.data.cards[c.ID]; ok {
		return rfid.Card{}, rfid.ErrCardExists
	}
	if c.EmployeeID != nil {
		if err := r.checkHolder(*c.EmployeeID); err != nil {
			return rfid.Card{}, err
		}
	}
	c.CreatedAt = r.s.now()
	r.s.data.cards[c.ID] = c
	return c, nil
}

// checkHolder verifies employeeID exists and holds no card. Caller holds mu.
func (r cardRepository) checkHolder(employeeID string) error {
	if _, ok := r.s.data.employees[employeeID]; !ok {
		return employee.ErrEmployeeNotFound
	}
	for _, c := range r.s.data.cards {
		if c.EmployeeID != nil && *c.EmployeeID == employeeID {
			return rfid.ErrEmployeeHasCard
		}
	}
	return nil
}

func (r cardRepository) GetByID(ctx context.Context, id string) (rfid.Card, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.data.cards[id]
	if !ok {
		return rfid.Card{}, rfid.ErrCardNotFound
	}
	return c, nil
}

func (r cardRepository) GetByEmployeeID(ctx context.Context, employeeID string) (rfid.Card, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.data.cards {
		if c.EmployeeID != nil && *c.EmployeeID == employeeID {
			return c, nil
		}
	}
	return rfid.Card{}, rfid.ErrCardNotFound
}

func (r cardRepository) List(ctx context.Context, filter rfid.CardFilter) ([]rfid.Card, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []rfid.Card{}
	for _, c := range r.s.data.cards {
		if filter.AvailableOnly && !c.IsAvailable() {
			continue
		}
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b rfid.Card) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (r cardRepository) AssignEmployee(ctx context.Context, cardID string, employeeID string) (rfid.Card, error) {
	defer r.s.lockWrite(ctx)()

	c, ok := r.s.data.cards[cardID]
	if !ok {
		return rfid.Card{}, rfid.ErrCardNotFound
	}
	if c.EmployeeID != nil && *c.EmployeeID == employeeID {
		return c, nil
	}
	if err := r.checkHolder(employeeID); err != nil {
		return rfid.Card{}, err
	}
	c.EmployeeID = &employeeID
	r.s.data.cards[cardID] = c
	return c, nil
}

func (r cardRepository) Delete(ctx context.Context, id string) error {
	defer r.s.lockWrite(ctx)()

	if _, ok := r.s.data.cards[id]; !ok {
		return rfid.ErrCardNotFound
	}
	delete(r.s.data.cards, id)
	return nil
}
