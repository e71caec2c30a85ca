package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/room"
)

type roomRepository struct {
	s *Store
}

func (r roomRepository) Create(ctx context.Context, rm room.Room) (room.Room, error) {
	defer r.s.lockWrite(ctx)()

	rm.CreatedAt = r.s.now()
	r.s.data.rooms[rm.ID] = rm
	return rm, nil
}

func (r roomRepository) GetByID(ctx context.Context, id string) (room.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rm, ok := r.s.data.rooms[id]
	if !ok {
		return room.Room{}, room.ErrRoomNotFound
	}
	return rm, nil
}

func (r roomRepository) List(ctx context.Context, filter room.Filter) ([]room.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []room.Room{}
	for _, rm := range r.s.data.rooms {
		if filter.EmployeeID != nil {
			if _, ok := r.s.data.roomEmployees[rm.ID][*filter.EmployeeID]; !ok {
				continue
			}
		}
		out = append(out, rm)
	}
	slices.SortFunc(out, func(a, b room.Room) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (r roomRepository) Delete(ctx context.Context, id string) error {
	defer r.s.lockWrite(ctx)()

	if _, ok := r.s.data.rooms[id]; !ok {
		return room.ErrRoomNotFound
	}
	for machineID, m := range r.s.data.machines {
		if m.RoomID != nil && *m.RoomID == id {
			m.RoomID = nil
			r.s.data.machines[machineID] = m
		}
	}
	delete(r.s.data.roomEmployees, id)
	delete(r.s.data.rooms, id)
	return nil
}

func (r roomRepository) HasAccess(ctx context.Context, employeeID, roomID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.data.roomEmployees[roomID][employeeID]
	return ok, nil
}

func (r roomRepository) ReplaceForEmployee(ctx context.Context, employeeID string, roomIDs []string) error {
	defer r.s.lockWrite(ctx)()

	if _, ok := r.s.data.employees[employeeID]; !ok {
		return employee.ErrEmployeeNotFound
	}
	for _, id := range roomIDs {
		if _, ok := r.s.data.rooms[id]; !ok {
			return room.ErrRoomNotFound
		}
	}

	for _, members := range r.s.data.roomEmployees {
		delete(members, employeeID)
	}
	for _, id := range roomIDs {
		r.s.members(id)[employeeID] = struct{}{}
	}
	return nil
}

func (r roomRepository) ReplaceEmployees(ctx context.Context, roomID string, employeeIDs []string) error {
	defer r.s.lockWrite(ctx)()

	if _, ok := r.s.data.rooms[roomID]; !ok {
		return room.ErrRoomNotFound
	}
	for _, id := range employeeIDs {
		if _, ok := r.s.data.employees[id]; !ok {
			return employee.ErrEmployeeNotFound
		}
	}

	members := map[string]struct{}{}
	for _, id := range employeeIDs {
		members[id] = struct{}{}
	}
	r.s.data.roomEmployees[roomID] = members
	return nil
}

// members returns the access set of roomID, creating it. Caller holds mu.
func (s *Store) members(roomID string) map[string]struct{} {
	m, ok := s.data.roomEmployees[roomID]
	if !ok {
		m = map[string]struct{}{}
		s.data.roomEmployees[roomID] = m
	}
	return m
}
