// Package memory is an in-process implementation of every repository. It
// backs the "memory" storage driver and the service tests.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/checkin"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/dayoff"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/rfid"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/room"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/clock"
)

type tables struct {
	employees     map[string]employee.Employee
	rooms         map[string]room.Room
	roomEmployees map[string]map[string]struct{} // room id -> employee ids
	machines      map[string]rfid.Machine
	cards         map[string]rfid.Card
	checkins      []checkin.Event
	daysOff       map[string]dayoff.DayOff
	refreshTokens map[string]refreshToken // token hash -> token
}

func newTables() tables {
	return tables{
		employees:     map[string]employee.Employee{},
		rooms:         map[string]room.Room{},
		roomEmployees: map[string]map[string]struct{}{},
		machines:      map[string]rfid.Machine{},
		cards:         map[string]rfid.Card{},
		daysOff:       map[string]dayoff.DayOff{},
		refreshTokens: map[string]refreshToken{},
	}
}

func (t tables) clone() tables {
	c := tables{
		employees:     maps.Clone(t.employees),
		rooms:         maps.Clone(t.rooms),
		roomEmployees: make(map[string]map[string]struct{}, len(t.roomEmployees)),
		machines:      maps.Clone(t.machines),
		cards:         maps.Clone(t.cards),
		checkins:      append([]checkin.Event(nil), t.checkins...),
		daysOff:       maps.Clone(t.daysOff),
		refreshTokens: maps.Clone(t.refreshTokens),
	}
	for k, v := range t.roomEmployees {
		c.roomEmployees[k] = maps.Clone(v)
	}
	return c
}

// Store holds all tables behind one mutex. Transactions run one at a time
// and are rolled back by restoring a snapshot. Writes made outside a
// transaction wait on txMu, so a snapshot never covers another caller's
// committed write.
type Store struct {
	mu    sync.RWMutex
	txMu  sync.Mutex
	data  tables
	clock clock.Clock
}

// NewStore returns an empty store that stamps rows with clk.
func NewStore(clk clock.Clock) *Store {
	return &Store{data: newTables(), clock: clk}
}

func (s *Store) now() time.Time {
	return s.clock.Now()
}

// lockWrite takes the write lock for a single repository call and returns
// the release func. Calls outside a transaction first wait for any open one.
func (s *Store) lockWrite(ctx context.Context) func() {
	if ctx.Value(txKey{}) != nil {
		s.mu.Lock()
		return s.mu.Unlock
	}
	s.txMu.Lock()
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		s.txMu.Unlock()
	}
}

type txKey struct{}

// WithinTransaction implements database.Transactor.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, struct{}{})); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) Employees() employee.Repository   { return employeeRepository{s} }
func (s *Store) Rooms() room.Repository           { return roomRepository{s} }
func (s *Store) Machines() rfid.MachineRepository { return machineRepository{s} }
func (s *Store) Cards() rfid.CardRepository       { return cardRepository{s} }
func (s *Store) Checkins() checkin.Repository     { return checkinRepository{s} }
func (s *Store) DaysOff() dayoff.Repository       { return dayOffRepository{s} }
func (s *Store) RefreshTokens() auth.RefreshTokenRepository {
	return refreshTokenRepository{s}
}
