package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/rfid"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/room"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type machineRepositoryImpl struct {
	db *database.DB
}

func NewMachineRepository(db *database.DB) rfid.MachineRepository {
	return &machineRepositoryImpl{db: db}
}

const machineColumns = `id, name, room_id, allow_checkin, created_at`

func scanMachine(row pgx.Row) (rfid.Machine, error) {
	var m rfid.Machine
	err := row.Scan(&m.ID, &m.Name, &m.RoomID, &m.AllowCheckin, &m.CreatedAt)
	return m, err
}

// Create implements rfid.MachineRepository.
func (r *machineRepositoryImpl) Create(ctx context.Context, m rfid.Machine) (rfid.Machine, error) {
	q := GetQuerier(ctx, r.db)

	created, err := scanMachine(q.QueryRow(ctx, `
		INSERT INTO rfid_machines (id, name, room_id, allow_checkin)
		VALUES ($1, $2, $3, $4)
		RETURNING `+machineColumns,
		m.ID, m.Name, m.RoomID, m.AllowCheckin,
	))
	if err != nil {
		if isForeignKeyViolation(err) || isInvalidUUID(err) {
			return rfid.Machine{}, room.ErrRoomNotFound
		}
		return rfid.Machine{}, fmt.Errorf("failed to create rfid machine: %w", err)
	}
	return created, nil
}

// GetByID implements rfid.MachineRepository.
func (r *machineRepositoryImpl) GetByID(ctx context.Context, id string) (rfid.Machine, error) {
	q := GetQuerier(ctx, r.db)

	m, err := scanMachine(q.QueryRow(ctx, `SELECT `+machineColumns+` FROM rfid_machines WHERE id = $1`, id))
	if err != nil {
		return rfid.Machine{}, notFoundOr(err, rfid.ErrMachineNotFound)
	}
	return m, nil
}

// List implements rfid.MachineRepository.
func (r *machineRepositoryImpl) List(ctx context.Context, filter rfid.MachineFilter) ([]rfid.Machine, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + machineColumns + ` FROM rfid_machines`
	args := []interface{}{}
	if filter.RoomID != nil {
		query += ` WHERE room_id = $1`
		args = append(args, *filter.RoomID)
	}
	query += ` ORDER BY created_at, id`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		if isInvalidUUID(err) {
			return []rfid.Machine{}, nil
		}
		return nil, fmt.Errorf("failed to list rfid machines: %w", err)
	}
	defer rows.Close()

	machines := []rfid.Machine{}
	for rows.Next() {
		m, err := scanMachine(rows)
		if err != nil {
			return nil, err
		}
		machines = append(machines, m)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return machines, nil
}

// Delete implements rfid.MachineRepository.
func (r *machineRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM rfid_machines WHERE id = $1`, id)
	if err != nil {
		return notFoundOr(err, rfid.ErrMachineNotFound)
	}
	if tag.RowsAffected() == 0 {
		return rfid.ErrMachineNotFound
	}
	return nil
}

// ReplaceForRoom implements rfid.MachineRepository.
func (r *machineRepositoryImpl) ReplaceForRoom(ctx context.Context, roomID string, machineIDs []string) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		if err := countMatches(ctx, q, `SELECT COUNT(*) FROM rooms WHERE id = ANY($1)`, []string{roomID}, room.ErrRoomNotFound); err != nil {
			return err
		}
		if err := countMatches(ctx, q, `SELECT COUNT(*) FROM rfid_machines WHERE id = ANY($1)`, machineIDs, rfid.ErrMachineNotFound); err != nil {
			return err
		}

		if _, err := q.Exec(ctx, `UPDATE rfid_machines SET room_id = NULL WHERE room_id = $1`, roomID); err != nil {
			return fmt.Errorf("failed to detach machines from room %s: %w", roomID, err)
		}
		if len(machineIDs) == 0 {
			return nil
		}
		if _, err := q.Exec(ctx, `UPDATE rfid_machines SET room_id = $1 WHERE id = ANY($2)`, roomID, machineIDs); err != nil {
			return fmt.Errorf("failed to attach machines to room %s: %w", roomID, err)
		}
		return nil
	})
}

type cardRepositoryImpl struct {
	db *database.DB
}

func NewCardRepository(db *database.DB) rfid.CardRepository {
	return &cardRepositoryImpl{db: db}
}

const cardColumns = `id, employee_id, created_at`

func scanCard(row pgx.Row) (rfid.Card, error) {
	var c rfid.Card
	err := row.Scan(&c.ID, &c.EmployeeID, &c.CreatedAt)
	return c, err
}

func mapCardError(err error) error {
	switch {
	case isUniqueViolation(err, "rfid_cards_pkey"):
		return rfid.ErrCardExists
	case isUniqueViolation(err, "rfid_cards_employee_id_key"):
		return rfid.ErrEmployeeHasCard
	case isForeignKeyViolation(err), isInvalidUUID(err):
		return employee.ErrEmployeeNotFound
	}
	return notFoundOr(err, rfid.ErrCardNotFound)
}

// Create implements rfid.CardRepository.
func (r *cardRepositoryImpl) Create(ctx context.Context, c rfid.Card) (rfid.Card, error) {
	q := GetQuerier(ctx, r.db)

	created, err := scanCard(q.QueryRow(ctx, `
		INSERT INTO rfid_cards (id, employee_id) VALUES ($1, $2)
		RETURNING `+cardColumns,
		c.ID, c.EmployeeID,
	))
	if err != nil {
		return rfid.Card{}, mapCardError(err)
	}
	return created, nil
}

// GetByID implements rfid.CardRepository.
func (r *cardRepositoryImpl) GetByID(ctx context.Context, id string) (rfid.Card, error) {
	q := GetQuerier(ctx, r.db)

	c, err := scanCard(q.QueryRow(ctx, `SELECT `+cardColumns+` FROM rfid_cards WHERE id = $1`, id))
	if err != nil {
		return rfid.Card{}, notFoundOr(err, rfid.ErrCardNotFound)
	}
	return c, nil
}

// GetByEmployeeID implements rfid.CardRepository.
func (r *cardRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (rfid.Card, error) {
	q := GetQuerier(ctx, r.db)

	c, err := scanCard(q.QueryRow(ctx, `SELECT `+cardColumns+` FROM rfid_cards WHERE employee_id = $1`, employeeID))
	if err != nil {
		return rfid.Card{}, notFoundOr(err, rfid.ErrCardNotFound)
	}
	return c, nil
}

// List implements rfid.CardRepository.
func (r *cardRepositoryImpl) List(ctx context.Context, filter rfid.CardFilter) ([]rfid.Card, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + cardColumns + ` FROM rfid_cards`
	if filter.AvailableOnly {
		query += ` WHERE employee_id IS NULL`
	}
	query += ` ORDER BY created_at, id`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rfid cards: %w", err)
	}
	defer rows.Close()

	cards := []rfid.Card{}
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return cards, nil
}

// AssignEmployee implements rfid.CardRepository.
func (r *cardRepositoryImpl) AssignEmployee(ctx context.Context, cardID string, employeeID string) (rfid.Card, error) {
	q := GetQuerier(ctx, r.db)

	c, err := scanCard(q.QueryRow(ctx, `
		UPDATE rfid_cards SET employee_id = $2 WHERE id = $1
		RETURNING `+cardColumns,
		cardID, employeeID,
	))
	if err != nil {
		return rfid.Card{}, mapCardError(err)
	}
	return c, nil
}

// Delete implements rfid.CardRepository.
func (r *cardRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM rfid_cards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete rfid card %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return rfid.ErrCardNotFound
	}
	return nil
}
