package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/checkin"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type checkinRepositoryImpl struct {
	db *database.DB
}

func NewCheckinRepository(db *database.DB) checkin.Repository {
	return &checkinRepositoryImpl{db: db}
}

const checkinColumns = `id, employee_id, card_id, rfid_machine_id, room_id, allow_checkin, created_at`

func scanCheckin(row pgx.Row) (checkin.Event, error) {
	var e checkin.Event
	err := row.Scan(&e.ID, &e.EmployeeID, &e.CardID, &e.MachineID, &e.RoomID, &e.AllowCheckin, &e.CreatedAt)
	return e, err
}

// Create implements checkin.Repository.
func (r *checkinRepositoryImpl) Create(ctx context.Context, e checkin.Event) (checkin.Event, error) {
	q := GetQuerier(ctx, r.db)

	created, err := scanCheckin(q.QueryRow(ctx, `
		INSERT INTO checkin_events (id, employee_id, card_id, rfid_machine_id, room_id, allow_checkin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+checkinColumns,
		e.ID, e.EmployeeID, e.CardID, e.MachineID, e.RoomID, e.AllowCheckin, e.CreatedAt,
	))
	if err != nil {
		return checkin.Event{}, fmt.Errorf("failed to record checkin: %w", err)
	}
	return created, nil
}

// ListByEmployee implements checkin.Repository.
func (r *checkinRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]checkin.Event, error) {
	return r.query(ctx, `
		SELECT `+checkinColumns+`
		FROM checkin_events
		WHERE employee_id = $1
		ORDER BY created_at, id
	`, employeeID)
}

// List implements checkin.Repository.
func (r *checkinRepositoryImpl) List(ctx context.Context, filter checkin.Filter) ([]checkin.Event, error) {
	var (
		conditions []string
		args       []interface{}
	)
	add := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("room_id", filter.RoomID)
	add("rfid_machine_id", filter.MachineID)
	add("employee_id", filter.EmployeeID)
	add("card_id", filter.CardID)

	query := `SELECT ` + checkinColumns + ` FROM checkin_events`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`

	return r.query(ctx, query, args...)
}

func (r *checkinRepositoryImpl) query(ctx context.Context, query string, args ...interface{}) ([]checkin.Event, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		if isInvalidUUID(err) {
			return []checkin.Event{}, nil
		}
		return nil, fmt.Errorf("failed to list checkins: %w", err)
	}
	defer rows.Close()

	events := []checkin.Event{}
	for rows.Next() {
		e, err := scanCheckin(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
