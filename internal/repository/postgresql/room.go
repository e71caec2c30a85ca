package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/room"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/database"
)

type roomRepositoryImpl struct {
	db *database.DB
}

func NewRoomRepository(db *database.DB) room.Repository {
	return &roomRepositoryImpl{db: db}
}

// Create implements room.Repository.
func (r *roomRepositoryImpl) Create(ctx context.Context, newRoom room.Room) (room.Room, error) {
	q := GetQuerier(ctx, r.db)

	var created room.Room
	err := q.QueryRow(ctx, `
		INSERT INTO rooms (id, name) VALUES ($1, $2)
		RETURNING id, name, created_at
	`, newRoom.ID, newRoom.Name).Scan(&created.ID, &created.Name, &created.CreatedAt)
	if err != nil {
		return room.Room{}, fmt.Errorf("failed to create room: %w", err)
	}
	return created, nil
}

// GetByID implements room.Repository.
func (r *roomRepositoryImpl) GetByID(ctx context.Context, id string) (room.Room, error) {
	q := GetQuerier(ctx, r.db)

	var rm room.Room
	err := q.QueryRow(ctx, `SELECT id, name, created_at FROM rooms WHERE id = $1`, id).
		Scan(&rm.ID, &rm.Name, &rm.CreatedAt)
	if err != nil {
		return room.Room{}, notFoundOr(err, room.ErrRoomNotFound)
	}
	return rm, nil
}

// List implements room.Repository.
func (r *roomRepositoryImpl) List(ctx context.Context, filter room.Filter) ([]room.Room, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, name, created_at FROM rooms ORDER BY created_at, id`
	args := []interface{}{}
	if filter.EmployeeID != nil {
		query = `
			SELECT r.id, r.name, r.created_at
			FROM rooms r
			JOIN room_employees re ON re.room_id = r.id
			WHERE re.employee_id = $1
			ORDER BY r.created_at, r.id
		`
		args = append(args, *filter.EmployeeID)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	rooms := []room.Room{}
	for rows.Next() {
		var rm room.Room
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.CreatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, rm)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return rooms, nil
}

// Delete implements room.Repository. Machines are detached and access rows
// removed by the foreign keys.
func (r *roomRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if isInvalidUUID(err) {
		return room.ErrRoomNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete room with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return room.ErrRoomNotFound
	}
	return nil
}

// HasAccess implements room.Repository.
func (r *roomRepositoryImpl) HasAccess(ctx context.Context, employeeID, roomID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM room_employees WHERE employee_id = $1 AND room_id = $2)
	`, employeeID, roomID).Scan(&exists)
	if isInvalidUUID(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check room access: %w", err)
	}
	return exists, nil
}

// ReplaceForEmployee implements room.Repository.
func (r *roomRepositoryImpl) ReplaceForEmployee(ctx context.Context, employeeID string, roomIDs []string) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		if err := countMatches(ctx, q, `SELECT COUNT(*) FROM employees WHERE id = ANY($1)`, []string{employeeID}, employee.ErrEmployeeNotFound); err != nil {
			return err
		}
		if err := countMatches(ctx, q, `SELECT COUNT(*) FROM rooms WHERE id = ANY($1)`, roomIDs, room.ErrRoomNotFound); err != nil {
			return err
		}

		if _, err := q.Exec(ctx, `DELETE FROM room_employees WHERE employee_id = $1`, employeeID); err != nil {
			return fmt.Errorf("failed to clear rooms of employee %s: %w", employeeID, err)
		}
		if len(roomIDs) == 0 {
			return nil
		}
		_, err := q.Exec(ctx, `
			INSERT INTO room_employees (room_id, employee_id)
			SELECT unnest($1::uuid[]), $2
		`, roomIDs, employeeID)
		if err != nil {
			return fmt.Errorf("failed to assign rooms to employee %s: %w", employeeID, err)
		}
		return nil
	})
}

// ReplaceEmployees implements room.Repository.
func (r *roomRepositoryImpl) ReplaceEmployees(ctx context.Context, roomID string, employeeIDs []string) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		if err := countMatches(ctx, q, `SELECT COUNT(*) FROM rooms WHERE id = ANY($1)`, []string{roomID}, room.ErrRoomNotFound); err != nil {
			return err
		}
		if err := countMatches(ctx, q, `SELECT COUNT(*) FROM employees WHERE id = ANY($1)`, employeeIDs, employee.ErrEmployeeNotFound); err != nil {
			return err
		}

		if _, err := q.Exec(ctx, `DELETE FROM room_employees WHERE room_id = $1`, roomID); err != nil {
			return fmt.Errorf("failed to clear employees of room %s: %w", roomID, err)
		}
		if len(employeeIDs) == 0 {
			return nil
		}
		_, err := q.Exec(ctx, `
			INSERT INTO room_employees (room_id, employee_id)
			SELECT $1, unnest($2::uuid[])
		`, roomID, employeeIDs)
		if err != nil {
			return fmt.Errorf("failed to assign employees to room %s: %w", roomID, err)
		}
		return nil
	})
}

// countMatches returns notFound unless every id in ids exists.
func countMatches(ctx context.Context, q database.Querier, query string, ids []string, notFound error) error {
	if len(ids) == 0 {
		return nil
	}
	var n int
	if err := q.QueryRow(ctx, query, ids).Scan(&n); err != nil {
		if isInvalidUUID(err) {
			return notFound
		}
		return err
	}
	if n != len(ids) {
		return notFound
	}
	return nil
}
