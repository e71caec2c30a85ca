package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/dayoff"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type dayOffRepositoryImpl struct {
	db *database.DB
}

func NewDayOffRepository(db *database.DB) dayoff.Repository {
	return &dayOffRepositoryImpl{db: db}
}

const dayOffColumns = `id, employee_id, start_date, end_date, reason, type, approved_by, approved_at, created_at, updated_at`

func scanDayOff(row pgx.Row) (dayoff.DayOff, error) {
	var d dayoff.DayOff
	err := row.Scan(
		&d.ID, &d.EmployeeID, &d.StartDate, &d.EndDate, &d.Reason, &d.Type,
		&d.ApprovedBy, &d.ApprovedAt, &d.CreatedAt, &d.UpdatedAt,
	)
	return d, err
}

// Create implements dayoff.Repository.
func (r *dayOffRepositoryImpl) Create(ctx context.Context, d dayoff.DayOff) (dayoff.DayOff, error) {
	q := GetQuerier(ctx, r.db)

	created, err := scanDayOff(q.QueryRow(ctx, `
		INSERT INTO days_off (id, employee_id, start_date, end_date, reason, type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+dayOffColumns,
		d.ID, d.EmployeeID, d.StartDate, d.EndDate, d.Reason, d.Type,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return dayoff.DayOff{}, employee.ErrEmployeeNotFound
		}
		return dayoff.DayOff{}, fmt.Errorf("failed to create day off: %w", err)
	}
	return created, nil
}

// GetByID implements dayoff.Repository.
func (r *dayOffRepositoryImpl) GetByID(ctx context.Context, id string) (dayoff.DayOff, error) {
	q := GetQuerier(ctx, r.db)

	d, err := scanDayOff(q.QueryRow(ctx, `SELECT `+dayOffColumns+` FROM days_off WHERE id = $1`, id))
	if err != nil {
		return dayoff.DayOff{}, notFoundOr(err, dayoff.ErrDayOffNotFound)
	}
	return d, nil
}

// ListByEmployee implements dayoff.Repository.
func (r *dayOffRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]dayoff.DayOff, error) {
	return r.List(ctx, dayoff.Filter{EmployeeID: &employeeID})
}

// List implements dayoff.Repository.
func (r *dayOffRepositoryImpl) List(ctx context.Context, filter dayoff.Filter) ([]dayoff.DayOff, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []interface{}
	)
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", len(args)))
	}
	if filter.Approved != nil {
		if *filter.Approved {
			conditions = append(conditions, "approved_at IS NOT NULL")
		} else {
			conditions = append(conditions, "approved_at IS NULL")
		}
	}

	query := `SELECT ` + dayOffColumns + ` FROM days_off`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY start_date, id`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		if isInvalidUUID(err) {
			return []dayoff.DayOff{}, nil
		}
		return nil, fmt.Errorf("failed to list days off: %w", err)
	}
	defer rows.Close()

	records := []dayoff.DayOff{}
	for rows.Next() {
		d, err := scanDayOff(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, d)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// Update implements dayoff.Repository.
func (r *dayOffRepositoryImpl) Update(ctx context.Context, d dayoff.DayOff) (dayoff.DayOff, error) {
	q := GetQuerier(ctx, r.db)

	updated, err := scanDayOff(q.QueryRow(ctx, `
		UPDATE days_off
		SET start_date = $2, end_date = $3, reason = $4, type = $5,
			approved_by = $6, approved_at = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING `+dayOffColumns,
		d.ID, d.StartDate, d.EndDate, d.Reason, d.Type, d.ApprovedBy, d.ApprovedAt,
	))
	if err != nil {
		return dayoff.DayOff{}, notFoundOr(err, dayoff.ErrDayOffNotFound)
	}
	return updated, nil
}

// Delete implements dayoff.Repository.
func (r *dayOffRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM days_off WHERE id = $1`, id)
	if err != nil {
		return notFoundOr(err, dayoff.ErrDayOffNotFound)
	}
	if tag.RowsAffected() == 0 {
		return dayoff.ErrDayOffNotFound
	}
	return nil
}
