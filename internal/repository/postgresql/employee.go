package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `id, username, first_name, last_name, email, role, password_hash, hourly_rate, created_at, updated_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.Username, &e.FirstName, &e.LastName, &e.Email, &e.Role,
		&e.PasswordHash, &e.HourlyRate, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func mapEmployeeError(err error) error {
	switch {
	case isUniqueViolation(err, "employees_username_key"):
		return employee.ErrUsernameExists
	case isUniqueViolation(err, "employees_email_key"):
		return employee.ErrEmailExists
	}
	return notFoundOr(err, employee.ErrEmployeeNotFound)
}

// Create implements employee.Repository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (id, username, first_name, last_name, email, role, password_hash, hourly_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.ID, newEmployee.Username, newEmployee.FirstName, newEmployee.LastName,
		newEmployee.Email, newEmployee.Role, newEmployee.PasswordHash, newEmployee.HourlyRate,
	))
	if err != nil {
		return employee.Employee{}, mapEmployeeError(err)
	}
	return created, nil
}

// GetByID implements employee.Repository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if err != nil {
		return employee.Employee{}, mapEmployeeError(err)
	}
	return e, nil
}

// GetByUsername implements employee.Repository.
func (r *employeeRepositoryImpl) GetByUsername(ctx context.Context, username string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE username = $1`, username))
	if err != nil {
		return employee.Employee{}, mapEmployeeError(err)
	}
	return e, nil
}

// List implements employee.Repository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.Filter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY created_at, id`
	args := []interface{}{}
	if filter.RoomID != nil {
		query = `
			SELECT e.id, e.username, e.first_name, e.last_name, e.email, e.role, e.password_hash,
				e.hourly_rate, e.created_at, e.updated_at
			FROM employees e
			JOIN room_employees re ON re.employee_id = e.id
			WHERE re.room_id = $1
			ORDER BY e.created_at, e.id
		`
		args = append(args, *filter.RoomID)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := []employee.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// Update implements employee.Repository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET first_name = $2, last_name = $3, email = $4, role = $5, password_hash = $6,
			hourly_rate = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + employeeColumns

	updated, err := scanEmployee(q.QueryRow(ctx, query,
		e.ID, e.FirstName, e.LastName, e.Email, e.Role, e.PasswordHash, e.HourlyRate,
	))
	if err != nil {
		return employee.Employee{}, mapEmployeeError(err)
	}
	return updated, nil
}

// Delete implements employee.Repository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if isInvalidUUID(err) {
		return employee.ErrEmployeeNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete employee with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// LockForUpdate implements employee.Repository.
func (r *employeeRepositoryImpl) LockForUpdate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	var lockedID string
	err := q.QueryRow(ctx, `SELECT id FROM employees WHERE id = $1 FOR UPDATE`, id).Scan(&lockedID)
	if err != nil {
		return mapEmployeeError(err)
	}
	return nil
}
