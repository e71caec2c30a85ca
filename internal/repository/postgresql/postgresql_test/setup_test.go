package postgresql_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const migrationPath = "../../../../migrations/001_init.sql"

// newTestDB connects to TEST_DATABASE_URL, applies the schema and empties
// every table. Tests are skipped when the variable is unset.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.NewPostgreSQLDB(ctx, dsn, 4, 1)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	schema, err := os.ReadFile(migrationPath)
	require.NoError(t, err)
	_, err = db.Exec(ctx, string(schema))
	require.NoError(t, err)

	_, err = db.Exec(ctx, `TRUNCATE TABLE refresh_tokens, days_off, checkin_events, rfid_cards, rfid_machines, room_employees, rooms, employees CASCADE`)
	require.NoError(t, err)

	return db
}

func createEmployee(t *testing.T, db *database.DB, username string, role employee.Role) employee.Employee {
	t.Helper()
	e, err := postgresql.NewEmployeeRepository(db).Create(context.Background(), employee.Employee{
		ID:           uuid.NewString(),
		Username:     username,
		FirstName:    username,
		Email:        username + "@example.com",
		Role:         role,
		PasswordHash: "hash",
		HourlyRate:   decimal.NewFromInt(50000),
	})
	require.NoError(t, err)
	return e
}
