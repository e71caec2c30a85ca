package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

func (r Role) IsValid() bool {
	return r == RoleManager || r == RoleEmployee
}

type Employee struct {
	ID           string
	Username     string
	FirstName    string
	LastName     string
	Email        string
	Role         Role
	PasswordHash string
	HourlyRate   decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

func (e Employee) IsManager() bool {
	return e.Role == RoleManager
}
