package dayoff

import (
	"time"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/utils"
)

type Type string

const (
	TypePaid   Type = "paid"
	TypeUnpaid Type = "unpaid"
)

func (t Type) IsValid() bool {
	return t == TypePaid || t == TypeUnpaid
}

// DayOff is a leave record covering StartDate..EndDate inclusive.
// StartDate and EndDate are civil dates (UTC midnight).
type DayOff struct {
	ID         string
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Type       Type
	ApprovedBy *string
	ApprovedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsApproved reports whether the record was signed off. ApprovedBy may be
// cleared later if the approver is removed; ApprovedAt stays.
func (d DayOff) IsApproved() bool {
	return d.ApprovedAt != nil
}

// Covers reports whether date falls inside the record's range.
func (d DayOff) Covers(date time.Time) bool {
	day := utils.DateOf(date)
	return !day.Before(d.StartDate) && !day.After(d.EndDate)
}

// Overlaps reports whether [start, end] shares at least one day with the record.
func (d DayOff) Overlaps(start, end time.Time) bool {
	return !utils.DateOf(start).After(d.EndDate) && !utils.DateOf(end).Before(d.StartDate)
}

// Resolve returns the record covering date, or nil.
func Resolve(records []DayOff, date time.Time) *DayOff {
	for i := range records {
		if records[i].Covers(date) {
			return &records[i]
		}
	}
	return nil
}

// FindConflict returns the first record overlapping [start, end], ignoring the
// record whose ID is excludeID (the record being corrected, if any).
func FindConflict(existing []DayOff, start, end time.Time, excludeID string) *DayOff {
	for i := range existing {
		if excludeID != "" && existing[i].ID == excludeID {
			continue
		}
		if existing[i].Overlaps(start, end) {
			return &existing[i]
		}
	}
	return nil
}
