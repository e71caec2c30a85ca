package payroll

import (
	"time"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/workhour"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/utils"
	"github.com/shopspring/decimal"
)

// Period is an inclusive range of civil dates.
type Period struct {
	Start time.Time
	End   time.Time
}

// PreviousMonth returns the full calendar month before now's month.
func PreviousMonth(now time.Time) Period {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Period{
		Start: firstOfMonth.AddDate(0, -1, 0),
		End:   firstOfMonth.AddDate(0, 0, -1),
	}
}

// PayslipEvent is published after a salary email goes out.
type PayslipEvent struct {
	EmployeeID      string          `json:"employee_id"`
	Email           string          `json:"email"`
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date"`
	TotalHours      float64         `json:"total_hours"`
	ExpectedHours   float64         `json:"expected_hours"`
	PunishmentHours float64         `json:"punishment_hours"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	SentAt          time.Time       `json:"sent_at"`
}

func NewPayslipEvent(email string, p Period, s workhour.Summary, sentAt time.Time) PayslipEvent {
	return PayslipEvent{
		EmployeeID:      s.EmployeeID,
		Email:           email,
		StartDate:       utils.FormatDate(p.Start),
		EndDate:         utils.FormatDate(p.End),
		TotalHours:      s.TotalHours,
		ExpectedHours:   s.ExpectedHours,
		PunishmentHours: s.PunishmentHours,
		PaidAmount:      s.PaidAmount,
		SentAt:          sentAt,
	}
}
