// Package report renders work-hour summaries as spreadsheets.
package report

import (
	"fmt"
	"io"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/workhour"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/utils"
	"github.com/xuri/excelize/v2"
)

const (
	workHourSheet = "Work Hours"
	headerRow     = 6
	ContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var workHourHeaders = []string{"Date", "Day", "First Tap", "Last Tap", "Hours", "Day Off", "Counted"}

// WriteWorkSummary writes s as an xlsx workbook: totals on top, one row per
// work day below.
func WriteWorkSummary(w io.Writer, employeeName string, s workhour.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", workHourSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	period := fmt.Sprintf("%s to %s", dateOrOpen(utils.FormatDatePtr(s.StartDate)), dateOrOpen(utils.FormatDatePtr(s.EndDate)))
	cells := []struct {
		cell  string
		value any
	}{
		{"A1", "Employee"}, {"B1", employeeName},
		{"A2", "Period"}, {"B2", period},
		{"A3", "Total Hours"}, {"B3", s.TotalHours},
		{"C3", "Expected Hours"}, {"D3", s.ExpectedHours},
		{"A4", "Punishment Hours"}, {"B4", s.PunishmentHours},
		{"C4", "Paid Amount"}, {"D4", s.PaidAmount.StringFixed(2)},
	}
	for _, c := range cells {
		if err := f.SetCellValue(workHourSheet, c.cell, c.value); err != nil {
			return err
		}
	}

	for i, h := range workHourHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		if err := f.SetCellValue(workHourSheet, cell, h); err != nil {
			return err
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(workHourHeaders), headerRow)
	if err := f.SetCellStyle(workHourSheet, fmt.Sprintf("A%d", headerRow), lastHeader, headerStyle); err != nil {
		return err
	}

	for i, day := range s.WorkDays {
		row := headerRow + 1 + i
		dayOff := ""
		if day.DayOff != nil {
			dayOff = string(day.DayOff.Type)
			if !day.DayOff.IsApproved() {
				dayOff += " (pending)"
			}
		}
		values := []any{
			utils.FormatDate(day.Date),
			day.Date.Weekday().String(),
			day.StartTime.Format("15:04"),
			day.EndTime.Format("15:04"),
			day.Hours,
			dayOff,
			yesNo(day.Counted()),
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(workHourSheet, cell, &values); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(workHourSheet, "A", "A", 18); err != nil {
		return err
	}
	if err := f.SetColWidth(workHourSheet, "B", "G", 14); err != nil {
		return err
	}

	return f.Write(w)
}

// FileName is the suggested download name for an employee's report.
func FileName(username string, s workhour.Summary) string {
	name := "work_hours_" + username
	if s.StartDate != nil {
		name += "_" + utils.FormatDate(*s.StartDate)
	}
	if s.EndDate != nil {
		name += "_" + utils.FormatDate(*s.EndDate)
	}
	return name + ".xlsx"
}

func dateOrOpen(s *string) string {
	if s == nil {
		return "open"
	}
	return *s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
