package http

import (
	"io"
	"net/http"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/workhour"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/report"
	"github.com/go-chi/chi/v5"
)

type WorkHourHandler interface {
	GetWorkDays(w http.ResponseWriter, r *http.Request)
	ExportWorkDays(w http.ResponseWriter, r *http.Request)
}

type workHourHandlerImpl struct {
	workHourService workhour.Service
	employeeService employee.Service
}

func NewWorkHourHandler(workHourService workhour.Service, employeeService employee.Service) WorkHourHandler {
	return &workHourHandlerImpl{
		workHourService: workHourService,
		employeeService: employeeService,
	}
}

func (h *workHourHandlerImpl) summary(r *http.Request) (workhour.Summary, error) {
	req := workhour.WorkDaysRequest{
		EmployeeID: chi.URLParam(r, "id"),
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
	}
	if err := req.Validate(); err != nil {
		return workhour.Summary{}, err
	}

	startDate, endDate := req.Bounds()
	return h.workHourService.ComputeWorkSummary(r.Context(), req.EmployeeID, startDate, endDate)
}

// GetWorkDays implements WorkHourHandler.
func (h *workHourHandlerImpl) GetWorkDays(w http.ResponseWriter, r *http.Request) {
	summary, err := h.summary(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, workhour.NewWorkDaysResponse(summary))
}

// ExportWorkDays implements WorkHourHandler. Same range rules as GetWorkDays,
// written as an xlsx workbook.
func (h *workHourHandlerImpl) ExportWorkDays(w http.ResponseWriter, r *http.Request) {
	summary, err := h.summary(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	emp, err := h.employeeService.GetEmployee(r.Context(), summary.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	name := emp.FirstName
	if emp.LastName != "" {
		name += " " + emp.LastName
	}

	response.Attachment(w, report.ContentType, report.FileName(emp.Username, summary), func(out io.Writer) error {
		return report.WriteWorkSummary(out, name, summary)
	})
}
