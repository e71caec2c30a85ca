package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/utils"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	SendSalaryEmail(w http.ResponseWriter, r *http.Request)
	SendSalaryEmails(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.Service
	clock          clock.Clock
}

func NewPayrollHandler(payrollService payroll.Service, clk clock.Clock) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService, clock: clk}
}

// salaryEmailRequest reads the period from the query string. Without either
// bound the previous calendar month is used.
func (h *payrollHandlerImpl) salaryEmailRequest(r *http.Request) payroll.SalaryEmailRequest {
	req := payroll.SalaryEmailRequest{
		EmployeeID: chi.URLParam(r, "id"),
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
	}
	if req.StartDate == "" && req.EndDate == "" {
		p := payroll.PreviousMonth(h.clock.Now())
		req.StartDate = utils.FormatDate(p.Start)
		req.EndDate = utils.FormatDate(p.End)
	}
	return req
}

// SendSalaryEmail implements PayrollHandler.
func (h *payrollHandlerImpl) SendSalaryEmail(w http.ResponseWriter, r *http.Request) {
	req := h.salaryEmailRequest(r)
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	payslip, err := h.payrollService.SendSalaryEmail(r.Context(), req)
	if err != nil {
		slog.Error("SendSalaryEmail service error", "employee_id", req.EmployeeID, "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Salary email sent", payslip)
}

// SendSalaryEmails implements PayrollHandler.
func (h *payrollHandlerImpl) SendSalaryEmails(w http.ResponseWriter, r *http.Request) {
	req := h.salaryEmailRequest(r)
	period, err := payroll.ParsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	batch, err := h.payrollService.SendSalaryEmails(r.Context(), period)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	slog.Info("Salary emails sent", "sent", batch.Sent, "skipped", batch.Skipped, "failed", len(batch.Failed))
	response.SuccessWithMessage(w, "Salary emails processed", batch)
}
