package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/dayoff"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DayOffHandler interface {
	ListDaysOff(w http.ResponseWriter, r *http.Request)
	GetDayOff(w http.ResponseWriter, r *http.Request)
	RequestDayOff(w http.ResponseWriter, r *http.Request)
	UpdateDayOff(w http.ResponseWriter, r *http.Request)
	ApproveDayOff(w http.ResponseWriter, r *http.Request)
	DeleteDayOff(w http.ResponseWriter, r *http.Request)
}

type dayOffHandlerImpl struct {
	dayOffService dayoff.Service
}

func NewDayOffHandler(dayOffService dayoff.Service) DayOffHandler {
	return &dayOffHandlerImpl{dayOffService: dayOffService}
}

// ownedBy loads the day off and rejects non-managers acting on someone else's record.
func (h *dayOffHandlerImpl) ownedBy(ctx context.Context, caller middleware.Identity, id string) (dayoff.DayOff, error) {
	d, err := h.dayOffService.GetDayOff(ctx, id)
	if err != nil {
		return dayoff.DayOff{}, err
	}
	if !caller.IsManager() && d.EmployeeID != caller.EmployeeID {
		return dayoff.DayOff{}, auth.ErrManagerAccessRequired
	}
	return d, nil
}

// ListDaysOff implements DayOffHandler.
func (h *dayOffHandlerImpl) ListDaysOff(w http.ResponseWriter, r *http.Request) {
	approved, err := queryBool(r, "approved")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	days, err := h.dayOffService.ListDaysOff(r.Context(), dayoff.Filter{
		EmployeeID: queryPtr(r, "employee_id"),
		Approved:   approved,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := make([]dayoff.DayOffResponse, 0, len(days))
	for _, d := range days {
		resp = append(resp, dayoff.NewDayOffResponse(d))
	}
	response.List(w, resp)
}

// GetDayOff implements DayOffHandler.
func (h *dayOffHandlerImpl) GetDayOff(w http.ResponseWriter, r *http.Request) {
	d, err := h.dayOffService.GetDayOff(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, dayoff.NewDayOffResponse(d))
}

// RequestDayOff implements DayOffHandler. employee_id defaults to the caller.
func (h *dayOffHandlerImpl) RequestDayOff(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req dayoff.CreateDayOffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RequestDayOff decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if req.EmployeeID == "" {
		req.EmployeeID = caller.EmployeeID
	}
	if !caller.IsManager() && req.EmployeeID != caller.EmployeeID {
		response.HandleError(w, auth.ErrManagerAccessRequired)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.dayOffService.RequestDayOff(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Day off requested", dayoff.NewDayOffResponse(created))
}

// UpdateDayOff implements DayOffHandler.
func (h *dayOffHandlerImpl) UpdateDayOff(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req dayoff.UpdateDayOffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateDayOff decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}
	if _, err := h.ownedBy(r.Context(), caller, req.ID); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.dayOffService.UpdateDayOff(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Day off updated", dayoff.NewDayOffResponse(updated))
}

// ApproveDayOff implements DayOffHandler. The caller is the approver.
func (h *dayOffHandlerImpl) ApproveDayOff(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	approved, err := h.dayOffService.ApproveDayOff(r.Context(), chi.URLParam(r, "id"), caller.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Day off approved", dayoff.NewDayOffResponse(approved))
}

// DeleteDayOff implements DayOffHandler.
func (h *dayOffHandlerImpl) DeleteDayOff(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := h.ownedBy(r.Context(), caller, id); err != nil {
		response.HandleError(w, err)
		return
	}

	deleted, err := h.dayOffService.DeleteDayOff(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Day off deleted", dayoff.NewDayOffResponse(deleted))
}
