package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/room"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type RoomHandler interface {
	ListRooms(w http.ResponseWriter, r *http.Request)
	CreateRoom(w http.ResponseWriter, r *http.Request)
	DeleteRoom(w http.ResponseWriter, r *http.Request)
	ReplaceEmployees(w http.ResponseWriter, r *http.Request)
	ReplaceMachines(w http.ResponseWriter, r *http.Request)
}

type roomHandlerImpl struct {
	roomService room.Service
}

func NewRoomHandler(roomService room.Service) RoomHandler {
	return &roomHandlerImpl{roomService: roomService}
}

// ListRooms implements RoomHandler.
func (h *roomHandlerImpl) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.roomService.ListRooms(r.Context(), room.Filter{EmployeeID: queryPtr(r, "employee_id")})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, rooms)
}

// CreateRoom implements RoomHandler.
func (h *roomHandlerImpl) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req room.CreateRoomRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRoom decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.roomService.CreateRoom(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Room created successfully", created)
}

// DeleteRoom implements RoomHandler.
func (h *roomHandlerImpl) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := h.roomService.DeleteRoom(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Room deleted successfully", nil)
}

// ReplaceEmployees implements RoomHandler.
func (h *roomHandlerImpl) ReplaceEmployees(w http.ResponseWriter, r *http.Request) {
	var req room.ReplaceEmployeesRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ReplaceEmployees decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RoomID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	employees, err := h.roomService.ReplaceEmployees(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, employees)
}

// ReplaceMachines implements RoomHandler.
func (h *roomHandlerImpl) ReplaceMachines(w http.ResponseWriter, r *http.Request) {
	var req room.ReplaceMachinesRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ReplaceMachines decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RoomID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	machines, err := h.roomService.ReplaceMachines(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, machines)
}
