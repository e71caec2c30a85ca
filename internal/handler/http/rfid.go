package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/rfid"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type RFIDHandler interface {
	ListMachines(w http.ResponseWriter, r *http.Request)
	CreateMachine(w http.ResponseWriter, r *http.Request)
	DeleteMachine(w http.ResponseWriter, r *http.Request)

	ListCards(w http.ResponseWriter, r *http.Request)
	CreateCard(w http.ResponseWriter, r *http.Request)
	AssignCard(w http.ResponseWriter, r *http.Request)
	DeleteCard(w http.ResponseWriter, r *http.Request)
}

type rfidHandlerImpl struct {
	machineService rfid.MachineService
	cardService    rfid.CardService
}

func NewRFIDHandler(machineService rfid.MachineService, cardService rfid.CardService) RFIDHandler {
	return &rfidHandlerImpl{
		machineService: machineService,
		cardService:    cardService,
	}
}

// ListMachines implements RFIDHandler.
func (h *rfidHandlerImpl) ListMachines(w http.ResponseWriter, r *http.Request) {
	machines, err := h.machineService.ListMachines(r.Context(), rfid.MachineFilter{RoomID: queryPtr(r, "room_id")})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, machines)
}

// CreateMachine implements RFIDHandler.
func (h *rfidHandlerImpl) CreateMachine(w http.ResponseWriter, r *http.Request) {
	var req rfid.CreateMachineRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateMachine decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.machineService.CreateMachine(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "RFID machine registered", created)
}

// DeleteMachine implements RFIDHandler.
func (h *rfidHandlerImpl) DeleteMachine(w http.ResponseWriter, r *http.Request) {
	if err := h.machineService.DeleteMachine(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "RFID machine deleted", nil)
}

// ListCards implements RFIDHandler.
func (h *rfidHandlerImpl) ListCards(w http.ResponseWriter, r *http.Request) {
	available, err := queryBool(r, "available")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	cards, err := h.cardService.ListCards(r.Context(), rfid.CardFilter{AvailableOnly: available != nil && *available})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, cards)
}

// CreateCard implements RFIDHandler.
func (h *rfidHandlerImpl) CreateCard(w http.ResponseWriter, r *http.Request) {
	var req rfid.CreateCardRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateCard decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.cardService.CreateCard(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "RFID card registered", created)
}

// AssignCard implements RFIDHandler.
func (h *rfidHandlerImpl) AssignCard(w http.ResponseWriter, r *http.Request) {
	var req rfid.AssignCardRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AssignCard decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CardID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	card, err := h.cardService.AssignCard(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "RFID card assigned", card)
}

// DeleteCard implements RFIDHandler.
func (h *rfidHandlerImpl) DeleteCard(w http.ResponseWriter, r *http.Request) {
	if err := h.cardService.DeleteCard(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "RFID card deleted", nil)
}
