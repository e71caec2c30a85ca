package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/checkin"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/sse"
)

type CheckinHandler interface {
	Record(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type checkinHandlerImpl struct {
	checkinService checkin.Service
	hub            *sse.Hub
	keepalive      time.Duration
}

func NewCheckinHandler(checkinService checkin.Service, hub *sse.Hub) CheckinHandler {
	return &checkinHandlerImpl{
		checkinService: checkinService,
		hub:            hub,
		keepalive:      30 * time.Second,
	}
}

// Record implements CheckinHandler. Called by the readers, not by people.
func (h *checkinHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	var req checkin.RecordCheckinRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Record checkin decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	event, err := h.checkinService.Record(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Check-in recorded", event)
}

// List implements CheckinHandler.
func (h *checkinHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := checkin.Filter{
		RoomID:     queryPtr(r, "room_id"),
		MachineID:  queryPtr(r, "machine_id"),
		EmployeeID: queryPtr(r, "employee_id"),
		CardID:     queryPtr(r, "card_id"),
	}

	events, err := h.checkinService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, events)
}

// Stream pushes check-ins as server-sent events, optionally for one room.
func (h *checkinHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	topic := sse.AllTopic
	if roomID := r.URL.Query().Get("room_id"); roomID != "" {
		topic = sse.RoomTopic(roomID)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(topic)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"topic\":%q}\n\n", topic)
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("Failed to encode stream event", "event", event.Name, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
