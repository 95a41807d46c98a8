package handler

import (
	"net/http"

	"github.com/mcoot/rpsduel-go/internal/api/middleware"
	"github.com/mcoot/rpsduel-go/internal/events"
)

// EventsHandler handles the SSE match event stream
type EventsHandler struct {
	hub *events.Hub
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hub *events.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// Stream handles GET /api/v1/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	addr := middleware.MustGetIdentity(r.Context())
	events.ServeSSE(w, r, h.hub, addr)
}
