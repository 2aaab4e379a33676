package handler

import (
	"net/http"
	"strconv"

	"github.com/mcoot/lobbyregistry/internal/api/response"
	"github.com/mcoot/lobbyregistry/internal/api/sse"
	"github.com/mcoot/lobbyregistry/internal/events"
	"github.com/mcoot/lobbyregistry/internal/middleware"
	"github.com/mcoot/lobbyregistry/internal/services/registry"
)

const (
	defaultRecentLimit = 50
	maxRecentLimit     = 500
)

// EventHandler serves the event history and the SSE streams
type EventHandler struct {
	registry   *registry.Registry
	history    events.History
	hubManager *sse.HubManager
}

// NewEventHandler creates a new event handler
func NewEventHandler(reg *registry.Registry, history events.History, hubManager *sse.HubManager) *EventHandler {
	return &EventHandler{
		registry:   reg,
		history:    history,
		hubManager: hubManager,
	}
}

// Recent handles GET /api/v1/events/recent?limit=
func (h *EventHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxRecentLimit {
			WriteError(w, NewInvalidRequestError("limit must be between 1 and 500"))
			return
		}
		limit = n
	}

	evts, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.EventsFromModel(evts))
}

// StreamAll handles GET /api/v1/events
func (h *EventHandler) StreamAll(w http.ResponseWriter, r *http.Request) {
	sse.ServeSSE(w, r, h.hubManager.Global(), middleware.GetRequestID(r.Context()))
}

// StreamGame handles GET /api/v1/games/{gameId}/events
func (h *EventHandler) StreamGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathID(r, "gameId")
	if err != nil {
		WriteError(w, err)
		return
	}

	// create the hub before checking the game so a game ending in between
	// still closes it
	hub := h.hubManager.GetOrCreateHub(gameID)
	if _, err := h.registry.GetGame(r.Context(), gameID); err != nil {
		h.hubManager.RemoveHub(gameID)
		WriteError(w, err)
		return
	}

	sse.ServeSSE(w, r, hub, middleware.GetRequestID(r.Context()))
}
