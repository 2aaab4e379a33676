package handler

import (
	"net/http"

	"github.com/mcoot/lobbyregistry/internal/api/response"
	"github.com/mcoot/lobbyregistry/internal/services/registry"
)

// HealthHandler reports liveness together with the registry's size
type HealthHandler struct {
	registry *registry.Registry
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(reg *registry.Registry) *HealthHandler {
	return &HealthHandler{registry: reg}
}

// Get handles GET /api/v1/health
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	players, games := h.registry.Counts(r.Context())
	response.JSON(w, http.StatusOK, response.Health{
		Status:  "ok",
		Players: players,
		Games:   games,
	})
}
