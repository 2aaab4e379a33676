package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mcoot/lobbyregistry/internal/api/apierr"
	"github.com/mcoot/lobbyregistry/internal/api/request"
	"github.com/mcoot/lobbyregistry/internal/api/response"
	"github.com/mcoot/lobbyregistry/internal/services/registry"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	registry *registry.Registry
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(reg *registry.Registry) *PlayerHandler {
	return &PlayerHandler{
		registry: reg,
	}
}

// List handles GET /api/v1/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players := h.registry.ListPlayers(r.Context())
	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}

// Register handles POST /api/v1/players
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		WriteError(w, NewInvalidRequestError("display_name is required"))
		return
	}

	player, err := h.registry.RegisterPlayer(r.Context(), name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, "/api/v1/players/"+player.PublicID.String(), response.RegisteredPlayerFromModel(player))
}

// Get handles GET /api/v1/players/{publicId}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	publicID, err := pathID(r, "publicId")
	if err != nil {
		WriteError(w, err)
		return
	}

	player, err := h.registry.FindPlayerByPublicID(r.Context(), publicID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// CurrentGame handles GET /api/v1/players/{publicId}/game
func (h *PlayerHandler) CurrentGame(w http.ResponseWriter, r *http.Request) {
	publicID, err := pathID(r, "publicId")
	if err != nil {
		WriteError(w, err)
		return
	}

	if _, err := h.registry.FindPlayerByPublicID(r.Context(), publicID); err != nil {
		WriteError(w, err)
		return
	}

	game, ok := h.registry.FindPlayerCurrentGame(r.Context(), publicID)
	if !ok {
		WriteError(w, apierr.NewNotInGameError())
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(game))
}

// Delete handles DELETE /api/v1/players/{publicId}?private_id=
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	publicID, err := pathID(r, "publicId")
	if err != nil {
		WriteError(w, err)
		return
	}
	acting, err := privateID(r, r.URL.Query().Get("private_id"), "private_id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.registry.DeletePlayer(r.Context(), publicID, acting); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
