package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mcoot/lobbyregistry/internal/api/request"
	"github.com/mcoot/lobbyregistry/internal/api/response"
	"github.com/mcoot/lobbyregistry/internal/services/registry"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	registry *registry.Registry
}

// NewGameHandler creates a new game handler
func NewGameHandler(reg *registry.Registry) *GameHandler {
	return &GameHandler{
		registry: reg,
	}
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games := h.registry.ListGames(r.Context())
	response.JSON(w, http.StatusOK, response.GameSummariesFromModel(games))
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		WriteError(w, NewInvalidRequestError("title is required"))
		return
	}
	creator, err := privateID(r, req.CreatorPrivateID, "creator_private_id")
	if err != nil {
		WriteError(w, err)
		return
	}

	game, err := h.registry.CreateGame(r.Context(), title, creator)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, "/api/v1/games/"+game.ID.String(), response.GameFromModel(game))
}

// Get handles GET /api/v1/games/{gameId}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathID(r, "gameId")
	if err != nil {
		WriteError(w, err)
		return
	}

	game, err := h.registry.GetGame(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(game))
}

// Delete handles DELETE /api/v1/games/{gameId}?creator_private_id=
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathID(r, "gameId")
	if err != nil {
		WriteError(w, err)
		return
	}
	acting, err := privateID(r, r.URL.Query().Get("creator_private_id"), "creator_private_id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.registry.DeleteGame(r.Context(), gameID, acting); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
