package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/mcoot/lobbyregistry/internal/api/apierr"
	"github.com/mcoot/lobbyregistry/internal/api/request"
	"github.com/mcoot/lobbyregistry/internal/api/response"
	"github.com/mcoot/lobbyregistry/internal/model"
	"github.com/mcoot/lobbyregistry/internal/services/registry"
)

// MemberHandler handles game membership endpoints
type MemberHandler struct {
	registry *registry.Registry
}

// NewMemberHandler creates a new membership handler
func NewMemberHandler(reg *registry.Registry) *MemberHandler {
	return &MemberHandler{
		registry: reg,
	}
}

// List handles GET /api/v1/games/{gameId}/players
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathID(r, "gameId")
	if err != nil {
		WriteError(w, err)
		return
	}

	members, err := h.registry.GameMembers(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayersFromModel(members))
}

// Join handles POST /api/v1/games/{gameId}/players
func (h *MemberHandler) Join(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathID(r, "gameId")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.JoinGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	publicID, err := uuid.Parse(req.PublicID)
	if err != nil {
		WriteError(w, NewInvalidRequestError("public_id must be a uuid"))
		return
	}
	acting, err := privateID(r, req.PrivateID, "private_id")
	if err != nil {
		WriteError(w, err)
		return
	}

	player, err := h.registry.FindPlayerByPublicID(r.Context(), publicID)
	if err != nil {
		WriteError(w, err)
		return
	}
	if !player.Owns(acting) {
		WriteError(w, model.ErrForbidden)
		return
	}

	if _, err := h.registry.JoinGame(r.Context(), gameID, player); err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, "", response.PlayerFromModel(player))
}

// Remove handles DELETE /api/v1/games/{gameId}/players/{publicId}?private_id=
func (h *MemberHandler) Remove(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathID(r, "gameId")
	if err != nil {
		WriteError(w, err)
		return
	}
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

	removed, err := h.registry.RemoveFromGame(r.Context(), gameID, publicID, acting)
	if err != nil {
		WriteError(w, err)
		return
	}
	if !removed {
		WriteError(w, apierr.NewNotInGameError())
		return
	}

	response.NoContent(w)
}
