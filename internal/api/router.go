package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/lobbyregistry/internal/api/handler"
	"github.com/mcoot/lobbyregistry/internal/api/middleware"
	"github.com/mcoot/lobbyregistry/internal/api/sse"
	"github.com/mcoot/lobbyregistry/internal/events"
	"github.com/mcoot/lobbyregistry/internal/services/registry"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger     *slog.Logger
	Registry   *registry.Registry
	History    events.History
	HubManager *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.Registry)
	gameHandler := handler.NewGameHandler(cfg.Registry)
	memberHandler := handler.NewMemberHandler(cfg.Registry)
	eventHandler := handler.NewEventHandler(cfg.Registry, cfg.History, cfg.HubManager)
	healthHandler := handler.NewHealthHandler(cfg.Registry)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Stack(cfg.Logger)...)

	// Player routes
	api.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/players", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/{publicId}", playerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/players/{publicId}", playerHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/players/{publicId}/game", playerHandler.CurrentGame).Methods(http.MethodGet)

	// Game routes
	api.HandleFunc("/games", gameHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/games/{gameId}", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/games/{gameId}", gameHandler.Delete).Methods(http.MethodDelete)

	// Membership routes
	api.HandleFunc("/games/{gameId}/players", memberHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/games/{gameId}/players", memberHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/games/{gameId}/players/{publicId}", memberHandler.Remove).Methods(http.MethodDelete)

	// Event routes
	api.HandleFunc("/games/{gameId}/events", eventHandler.StreamGame).Methods(http.MethodGet)
	api.HandleFunc("/events", eventHandler.StreamAll).Methods(http.MethodGet)
	api.HandleFunc("/events/recent", eventHandler.Recent).Methods(http.MethodGet)

	api.HandleFunc("/health", healthHandler.Get).Methods(http.MethodGet)

	return r
}
