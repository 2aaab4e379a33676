package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/mcoot/lobbyregistry/internal/api/response"
	"github.com/mcoot/lobbyregistry/internal/events"
	"github.com/mcoot/lobbyregistry/internal/model"
)

// HubManager owns the global event stream and one stream per game
type HubManager struct {
	global *Hub
	games  map[uuid.UUID]*Hub
	mu     sync.RWMutex
	logger *slog.Logger
}

var _ events.Publisher = (*HubManager)(nil)

// NewHubManager creates a HubManager and starts its global hub
func NewHubManager(logger *slog.Logger) *HubManager {
	logger = logger.With(slog.String("component", "sse"))
	m := &HubManager{
		global: NewHub("all", logger),
		games:  make(map[uuid.UUID]*Hub),
		logger: logger,
	}
	go m.global.Run()
	return m
}

// Global returns the hub that carries every event
func (m *HubManager) Global() *Hub {
	return m.global
}

// GetOrCreateHub returns the hub for a game, creating one if it doesn't exist
func (m *HubManager) GetOrCreateHub(gameID uuid.UUID) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.games[gameID]; ok {
		return hub
	}

	hub := NewHub(gameID.String(), m.logger)
	m.games[gameID] = hub
	go hub.Run()
	return hub
}

// GetHub returns the hub for a game, or nil if it doesn't exist
func (m *HubManager) GetHub(gameID uuid.UUID) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.games[gameID]
}

// RemoveHub closes a game's hub, ending its clients' streams
func (m *HubManager) RemoveHub(gameID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.games[gameID]; ok {
		hub.Close()
		delete(m.games, gameID)
		m.logger.Debug("sse hub removed", slog.String("game_id", gameID.String()))
	}
}

// HubCount returns the number of open game hubs
func (m *HubManager) HubCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// Publish implements events.Publisher. The event goes to the global stream and
// to its game's stream; a game's stream is closed once its final event is sent.
func (m *HubManager) Publish(_ context.Context, evt model.Event) error {
	data, err := json.Marshal(response.EventFromModel(evt))
	if err != nil {
		return fmt.Errorf("encode sse event: %w", err)
	}
	name := string(evt.Type)

	m.global.BroadcastEvent(name, string(data))

	if !evt.HasGame() {
		return nil
	}
	if hub := m.GetHub(evt.GameID); hub != nil {
		hub.BroadcastEvent(name, string(data))
	}
	if evt.EndsGame() {
		m.RemoveHub(evt.GameID)
	}
	return nil
}

// Close ends every stream
func (m *HubManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, hub := range m.games {
		hub.Close()
		delete(m.games, id)
	}
	m.global.Close()
}
