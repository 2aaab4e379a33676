package model

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies the type of event
type EventType string

const (
	// Player events
	EventPlayerRegistered EventType = "player_registered"
	EventPlayerDeleted    EventType = "player_deleted"
	EventPlayerExpired    EventType = "player_expired"

	// Game events
	EventGameCreated EventType = "game_created"
	EventGameDeleted EventType = "game_deleted"
	EventGameClosed  EventType = "game_closed" // emptied or lost its founder

	// Membership events
	EventMemberJoined EventType = "member_joined"
	EventMemberLeft   EventType = "member_left"
	EventMemberKicked EventType = "member_kicked"
)

// Event records a change to the registry. It never carries private ids.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	// GameID is uuid.Nil for player-only events
	GameID    uuid.UUID `json:"game_id"`
	GameTitle string    `json:"game_title,omitempty"`

	// PlayerID is the public id of the player who triggered or is affected
	PlayerID    uuid.UUID `json:"player_id"`
	DisplayName string    `json:"display_name,omitempty"`
}

// HasGame reports whether the event concerns a specific game
func (e Event) HasGame() bool {
	return e.GameID != uuid.Nil
}

// EndsGame reports whether the game referenced by the event no longer exists
func (e Event) EndsGame() bool {
	return e.Type == EventGameDeleted || e.Type == EventGameClosed
}
