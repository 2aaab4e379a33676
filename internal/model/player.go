package model

import (
	"crypto/subtle"
	"time"

	"github.com/google/uuid"
)

// Player is a connected user tracked by the registry.
//
// PrivateID is the only proof of control over the player and never appears in
// listings. PublicID is the handle other players use to refer to it. Two
// players are the same player iff their PublicIDs match.
type Player struct {
	PrivateID    uuid.UUID
	PublicID     uuid.UUID
	DisplayName  string
	RegisteredAt time.Time
	LastSeenAt   time.Time

	// Seq is the registration order assigned by the registry
	Seq uint64
}

// NewPlayer creates a player seen at the given instant
func NewPlayer(privateID, publicID uuid.UUID, displayName string, now time.Time) *Player {
	return &Player{
		PrivateID:    privateID,
		PublicID:     publicID,
		DisplayName:  displayName,
		RegisteredAt: now,
		LastSeenAt:   now,
	}
}

// Is reports whether both values refer to the same player
func (p *Player) Is(other *Player) bool {
	if p == nil || other == nil {
		return false
	}
	return p.PublicID == other.PublicID
}

// Owns reports whether privateID is this player's private token
func (p *Player) Owns(privateID uuid.UUID) bool {
	return subtle.ConstantTimeCompare(p.PrivateID[:], privateID[:]) == 1
}

// Expired reports whether the player has been idle longer than timeout
func (p *Player) Expired(now time.Time, timeout time.Duration) bool {
	return now.Sub(p.LastSeenAt) > timeout
}

// MarkAlive records a liveness signal
func (p *Player) MarkAlive(now time.Time) {
	p.LastSeenAt = now
}
