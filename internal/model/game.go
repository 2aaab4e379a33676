package model

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Game is one lobby. Its membership is ordered and the first member is the
// player who created it. A game with no members is considered gone.
//
// Games are owned by the registry; membership is only mutated through the
// methods below, which serialise on the game's own lock.
type Game struct {
	ID        uuid.UUID
	Title     string
	CreatedAt time.Time

	// Seq is the creation order assigned by the registry
	Seq uint64

	mu      sync.Mutex
	members []*Player
	founder *Player
}

// NewGame creates a game whose sole member is the creator
func NewGame(id uuid.UUID, title string, creator *Player, now time.Time) *Game {
	return &Game{
		ID:        id,
		Title:     title,
		CreatedAt: now,
		members:   []*Player{creator},
		founder:   creator,
	}
}

// Add appends a member. Players are compared by public id.
func (g *Game) Add(p *Player) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.indexLocked(p.PublicID) >= 0 {
		return ErrDuplicateMember
	}
	g.members = append(g.members, p)
	return nil
}

// Remove takes target out of the game on behalf of whoever owns actingPrivateID.
// Only the creator or the target itself may do this. It reports whether the
// target was a member.
func (g *Game) Remove(target *Player, actingPrivateID uuid.UUID, policy CreatorPolicy) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	creator := g.creatorLocked(policy)
	if !target.Owns(actingPrivateID) && (creator == nil || !creator.Owns(actingPrivateID)) {
		return false, ErrForbidden
	}
	return g.removeLocked(target.PublicID) != nil, nil
}

// Evict removes a member without any authorization check and returns it, or
// nil if it was not a member
func (g *Game) Evict(publicID uuid.UUID) *Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.removeLocked(publicID)
}

// Contains reports whether the player with publicID is a member
func (g *Game) Contains(publicID uuid.UUID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.indexLocked(publicID) >= 0
}

// Member returns the member with publicID, or nil
func (g *Game) Member(publicID uuid.UUID) *Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	if i := g.indexLocked(publicID); i >= 0 {
		return g.members[i]
	}
	return nil
}

// IsEmpty returns true once the last member has gone
func (g *Game) IsEmpty() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.members) == 0
}

// Len returns the number of members
func (g *Game) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.members)
}

// Creator returns the player holding creator rights under policy, or nil
func (g *Game) Creator(policy CreatorPolicy) *Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.creatorLocked(policy)
}

// Founder returns the player who created the game
func (g *Game) Founder() *Player {
	return g.founder
}

// Members returns a copy of the membership in order
func (g *Game) Members() []Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	return copyPlayers(g.members)
}

// View returns a snapshot of the game that is safe to use outside the registry
func (g *Game) View(policy CreatorPolicy) GameView {
	g.mu.Lock()
	defer g.mu.Unlock()

	view := GameView{
		ID:        g.ID,
		Title:     g.Title,
		CreatedAt: g.CreatedAt,
		Members:   copyPlayers(g.members),
	}
	if creator := g.creatorLocked(policy); creator != nil {
		view.Creator = *creator
	}
	return view
}

func (g *Game) creatorLocked(policy CreatorPolicy) *Player {
	if policy == CreatorByFounder {
		return g.founder
	}
	if len(g.members) == 0 {
		return nil
	}
	return g.members[0]
}

func (g *Game) indexLocked(publicID uuid.UUID) int {
	return slices.IndexFunc(g.members, func(m *Player) bool {
		return m.PublicID == publicID
	})
}

// removeLocked deletes a member keeping the order of the others
func (g *Game) removeLocked(publicID uuid.UUID) *Player {
	i := g.indexLocked(publicID)
	if i < 0 {
		return nil
	}
	removed := g.members[i]
	g.members = slices.Delete(g.members, i, i+1)
	return removed
}

func copyPlayers(src []*Player) []Player {
	out := make([]Player, len(src))
	for i, p := range src {
		out[i] = *p
	}
	return out
}

// GameView is a point-in-time copy of a game
type GameView struct {
	ID        uuid.UUID
	Title     string
	CreatedAt time.Time
	Creator   Player
	Members   []Player
}
