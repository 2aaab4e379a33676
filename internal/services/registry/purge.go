package registry

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/lobbyregistry/internal/model"
)

// tables is the registry's entire mutable state
type tables struct {
	players map[uuid.UUID]*model.Player // by public id
	games   map[uuid.UUID]*model.Game
	seq     uint64
}

func newTables() tables {
	return tables{
		players: make(map[uuid.UUID]*model.Player),
		games:   make(map[uuid.UUID]*model.Game),
	}
}

// nextSeq returns the next registration/creation ordinal
func (t *tables) nextSeq() uint64 {
	t.seq++
	return t.seq
}

// currentGame returns the game the player belongs to, or nil
func (t *tables) currentGame(publicID uuid.UUID) *model.Game {
	for _, g := range t.games {
		if g.Contains(publicID) {
			return g
		}
	}
	return nil
}

// playerByPrivateID returns the player owning privateID, or nil
func (t *tables) playerByPrivateID(privateID uuid.UUID) *model.Player {
	for _, p := range t.players {
		if p.Owns(privateID) {
			return p
		}
	}
	return nil
}

// expiry records a player removed for inactivity and the game it was evicted from
type expiry struct {
	player *model.Player
	game   *model.Game
}

// purgeResult lists everything a purge pass removed, in registration order
type purgeResult struct {
	expired []expiry
	closed  []*model.Game
}

// purge drops every player idle for longer than the timeout, evicting it from
// its game first, then closes every game that is left without members (or,
// under the founder policy, without its founder).
func purge(t *tables, now time.Time, cfg Config) purgeResult {
	var res purgeResult

	for id, p := range t.players {
		if !p.Expired(now, cfg.PlayerTimeout) {
			continue
		}
		exp := expiry{player: p}
		for _, g := range t.games {
			if g.Evict(p.PublicID) != nil {
				exp.game = g
			}
		}
		delete(t.players, id)
		res.expired = append(res.expired, exp)
	}
	slices.SortFunc(res.expired, func(a, b expiry) int {
		return cmp.Compare(a.player.Seq, b.player.Seq)
	})

	res.closed = closeGames(t, cfg.CreatorPolicy)
	return res
}

// closeGames removes games that can no longer exist and returns them
func closeGames(t *tables, policy model.CreatorPolicy) []*model.Game {
	var closed []*model.Game
	for id, g := range t.games {
		if g.IsEmpty() || (policy == model.CreatorByFounder && !t.hasPlayer(g.Founder())) {
			delete(t.games, id)
			closed = append(closed, g)
		}
	}
	slices.SortFunc(closed, func(a, b *model.Game) int {
		return cmp.Compare(a.Seq, b.Seq)
	})
	return closed
}

func (t *tables) hasPlayer(p *model.Player) bool {
	if p == nil {
		return false
	}
	_, ok := t.players[p.PublicID]
	return ok
}
