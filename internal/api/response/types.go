package response

import (
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/lobbyregistry/internal/model"
)

// Player is the public view of a player
type Player struct {
	PublicID    string `json:"public_id"`
	DisplayName string `json:"display_name"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p model.Player) Player {
	return Player{
		PublicID:    p.PublicID.String(),
		DisplayName: p.DisplayName,
	}
}

// PlayersFromModel converts a list of players
func PlayersFromModel(players []model.Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return out
}

// RegisteredPlayer is returned once, to the caller that registered the player.
// It is the only response that carries a private id.
type RegisteredPlayer struct {
	PrivateID   string `json:"private_id"`
	PublicID    string `json:"public_id"`
	DisplayName string `json:"display_name"`
}

// RegisteredPlayerFromModel converts a freshly registered player
func RegisteredPlayerFromModel(p model.Player) RegisteredPlayer {
	return RegisteredPlayer{
		PrivateID:   p.PrivateID.String(),
		PublicID:    p.PublicID.String(),
		DisplayName: p.DisplayName,
	}
}

// GameSummary is a game as shown in listings
type GameSummary struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	CreatorPublicID string `json:"creator_public_id"`
	MemberCount     int    `json:"member_count"`
}

// GameSummariesFromModel converts a game listing
func GameSummariesFromModel(games []model.GameView) []GameSummary {
	out := make([]GameSummary, len(games))
	for i, g := range games {
		out[i] = GameSummary{
			ID:              g.ID.String(),
			Title:           g.Title,
			CreatorPublicID: g.Creator.PublicID.String(),
			MemberCount:     len(g.Members),
		}
	}
	return out
}

// Game is a single game with its members in join order
type Game struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	Creator   *Player   `json:"creator"`
	Members   []Player  `json:"members"`
}

// GameFromModel converts a model.GameView
func GameFromModel(g model.GameView) Game {
	var creator *Player
	if g.Creator.PublicID != uuid.Nil {
		c := PlayerFromModel(g.Creator)
		creator = &c
	}
	return Game{
		ID:        g.ID.String(),
		Title:     g.Title,
		CreatedAt: g.CreatedAt,
		Creator:   creator,
		Members:   PlayersFromModel(g.Members),
	}
}

// Event is a registry event as delivered over HTTP and SSE
type Event struct {
	Type        string    `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	GameID      string    `json:"game_id,omitempty"`
	GameTitle   string    `json:"game_title,omitempty"`
	PlayerID    string    `json:"player_id,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
}

// EventFromModel converts a model.Event
func EventFromModel(e model.Event) Event {
	out := Event{
		Type:        string(e.Type),
		Timestamp:   e.Timestamp,
		GameTitle:   e.GameTitle,
		DisplayName: e.DisplayName,
	}
	if e.HasGame() {
		out.GameID = e.GameID.String()
	}
	if e.PlayerID != uuid.Nil {
		out.PlayerID = e.PlayerID.String()
	}
	return out
}

// EventsFromModel converts a list of events
func EventsFromModel(evts []model.Event) []Event {
	out := make([]Event, len(evts))
	for i, e := range evts {
		out[i] = EventFromModel(e)
	}
	return out
}

// Health is the response of the health check
type Health struct {
	Status  string `json:"status"`
	Players int    `json:"players"`
	Games   int    `json:"games"`
}
