package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		body := map[string]string{"message": err.Error()}
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			body = map[string]string{"code": apiErr.Code, "message": apiErr.Message}
		}
		errData := map[string]any{"error": body}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case []Player:
		o.printPlayers(v)
	case RegisteredPlayer:
		o.printRegisteredPlayer(v)
	case Game:
		o.printGame(v)
	case []GameSummary:
		o.printGameSummaries(v)
	case Event:
		o.printEvent(v)
	case []Event:
		for _, e := range v {
			o.printEvent(e)
		}
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	PublicID    string `json:"public_id"`
	DisplayName string `json:"display_name"`
}

// RegisteredPlayer is the registration response, the only one carrying a private id
type RegisteredPlayer struct {
	PrivateID   string `json:"private_id"`
	PublicID    string `json:"public_id"`
	DisplayName string `json:"display_name"`
}

// GameSummary response type
type GameSummary struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	CreatorPublicID string `json:"creator_public_id"`
	MemberCount     int    `json:"member_count"`
}

// Game response type
type Game struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	Creator   *Player   `json:"creator"`
	Members   []Player  `json:"members"`
}

// Event response type
type Event struct {
	Type        string    `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	GameID      string    `json:"game_id,omitempty"`
	GameTitle   string    `json:"game_title,omitempty"`
	PlayerID    string    `json:"player_id,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
}

// HealthResult response type
type HealthResult struct {
	Status  string `json:"status"`
	Players int    `json:"players"`
	Games   int    `json:"games"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.PublicID)
}

func (o *Output) printPlayers(players []Player) {
	if len(players) == 0 {
		fmt.Println("No players")
		return
	}
	for _, p := range players {
		fmt.Printf("  - %s (%s)\n", p.DisplayName, p.PublicID)
	}
}

func (o *Output) printRegisteredPlayer(p RegisteredPlayer) {
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.PublicID)
	fmt.Printf("Private ID: %s\n", p.PrivateID)
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Game: %s (%s)\n", g.Title, g.ID)
	fmt.Printf("Created: %s\n", g.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	if g.Creator != nil {
		fmt.Printf("Creator: %s (%s)\n", g.Creator.DisplayName, g.Creator.PublicID)
	}
	fmt.Printf("Members (%d):\n", len(g.Members))
	for _, m := range g.Members {
		fmt.Printf("  - %s (%s)\n", m.DisplayName, m.PublicID)
	}
}

func (o *Output) printGameSummaries(games []GameSummary) {
	if len(games) == 0 {
		fmt.Println("No games")
		return
	}
	for _, g := range games {
		fmt.Printf("  - %s (%s) - %d player(s)\n", g.Title, g.ID, g.MemberCount)
	}
}

func (o *Output) printEvent(e Event) {
	parts := []string{e.Type}
	if e.DisplayName != "" {
		parts = append(parts, "player="+e.DisplayName)
	}
	if e.GameTitle != "" {
		parts = append(parts, "game="+e.GameTitle)
	}
	fmt.Printf("[%s] %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"), strings.Join(parts, " "))
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
	fmt.Printf("Players: %d\n", h.Players)
	fmt.Printf("Games: %d\n", h.Games)
}
