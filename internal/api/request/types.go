package request

// RegisterPlayerRequest is the request body for registering a player
type RegisterPlayerRequest struct {
	DisplayName string `json:"display_name"`
}

// CreateGameRequest is the request body for creating a game.
// CreatorPrivateID may be omitted in favour of a bearer credential.
type CreateGameRequest struct {
	Title            string `json:"title"`
	CreatorPrivateID string `json:"creator_private_id,omitempty"`
}

// JoinGameRequest is the request body for joining a game.
// PrivateID may be omitted in favour of a bearer credential.
type JoinGameRequest struct {
	PublicID  string `json:"public_id"`
	PrivateID string `json:"private_id,omitempty"`
}
