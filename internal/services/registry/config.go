package registry

import (
	"time"

	"github.com/mcoot/lobbyregistry/internal/model"
)

// DefaultPlayerTimeout is how long a player may stay silent before it is
// considered disconnected
const DefaultPlayerTimeout = 20 * time.Minute

// Config holds the registry's policy knobs
type Config struct {
	// PlayerTimeout is the liveness timeout applied to every player
	PlayerTimeout time.Duration

	// CreatorPolicy decides who holds creator rights once the founder leaves
	CreatorPolicy model.CreatorPolicy

	// CascadePlayerDelete makes an explicit player deletion also remove the
	// player from its game, the same way expiry does
	CascadePlayerDelete bool
}

// DefaultConfig returns the default registry configuration
func DefaultConfig() Config {
	return Config{
		PlayerTimeout:       DefaultPlayerTimeout,
		CreatorPolicy:       model.CreatorByPosition,
		CascadePlayerDelete: true,
	}
}
