package model

import "fmt"

// CreatorPolicy decides which player holds a game's creator rights
type CreatorPolicy string

const (
	// CreatorByPosition resolves the creator to whichever member is first
	CreatorByPosition CreatorPolicy = "position"
	// CreatorByFounder keeps creator rights with the player who founded the game,
	// even after they leave it
	CreatorByFounder CreatorPolicy = "founder"
)

// ParseCreatorPolicy validates a policy name. Empty means CreatorByPosition.
func ParseCreatorPolicy(s string) (CreatorPolicy, error) {
	switch CreatorPolicy(s) {
	case "", CreatorByPosition:
		return CreatorByPosition, nil
	case CreatorByFounder:
		return CreatorByFounder, nil
	default:
		return "", fmt.Errorf("unknown creator policy %q", s)
	}
}
