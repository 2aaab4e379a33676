package model

import "errors"

// Registry outcomes. These are domain results, not transport status codes.
var (
	ErrUnknownCreator  = errors.New("no player owns the creator private id")
	ErrAlreadyInGame   = errors.New("player is already in a game")
	ErrUnknownGame     = errors.New("game not found")
	ErrDuplicateMember = errors.New("player already joined this game")
	ErrForbidden       = errors.New("private id does not grant this action")
	ErrUnknownPlayer   = errors.New("player not found")
)
