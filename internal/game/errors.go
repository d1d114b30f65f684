package game

import "errors"

// Operation errors. Each one is local to the rejected call; the room and the
// rest of the process are untouched when any of these is returned.
var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrInvalidParameters  = errors.New("invalid parameters")
	ErrIncorrectCode      = errors.New("incorrect code")
	ErrGameAlreadyStarted = errors.New("game already started")
	ErrRoomFull           = errors.New("room full")
	ErrNameTaken          = errors.New("name already in use")
	ErrNotEnoughPlayers   = errors.New("not enough players")
	ErrNotRoomCreator     = errors.New("only the room creator can do that")
	ErrNotMember          = errors.New("not a member of this room")
)
