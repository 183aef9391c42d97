package app

import "errors"

// One sentinel per rule-violation kind. The nakama adapter maps each to
// a stable wire code; anything else surfaced by a use-case is a storage
// failure.
var (
	ErrGameNotFound    = errors.New("a game with this id does not exist")
	ErrNotHost         = errors.New("you are not the host of the game")
	ErrNotStarted      = errors.New("the game has not started yet")
	ErrAlreadyStarted  = errors.New("the game has already started")
	ErrAlreadyFinished = errors.New("the game has already finished")
	ErrNotYourTurn     = errors.New("it's not your turn yet")
	ErrCellNotEmpty    = errors.New("cell is already revealed, select a new one")
	ErrNotInGame       = errors.New("you're not in this game")
	ErrGameFull        = errors.New("maximum players reached")
	ErrInvalidArgument = errors.New("one or more parameters is invalid")
)
