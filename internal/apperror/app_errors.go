package apperror

import "errors"

var (
	ErrInvalidMove         = errors.New("invalid move")
	ErrNotYourTurn         = errors.New("it's not your turn")
	ErrGameFinished        = errors.New("game is already finished")
	ErrNotComputerTurn     = errors.New("it's not the computer's turn")
	ErrComputerMovePending = errors.New("computer move is pending")
	ErrNoAvailableMoves    = errors.New("no available moves")
	ErrGameReset           = errors.New("game was reset")
)
